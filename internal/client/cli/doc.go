// Package cli provides the interactive RespireX terminal client.
//
// It wires configuration, the identity provider, the backend API services,
// and an interactive REPL whose command set follows the current page. The
// heart of the package is the App controller: a session/navigation state
// machine that bootstraps the session at startup, reacts to provider-pushed
// auth events, drives role resolution, and exposes the resolved
// (user, role, currentPage, isLoading) surface that every page reads.
//
// Pages never mutate controller state directly; they navigate through
// App.Navigate and sign out through App.Logout, and the state transitions
// are applied by the controller alone.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus builds the REPL prompt status: current page plus the signed-in
// email, if any.
func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := string(a.currentPage)
	if a.user != nil && a.user.Email != "" {
		s = fmt.Sprintf("%s (%s)", s, a.user.Email)
	}
	if a.isLoading {
		s = s + " ..."
	}
	return s
}

// Root bootstraps the session state and runs the interactive loop until the
// user exits. It blocks for the lifetime of the program.
func (a *App) Root(ctx context.Context) {
	defer a.Close()

	printlnFn("RespireX terminal client (type 'help' for commands)")
	a.Bootstrap(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Package models defines the data shapes exchanged with the RespireX backend.
package models

// Role is the application-level authorization category. It gates which views
// are reachable after sign-in.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

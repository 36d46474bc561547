package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	CurrentPage() Page
	Role() models.Role
	isLoggedIn() bool
	Navigate(Page)

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	GoogleSignIn(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowStats(ctx context.Context) error

	RunSymptomTest(ctx context.Context) error
	ShowResult()
	ShowHistory(ctx context.Context) error
	SaveReport(ctx context.Context, id int64) error
	EmailReport(ctx context.Context, id int64) error
	resultID() int64

	ShowAppointments(ctx context.Context) error
	BookAppointment(ctx context.Context) error
	CancelAppointment(ctx context.Context, id string) error
	ShowDoctors(ctx context.Context) error

	ShowDashboard(ctx context.Context, stateFilter string) error
	CompleteProfile(ctx context.Context) error
	ShowProfile(ctx context.Context) error
}

// reportErr prints a command error unless it is one of the expected
// outcomes: suppressed duplicates and caller-initiated aborts are not
// errors from the user's point of view.
func reportErr(err error) {
	if err == nil || errors.Is(err, api.ErrDuplicateSuppressed) || errors.Is(err, api.ErrCancelled) {
		return
	}
	printlnFn("Error: " + err.Error())
}

// runREPL reads commands from scanner and dispatches them according to the
// current page, so each page offers its own command set. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Command handlers log or print their own diagnostics; the loop itself only
// reports unexpected errors and stays alive.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rx %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		// Page-independent commands first.
		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printHelp(a)
			continue
		case "home":
			if a.isLoggedIn() {
				a.Navigate(roleHome(a.Role()))
			} else {
				a.Navigate(PageLanding)
			}
			continue
		case "logout":
			if a.isLoggedIn() {
				reportErr(a.Logout(ctx))
			} else {
				printlnFn("Not signed in.")
			}
			continue
		}

		switch a.CurrentPage() {
		case PageLoading:
			printlnFn("Still loading, hold on...")

		case PageLanding, PageLogin, PageSignup:
			switch cmd {
			case "login":
				reportErr(a.Login(ctx))
			case "signup":
				reportErr(a.Signup(ctx))
			case "google":
				reportErr(a.GoogleSignIn(ctx))
			case "stats":
				reportErr(a.ShowStats(ctx))
			default:
				unknown(cmd)
			}

		case PagePatientHome:
			switch cmd {
			case "test":
				reportErr(a.RunSymptomTest(ctx))
			case "history":
				a.Navigate(PageTestHistory)
				reportErr(a.ShowHistory(ctx))
			case "appointments":
				a.Navigate(PageAppointments)
				reportErr(a.ShowAppointments(ctx))
			case "profile":
				reportErr(a.ShowProfile(ctx))
			default:
				unknown(cmd)
			}

		case PageDoctorHome:
			switch cmd {
			case "dashboard":
				state := ""
				if len(args) > 0 {
					state = args[0]
				}
				reportErr(a.ShowDashboard(ctx, state))
			case "appointments":
				a.Navigate(PageAppointments)
				reportErr(a.ShowAppointments(ctx))
			case "profile":
				reportErr(a.ShowProfile(ctx))
			default:
				unknown(cmd)
			}

		case PageTestResult:
			switch cmd {
			case "show":
				a.ShowResult()
			case "report":
				reportErr(a.SaveReport(ctx, a.resultID()))
			case "email":
				reportErr(a.EmailReport(ctx, a.resultID()))
			default:
				unknown(cmd)
			}

		case PageTestHistory:
			switch cmd {
			case "list":
				reportErr(a.ShowHistory(ctx))
			case "report":
				if id, ok := idArg(args); ok {
					reportErr(a.SaveReport(ctx, id))
				}
			case "email":
				if id, ok := idArg(args); ok {
					reportErr(a.EmailReport(ctx, id))
				}
			default:
				unknown(cmd)
			}

		case PageAppointments:
			switch cmd {
			case "list":
				reportErr(a.ShowAppointments(ctx))
			case "book":
				reportErr(a.BookAppointment(ctx))
			case "cancel":
				if len(args) == 0 {
					printlnFn("Usage: cancel <id>")
					continue
				}
				reportErr(a.CancelAppointment(ctx, args[0]))
			case "doctors":
				reportErr(a.ShowDoctors(ctx))
			default:
				unknown(cmd)
			}

		case PageCompleteProfile:
			switch cmd {
			case "complete":
				reportErr(a.CompleteProfile(ctx))
			default:
				unknown(cmd)
			}

		default:
			unknown(cmd)
		}
	}
}

func idArg(args []string) (int64, bool) {
	if len(args) == 0 {
		printlnFn("Usage: <command> <record id>")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Not a record id: " + args[0])
		return 0, false
	}
	return id, true
}

func unknown(cmd string) {
	printlnFn("Unknown command: " + cmd + " (type 'help')")
}

func printHelp(a execIface) {
	switch a.CurrentPage() {
	case PageLanding, PageLogin, PageSignup:
		printlnFn("Available commands: login, signup, google, stats, exit")
	case PagePatientHome:
		printlnFn("Available commands: test, history, appointments, profile, logout, exit")
	case PageDoctorHome:
		printlnFn("Available commands: dashboard [state], appointments, profile, logout, exit")
	case PageTestResult:
		printlnFn("Available commands: show, report, email, home, logout, exit")
	case PageTestHistory:
		printlnFn("Available commands: list, report <id>, email <id>, home, logout, exit")
	case PageAppointments:
		printlnFn("Available commands: list, book, cancel <id>, doctors, home, logout, exit")
	case PageCompleteProfile:
		printlnFn("Available commands: complete, logout, exit")
	default:
		printlnFn("Available commands: help, home, exit")
	}
}

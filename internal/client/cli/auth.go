package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/respirex/respirex-client/internal/client/identity"
	"github.com/respirex/respirex-client/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getChoice = GetChoice
var getYesNo = GetYesNo
var getInt = GetInt

// Login prompts for credentials and signs in through the identity provider.
//
// The method itself does not touch navigation or role state: the provider's
// SIGNED_IN push event carries the session to the controller, which records
// the user and starts role resolution. The password bytes are wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(PageLogin)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.provider.SignInWithPassword(ctx, email, password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			printlnFn("Invalid email or password.")
			a.Navigate(PageLanding)
			return nil
		}
		a.Navigate(PageLanding)
		return err
	}

	printlnFn("Signed in.")
	return nil
}

// Signup collects account details and registers through the identity
// provider. The chosen role lands in the identity metadata as the
// degraded-mode fallback; the backend profile completed afterwards stays
// authoritative.
func (a *App) Signup(ctx context.Context) error {
	a.Navigate(PageSignup)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getChoice(a.reader, "Account type", []string{"patient", "doctor"}, os.Stdout)
	if err != nil {
		return err
	}
	gender, err := getChoice(a.reader, "Gender", []string{"female", "male", "other"}, os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.provider.SignUp(ctx, email, password, identity.UserMetadata{
		FullName: fullName,
		Role:     role,
		Gender:   gender,
	})
	if err != nil {
		a.Navigate(PageLanding)
		return err
	}

	if session == nil {
		printlnFn("Account created. Check your inbox to confirm the email, then log in.")
		a.Navigate(PageLanding)
		return nil
	}
	printlnFn("Account created, signed in.")
	return nil
}

// GoogleSignIn runs the OAuth authorization-code flow: it prints the
// authorization URL for the user to open in a browser, then prompts for the
// code from the redirect and exchanges it for a session.
func (a *App) GoogleSignIn(ctx context.Context) error {
	req, err := a.provider.OAuthURL("google")
	if err != nil {
		return err
	}

	printlnFn("Open this URL in your browser and sign in:")
	printlnFn(req.URL)

	code, err := getSimpleText(a.reader, "Paste the code from the redirect", os.Stdout)
	if err != nil {
		return err
	}
	if code == "" {
		printlnFn("Cancelled.")
		return nil
	}

	if _, err := a.provider.ExchangeCode(ctx, code, req.Verifier); err != nil {
		return fmt.Errorf("code exchange: %w", err)
	}
	printlnFn("Signed in.")
	return nil
}

// setReader lets tests feed scripted input to the interactive flows.
func (a *App) setReader(r *bufio.Reader) { a.reader = r }

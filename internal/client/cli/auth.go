package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dishcovery/dishcovery/internal/client/session"
	"github.com/dishcovery/dishcovery/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// printUserError renders a failure the way the forms do: field-level
// validation messages inline, flow-level failures as a retryable notice.
func printUserError(err error) {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		printlnFn(fmt.Sprintf("  %s", verr.Message))
	case errors.Is(err, common.ErrUnavailable):
		printlnFn("Network unavailable. Check your connection and retry.")
	default:
		printlnFn(fmt.Sprintf("Error: %s", err.Error()))
	}
}

// Login prompts for credentials and authenticates. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		printUserError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", user.FirstName))
	return nil
}

// Signup prompts for the new-account fields and signs the user in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	user, err := a.session.Signup(ctx, name, email, string(password), string(confirm))
	if err != nil {
		printUserError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", user.FirstName))
	return nil
}

// Logout clears the session. It always succeeds from the user's
// perspective.
func (a *App) Logout(ctx context.Context) error {
	_ = a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the short identity line.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.CurrentUser(ctx)
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s %s <%s>", user.DisplayUsername(), user.FullName(), user.Email))
	return nil
}

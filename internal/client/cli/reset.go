package cli

import (
	"context"
	"os"

	"github.com/dishcovery/dishcovery/internal/client/session"
	"github.com/dishcovery/dishcovery/internal/common"
)

// ResetPassword walks the password-reset wizard. Typing "back" at any
// prompt moves one step backward; backing out of the email step exits the
// flow.
func (a *App) ResetPassword(ctx context.Context) error {
	flow := session.NewResetFlow(a.session.ResetBackend())

	for flow.Step() != session.StepComplete {
		switch flow.Step() {
		case session.StepEmailEntry:
			email, err := getSimpleText(a.reader, "Account email ('back' to cancel)", os.Stdout)
			if err != nil {
				return err
			}
			if email == "back" {
				if !flow.Back() {
					printlnFn("Reset cancelled.")
					return nil
				}
				continue
			}
			if err := flow.SubmitEmail(ctx, email); err != nil {
				printUserError(err)
				continue
			}
			printlnFn("A 6-digit code was sent to your email.")

		case session.StepCodeVerification:
			code, err := getSimpleText(a.reader, "Verification code ('back' to re-enter email)", os.Stdout)
			if err != nil {
				return err
			}
			if code == "back" {
				flow.Back()
				continue
			}
			if err := flow.SubmitCode(ctx, code); err != nil {
				printUserError(err)
				continue
			}

		case session.StepNewPassword:
			password, err := getPassword(os.Stdout, "New password")
			if err != nil {
				return err
			}
			confirm, err := getPassword(os.Stdout, "Confirm new password")
			if err != nil {
				common.WipeByteArray(password)
				return err
			}

			err = flow.SubmitNewPassword(ctx, string(password), string(confirm))
			common.WipeByteArray(password)
			common.WipeByteArray(confirm)
			if err != nil {
				printUserError(err)
				continue
			}
		}
	}

	printlnFn("Password reset. You can log in with the new password.")
	return nil
}

package session

import "context"

// ResetStep identifies a stage of the password-reset wizard.
type ResetStep int

const (
	StepEmailEntry ResetStep = iota
	StepCodeVerification
	StepNewPassword
	StepComplete
)

// ResetFlow is the client-orchestrated password-reset sequence. Steps run
// strictly in order; each forward transition is gated by a backend call,
// and nothing is persisted locally between steps.
type ResetFlow struct {
	backend Backend

	step    ResetStep
	email   string
	code    string
	lastErr string
}

func NewResetFlow(backend Backend) *ResetFlow {
	return &ResetFlow{backend: backend, step: StepEmailEntry}
}

func (f *ResetFlow) Step() ResetStep { return f.step }

// LastError returns the current step's error message, empty when the last
// submission succeeded.
func (f *ResetFlow) LastError() string { return f.lastErr }

func (f *ResetFlow) fail(err error) error {
	f.lastErr = err.Error()
	return err
}

// SubmitEmail validates the address, asks the backend to send a code, and
// advances to code verification.
func (f *ResetFlow) SubmitEmail(ctx context.Context, email string) error {
	if f.step != StepEmailEntry {
		return f.fail(errWrongStep)
	}
	if err := ValidateEmail(email); err != nil {
		return f.fail(err)
	}
	if err := f.backend.ForgotPassword(ctx, email); err != nil {
		return f.fail(err)
	}

	f.email = email
	f.step = StepCodeVerification
	f.lastErr = ""
	return nil
}

// SubmitCode checks the code shape client-side before any network call,
// verifies it with the backend, and advances to the new-password step.
func (f *ResetFlow) SubmitCode(ctx context.Context, code string) error {
	if f.step != StepCodeVerification {
		return f.fail(errWrongStep)
	}
	if err := ValidateResetCode(code); err != nil {
		return f.fail(err)
	}
	if err := f.backend.VerifyResetCode(ctx, f.email, code); err != nil {
		return f.fail(err)
	}

	f.code = code
	f.step = StepNewPassword
	f.lastErr = ""
	return nil
}

// SubmitNewPassword completes the reset and moves the flow to Complete.
func (f *ResetFlow) SubmitNewPassword(ctx context.Context, password, confirm string) error {
	if f.step != StepNewPassword {
		return f.fail(errWrongStep)
	}
	if err := ValidatePassword(password); err != nil {
		return f.fail(err)
	}
	if password != confirm {
		return f.fail(&ValidationError{Field: "confirmPassword", Message: "passwords do not match"})
	}
	if err := f.backend.ResetPassword(ctx, f.email, f.code, password); err != nil {
		return f.fail(err)
	}

	f.step = StepComplete
	f.lastErr = ""
	return nil
}

// Back moves one step backward and clears the step's error message. From
// email entry it returns false: the caller should exit the flow entirely.
func (f *ResetFlow) Back() bool {
	f.lastErr = ""
	if f.step == StepEmailEntry {
		return false
	}
	f.step--
	return true
}

var errWrongStep = &ValidationError{Field: "flow", Message: "step out of order"}

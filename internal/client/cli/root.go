package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	user := a.session.User()
	if user == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", user.DisplayUsername())
}

func (a *App) Root(ctx context.Context) {
	if err := a.session.LoadSession(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	if !a.session.HasSeenOnboarding(ctx) {
		printlnFn("Welcome to Dishcovery: discover, cook and share recipes.")
		printlnFn("Browse with 'recipes', find dishes with 'search', and 'login' to post your own.")
		if err := a.session.MarkOnboardingSeen(ctx); err != nil {
			a.log.Warn(ctx, "could not record onboarding", "error", err)
		}
	}

	printlnFn("Dishcovery CLI (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

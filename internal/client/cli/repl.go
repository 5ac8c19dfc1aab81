package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL dispatches to. App
// satisfies it; tests substitute a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Recipes(ctx context.Context, category string) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context, id string) error
	Reviews(ctx context.Context, id string) error
	Like(ctx context.Context, ref string) error
	Reply(ctx context.Context, ref string) error
	AddRecipe(ctx context.Context) error
}

// runREPL reads a command per line and dispatches on the first token.
// Handlers log their own errors; the loop stays resilient and exits on
// scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dish %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		first := func() string {
			if len(args) == 0 {
				return ""
			}
			return args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: recipes [category], search <query>, show <id>, reviews <id>, like <n>, reply <n>, add, whoami, profile, edit, passwd, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, reset, recipes [category], search <query>, show <id>, reviews <id>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "r", "recipes":
			_ = a.Recipes(ctx, first())

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "show":
			_ = a.Show(ctx, first())

		case "reviews":
			_ = a.Reviews(ctx, first())

		case "like":
			_ = a.Like(ctx, first())

		case "reply":
			_ = a.Reply(ctx, first())

		case "add":
			_ = a.AddRecipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

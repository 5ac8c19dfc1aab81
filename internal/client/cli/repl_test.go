package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", "")
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.loggedIn = true
	return f.record("signup", "")
}
func (f *fakeExec) ResetPassword(ctx context.Context) error { return f.record("reset", "") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) Whoami(ctx context.Context) error         { return f.record("whoami", "") }
func (f *fakeExec) Profile(ctx context.Context) error        { return f.record("profile", "") }
func (f *fakeExec) EditProfile(ctx context.Context) error    { return f.record("edit", "") }
func (f *fakeExec) ChangePassword(ctx context.Context) error { return f.record("passwd", "") }
func (f *fakeExec) Recipes(ctx context.Context, category string) error {
	return f.record("recipes", category)
}
func (f *fakeExec) Search(ctx context.Context, query string) error { return f.record("search", query) }
func (f *fakeExec) Show(ctx context.Context, id string) error      { return f.record("show", id) }
func (f *fakeExec) Reviews(ctx context.Context, id string) error   { return f.record("reviews", id) }
func (f *fakeExec) Like(ctx context.Context, ref string) error     { return f.record("like", ref) }
func (f *fakeExec) Reply(ctx context.Context, ref string) error    { return f.record("reply", ref) }
func (f *fakeExec) AddRecipe(ctx context.Context) error            { return f.record("add", "") }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"recipes Dessert",
		"search jollof rice",
		"show r1",
		"reviews r1",
		"like 2",
		"whoami",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "recipes", "search", "show", "reviews", "like", "whoami"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("r Breakfast\nsearch egusi soup\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 2 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if exec.calls[0] != "recipes" || exec.args[0] != "Breakfast" {
		t.Fatalf("got %q %q", exec.calls[0], exec.args[0])
	}
	// multi-word queries survive as a single argument
	if exec.calls[1] != "search" || exec.args[1] != "egusi soup" {
		t.Fatalf("got %q %q", exec.calls[1], exec.args[1])
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("nonsense\n\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

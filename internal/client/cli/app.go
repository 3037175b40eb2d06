// Package cli is the Phase-1 client shell: a small command loop that drives
// the session store and the navigation guard the way the future SPA will.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/hockeyclub/club-system/internal/client/router"
	"github.com/hockeyclub/club-system/internal/client/session"
)

// maxRedirects bounds a guard redirect chain; the Phase-1 table can only
// redirect twice (login -> dashboard), anything longer is a route table bug.
const maxRedirects = 5

type App struct {
	session *session.Store
	guard   *router.Guard
	reader  *bufio.Reader
	out     io.Writer
	current string
	log     zerolog.Logger
}

func NewApp(sess *session.Store, guard *router.Guard, log zerolog.Logger) *App {
	return &App{
		session: sess,
		guard:   guard,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		current: router.PathLogin,
		log:     log,
	}
}

// Run hydrates the session and enters the command loop until "exit" or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Hydrate(ctx); err != nil {
		a.log.Warn().Err(err).Msg("could not restore previous session")
	}
	a.Navigate(router.PathRoot)

	fmt.Fprintln(a.out, `Hockey Club client. Commands: login, logout, whoami, open <path>, exit.`)
	for {
		fmt.Fprintf(a.out, "[%s]> ", a.current)
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case "":
		case "login":
			a.login(ctx, strings.TrimSpace(arg))
		case "logout":
			a.session.Logout(ctx)
			a.Navigate(router.PathLogin)
			fmt.Fprintln(a.out, "signed out")
		case "whoami":
			a.whoami()
		case "open":
			a.Navigate(strings.TrimSpace(arg))
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
		}
	}
}

// ForceSignOut is wired into the HTTP adapter's unauthorized hook: the session
// is already torn down by the store, the shell just lands back on login.
func (a *App) ForceSignOut() {
	a.current = router.PathLogin
	fmt.Fprintln(a.out, "session expired, please sign in again")
}

// Navigate runs the guard, following redirects to a terminal decision.
func (a *App) Navigate(path string) {
	returnTo := ""
	for i := 0; i < maxRedirects; i++ {
		d := a.guard.Check(path)
		if d.Allowed {
			a.current = path
			if returnTo != "" {
				fmt.Fprintf(a.out, "now at %s (wanted %s)\n", path, returnTo)
			} else {
				fmt.Fprintf(a.out, "now at %s\n", path)
			}
			return
		}
		if d.ReturnTo != "" {
			returnTo = d.ReturnTo
		}
		path = d.RedirectTo
	}
	a.log.Error().Str("path", path).Msg("redirect loop in route table")
}

func (a *App) login(ctx context.Context, email string) {
	var err error
	if email == "" {
		fmt.Fprint(a.out, "email: ")
		email, err = a.reader.ReadString('\n')
		if err != nil {
			return
		}
		email = strings.TrimSpace(email)
	}

	fmt.Fprint(a.out, "password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "could not read password: %v\n", err)
		return
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintf(a.out, "login failed: %s\n", a.session.Err())
		return
	}

	fmt.Fprintf(a.out, "welcome, %s\n", a.session.FullName())
	a.Navigate(router.PathRoot)
}

func (a *App) whoami() {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "not signed in")
		return
	}
	user := a.session.User()
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", a.session.FullName(), user.Email, user.Role)
}

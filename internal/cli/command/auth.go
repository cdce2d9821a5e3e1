package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and store the session locally",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Account email",
				EnvVars:  []string{"TANKMATE_EMAIL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
				EnvVars: []string{"TANKMATE_PASSWORD"},
			},
			&cli.BoolFlag{
				Name:  "password-stdin",
				Usage: "Read the password from standard input",
			},
		},
		Action: runLogin,
	}
}

func runLogin(c *cli.Context) error {
	rt, err := Ensure(c)
	if err != nil {
		return err
	}
	password, err := readPassword(c, rt, "password", "Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	spin := output.NewSpinner(rt.Err, "Signing in...")
	spin.Start()
	user, err := rt.Auth.Login(ctx, domain.LoginRequest{
		Email:    strings.TrimSpace(c.String("email")),
		Password: password,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	if rt.Format() != output.FormatTable {
		return rt.Print(user)
	}
	fmt.Fprintf(rt.Out, "Logged in as %s\n", displayName(user))
	return nil
}

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Display name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Account email",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password: at least 8 characters with upper and lower case letters and a digit",
				EnvVars: []string{"TANKMATE_PASSWORD"},
			},
			&cli.StringFlag{
				Name:  "confirm-password",
				Usage: "Repeat the password (prompted when the password is prompted)",
			},
			&cli.BoolFlag{
				Name:  "password-stdin",
				Usage: "Read the password from standard input",
			},
		},
		Action: runRegister,
	}
}

func runRegister(c *cli.Context) error {
	rt, err := Ensure(c)
	if err != nil {
		return err
	}
	password, err := readPassword(c, rt, "password", "Password: ")
	if err != nil {
		return err
	}

	confirm := c.String("confirm-password")
	if confirm == "" && !c.IsSet("password") && !c.Bool("password-stdin") {
		if confirm, err = prompt(rt, "Confirm password: "); err != nil {
			return err
		}
	}
	if confirm != "" && confirm != password {
		return domain.ErrPasswordMismatch
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	spin := output.NewSpinner(rt.Err, "Creating account...")
	spin.Start()
	user, err := rt.Auth.Register(ctx, domain.RegisterRequest{
		Name:     strings.TrimSpace(c.String("name")),
		Email:    strings.TrimSpace(c.String("email")),
		Password: password,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	if rt.Format() != output.FormatTable {
		return rt.Print(user)
	}
	fmt.Fprintf(rt.Out, "Account created. Logged in as %s\n", displayName(user))
	return nil
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the stored session",
		Action: func(c *cli.Context) error {
			rt, err := Ensure(c)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(c)
			defer cancel()
			if err := rt.Auth.Logout(ctx); err != nil {
				return err
			}
			rt.Notice("Logged out")
			return nil
		},
	}
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user",
		Action: func(c *cli.Context) error {
			rt, err := Ensure(c)
			if err != nil {
				return err
			}
			view := whoamiView{Server: rt.Client.BaseURL()}
			if err := rt.Auth.RequireAuth(c.Context); err == nil {
				view.Authenticated = true
				if u := rt.State().User; u != nil {
					view.ID, view.Email, view.Name = u.ID, u.Email, u.Name
				}
				if tok := rt.Sessions.Token(c.Context); tok != "" {
					view.ExpiresIn = humanDuration(rt.Sessions.Checker().Remaining(tok))
				}
			}
			return rt.Print(view)
		},
	}
}

func displayName(u *domain.User) string {
	switch {
	case u == nil:
		return "unknown user"
	case u.Name != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	case u.Email != "":
		return u.Email
	case u.Name != "":
		return u.Name
	default:
		return u.ID
	}
}

// readPassword takes the password from the flag, standard input or a prompt.
func readPassword(c *cli.Context, rt *Runtime, flag, label string) (string, error) {
	if c.Bool("password-stdin") {
		if c.IsSet(flag) {
			return "", domain.ErrArgumentConflict.WithDetails("--" + flag + " and --password-stdin")
		}
		return readLine(rt.Input())
	}
	if c.IsSet(flag) {
		return c.String(flag), nil
	}
	return prompt(rt, label)
}

func prompt(rt *Runtime, label string) (string, error) {
	fmt.Fprint(rt.Err, label)
	return readLine(rt.Input())
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", domain.ErrMissingArgument.WithDetails("password").WithCause(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

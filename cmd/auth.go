package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mangadesk/internal/domain"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a refresh token in the config",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		a := newApp(cmd)
		defer a.Close()

		if username == "" {
			username = a.cfg.GetString(domain.KeyUsername)
		}
		if username == "" {
			a.log.Fatal().Msg("no username given, use --username")
		}

		secret, err := readPassword()
		if err != nil {
			a.fail("could not read password", err)
		}

		if err := a.client.Session().Login(ctx, username, secret); err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				a.fail("wrong username or password", err)
			}
			a.fail("login failed", err)
		}

		fmt.Println("Logged in as", username)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the stored refresh token",
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp(cmd)
		defer a.Close()

		if err := a.client.Session().Logout(cmd.Context()); err != nil {
			a.log.Warn().Err(err).Msg("server did not confirm logout")
		}

		fmt.Println("Logged out")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the stored session is valid",
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp(cmd)
		defer a.Close()

		ok, err := a.client.Session().Check(cmd.Context())
		if err != nil {
			a.fail("could not check session", err)
		}

		state := a.client.Session().State()
		user := a.cfg.GetString(domain.KeyUsername)

		if jsonOutput {
			_ = printJSON(map[string]any{
				"state":           state.String(),
				"isAuthenticated": ok,
				"username":        user,
			})
			return
		}

		if ok {
			fmt.Printf("Logged in as %s\n", user)
			return
		}
		fmt.Printf("Not logged in (%s)\n", state)
	},
}

// readPassword takes the password from the flag, the environment or the
// first line of stdin, in that order.
func readPassword() (string, error) {
	if password != "" {
		return password, nil
	}
	if env := os.Getenv("MANGADESK__PASSWORD"); env != "" {
		return env, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "could not read password from stdin")
	}

	return strings.TrimRight(line, "\r\n"), nil
}

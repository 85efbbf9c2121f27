// blogctl is a command-line consumer of the session manager: it logs in,
// registers, renews and inspects a blog session that persists across
// invocations the same way a browser session persists across reloads.
package main

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-auth-client/authapi"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/posts"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/session/credentials"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type cliContext struct {
	cfg     config.Client
	manager *session.Manager
}

// newManager wires the session manager exactly the way a browser context
// would be wired: one cookie jar shared between the auth client and the
// cookie mirror, one durable file store.
func newManager(verbose bool) (*cliContext, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Jar: jar}

	api, err := authapi.New(cfg.APIBaseURL,
		authapi.WithHTTPClient(httpClient),
		authapi.WithTimeout(cfg.RequestTimeout),
		authapi.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	fileStore, err := credentials.NewFileStore(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	origin, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}

	manager, err := session.NewManager(api, session.Stores{
		Credentials: fileStore,
		Cookie:      credentials.NewCookieMirror(jar, origin),
	}, session.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	manager.Rehydrate()
	return &cliContext{cfg: cfg, manager: manager}, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "blogctl",
		Short:         "Manage a blog platform session from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log network and state transitions")

	rootCmd.AddCommand(
		newSignupCmd(&verbose),
		newLoginCmd(&verbose),
		newLogoutCmd(&verbose),
		newRefreshCmd(&verbose),
		newWhoamiCmd(&verbose),
		newPostsCmd(&verbose),
	)
	return rootCmd
}

func newSignupCmd(verbose *bool) *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newManager(*verbose)
			if err != nil {
				return err
			}
			if err := cli.manager.SignUp(cmd.Context(), session.RegisterInput{
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			}); err != nil {
				return err
			}
			fmt.Println("Account created.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&firstName, "firstname", "", "first name")
	cmd.Flags().StringVar(&lastName, "lastname", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("firstname")
	_ = cmd.MarkFlagRequired("lastname")
	return cmd
}

func newLoginCmd(verbose *bool) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newManager(*verbose)
			if err != nil {
				return err
			}
			if err := cli.manager.LogIn(cmd.Context(), session.LoginInput{
				Email:    email,
				Password: password,
			}); err != nil {
				return err
			}
			current := cli.manager.Snapshot()
			if current.Profile != nil {
				fmt.Printf("Logged in as %s <%s>\n", current.Profile.FullName(), current.Profile.Email)
			} else {
				fmt.Println("Logged in.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newManager(*verbose)
			if err != nil {
				return err
			}
			cli.manager.LogOut()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newRefreshCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newManager(*verbose)
			if err != nil {
				return err
			}
			if err := cli.manager.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Access token renewed.")
			return nil
		},
	}
}

func newWhoamiCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newManager(*verbose)
			if err != nil {
				return err
			}
			current := cli.manager.Snapshot()
			fmt.Printf("State: %s\n", current.State())
			if current.Profile != nil {
				fmt.Printf("User:  %s <%s> (%s)\n", current.Profile.FullName(), current.Profile.Email, current.Profile.Role)
			}
			return nil
		},
	}
}

func newPostsCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List posts from the blog API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newManager(*verbose)
			if err != nil {
				return err
			}

			postsClient, err := posts.NewClient(cli.cfg.APIBaseURL, cli.manager.TokenSource(cmd.Context()))
			if err != nil {
				return err
			}

			fetched, err := postsClient.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(fetched) == 0 {
				fmt.Println("No posts.")
				return nil
			}
			for _, post := range fetched {
				fmt.Printf("%s  %s\n", post.CreatedAt.Format("2006-01-02"), post.Title)
			}
			return nil
		},
	}
}

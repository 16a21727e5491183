// Package cli is the travlr admin command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/travlr/internal/client"
	"github.com/xyz-asif/travlr/internal/pkg/validator"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	apiURL    string
	tokenFile string
	client    *client.Client
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	defaultURL := os.Getenv("TRAVLR_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}

	rootCmd := &cobra.Command{
		Use:           "travlr",
		Short:         "Manage Travlr trips from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !validator.IsValidURL(a.apiURL) {
				return fmt.Errorf("invalid --api URL %q", a.apiURL)
			}
			c, err := client.New(a.apiURL, client.WithTokenStore(client.FileTokenStore{Path: a.tokenFile}))
			if err != nil {
				return err
			}
			a.client = c
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api", defaultURL, "API base URL")
	rootCmd.PersistentFlags().StringVar(&a.tokenFile, "token-file", client.DefaultTokenPath(), "where the session token is kept")

	rootCmd.AddCommand(newLoginCmd(a), newRegisterCmd(a), newLogoutCmd(a), newTripsCmd(a))
	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(stderr, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

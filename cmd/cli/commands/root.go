package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/taskboard/pkg/api/v1/client"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
	"github.com/celestiaorg/taskboard/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagEmail         = "email"
	flagPassword      = "password"
	flagGuest         = "guest"
)

// environment variable names
const (
	envServerAddress = "TASKBOARD_SERVER_ADDRESS"
	envEmail         = "TASKBOARD_EMAIL"
	envPassword      = "TASKBOARD_PASSWORD"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

func init() {
	// Set a basic default for the flag. PersistentPreRunE will handle env var override.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL, "Address of the Taskboard server (env: "+envServerAddress+")")
	RootCmd.PersistentFlags().StringP(flagEmail, "e", "", "Email to log in with (env: "+envEmail+")")
	RootCmd.PersistentFlags().StringP(flagPassword, "p", "", "Password to log in with (env: "+envPassword+")")
	RootCmd.PersistentFlags().Bool(flagGuest, false, "Log in as the guest account")

	RootCmd.AddCommand(GetUsersCmd())
	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetTasksCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard CLI - A command line interface for the Taskboard API",
	Long: `Taskboard CLI manages projects, tasks and comments through the Taskboard API.
Every command runs in a fresh session: pass credentials with --email and --password,
or --guest to use the shared guest account.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > Env Var > Default
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}

		c, err := client.NewClient(&client.Options{BaseURL: serverAddress, Timeout: client.DefaultTimeout})
		if err != nil {
			return err
		}
		apiClient = c

		return login(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// login starts a session with the credentials given by flags or environment
func login(cmd *cobra.Command) error {
	ctx := context.Background()

	guest, _ := cmd.Flags().GetBool(flagGuest)
	if guest {
		if _, err := apiClient.LoginAsGuest(ctx); err != nil {
			return fmt.Errorf("error logging in as guest: %w", err)
		}
		return nil
	}

	email := flagOrEnv(cmd, flagEmail, envEmail)
	if email == "" {
		return fmt.Errorf("required flag(s) %q not set", flagEmail)
	}
	password := flagOrEnv(cmd, flagPassword, envPassword)

	if _, err := apiClient.Login(ctx, handlers.LoginParams{Email: email, Password: password}); err != nil {
		return fmt.Errorf("error logging in: %w", err)
	}
	return nil
}

func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	value, _ := cmd.Flags().GetString(flag)
	if value == "" {
		value = os.Getenv(env)
	}
	return value
}

// printJSON pretty prints v to the command's output
func printJSON(cmd *cobra.Command, v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
	return err
}

// getID reads a required ID flag
func getID(cmd *cobra.Command, name string) (uint, error) {
	id, err := cmd.Flags().GetUint(name)
	if err != nil {
		return 0, fmt.Errorf("error getting %s flag: %w", name, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Errorf("failed to mark %s flag as required for %s command: %w", name, cmd.Name(), err))
		}
	}
}

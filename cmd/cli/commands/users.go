package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
)

// User flag names
const (
	flagUserEmail    = "user-email"
	flagUserPassword = "user-password"
	flagUserName     = "name"
	flagPage         = "page"
)

// userOutput represents the filtered output for a user
type userOutput struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// userListOutput represents the filtered output for a list of users
type userListOutput struct {
	Users []userOutput `json:"users"`
}

// GetUsersCmd returns the users command
func GetUsersCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users (admin only)",
	}

	listUsersCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := cmd.Flags().GetInt(flagPage)
			if err != nil {
				return fmt.Errorf("error getting page flag: %w", err)
			}

			response, err := apiClient.ListUsers(context.Background(), page)
			if err != nil {
				return fmt.Errorf("error fetching users: %w", err)
			}

			output := userListOutput{Users: make([]userOutput, 0, len(response.Rows))}
			for _, u := range response.Rows {
				output.Users = append(output.Users, userOutput{ID: u.ID, Email: u.Email, Name: u.Name})
			}
			return printJSON(cmd, output)
		},
	}
	listUsersCmd.Flags().Int(flagPage, 1, "Page number for pagination")

	registerUserCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString(flagUserEmail)
			password, _ := cmd.Flags().GetString(flagUserPassword)
			name, _ := cmd.Flags().GetString(flagUserName)

			req := handlers.RegisterParams{Email: email, Password: password, Name: name}
			if _, err := apiClient.Register(context.Background(), req); err != nil {
				return fmt.Errorf("error registering user: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "User '%s' registered successfully\n", email)
			return err
		},
	}
	registerUserCmd.Flags().String(flagUserEmail, "", "Email of the user to register")
	registerUserCmd.Flags().String(flagUserPassword, "", "Password of the user to register")
	registerUserCmd.Flags().StringP(flagUserName, "n", "", "Name of the user to register")
	mustMarkRequired(registerUserCmd, flagUserEmail, flagUserPassword, flagUserName)

	userCmd.AddCommand(listUsersCmd, registerUserCmd)
	return userCmd
}

package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/taskboard/pkg/api/v1/client"
)

// runCommand executes args against a fresh command tree that talks to the
// server through c, returning what the command printed
func runCommand(t *testing.T, c client.Client, group *cobra.Command, args ...string) (string, error) {
	t.Helper()

	// Store the original client and restore it after the test
	originalClient := apiClient
	apiClient = c
	defer func() { apiClient = originalClient }()

	cmd := &cobra.Command{
		Use:           "taskboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(group)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

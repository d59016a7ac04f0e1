// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// Environment variables that override the config file.
var envVars = []string{"BBFMT_API_KEY", "API_KEY", "BBFMT_LISTEN_ADDR", "BBFMT_REMOTE_URL"}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bbfmt configuration",
		Long:  `Commands for viewing, testing, and clearing bbfmt configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

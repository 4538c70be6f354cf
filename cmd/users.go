package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/temporal"
)

// UsersResult is the output of the users command.
type UsersResult struct {
	Users    []string                `json:"users"`
	Activity []temporal.UserActivity `json:"most_active_users"`
}

// NewUsersCommand creates the users command.
func NewUsersCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var top int

	cmd := &cobra.Command{
		Use:   "users <transcript>",
		Short: "List the participants of a transcript",
		Long: `List the participants of a transcript with their message counts.

The user list starts with "Overall", which selects the whole conversation in
other commands, followed by participant names in alphabetical order. System
notifications are not participants.`,
		Example: `  chatpulse users chat.txt
  chatpulse users chat.txt --top 5 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.resolveConfig()
			if err != nil {
				return err
			}
			tr, err := loadTranscript(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			tl := tr.parsed.Timeline
			n := top
			if n <= 0 {
				n = -1
			}
			result := UsersResult{
				Users:    tl.Users(),
				Activity: temporal.MostActiveUsers(tl.All(), n),
			}

			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, result, func(w io.Writer) error {
				t := newTable("USER", "MESSAGES", "SHARE")
				for _, a := range result.Activity {
					t.add(a.Author, a.Messages, formatPercent(a.Percent))
				}
				return t.render(w)
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "Only list the N most active participants")

	return cmd
}

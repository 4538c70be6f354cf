package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/roles"
)

// RoleResult is one role in the roles command output.
type RoleResult struct {
	Role string `json:"role"`
	roles.Assignment
}

// NewRolesCommand creates the roles command.
func NewRolesCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "roles <transcript>",
		Short: "Classify participants into conversation roles",
		Long: `Rank participants for each conversation role.

  Initiator    starts the most days
  Responder    replies most relative to the conversations they start
  Driver       sends the most messages
  Listener     sends few, short messages
  Broadcaster  shares the most media and links (or the longest messages
               when nobody shares any)

The number of participants listed per role is analysis.top_roles (default 3).`,
		Example: `  chatpulse roles chat.txt
  chatpulse roles chat.txt --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, cfg, err := runReport(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			assigned := rep.Overall().Roles
			results := make([]RoleResult, 0, len(assigned))
			for _, name := range roles.Names() {
				if a, ok := assigned[name]; ok {
					results = append(results, RoleResult{Role: name, Assignment: a})
				}
			}

			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, results, func(w io.Writer) error {
				t := newTable("ROLE", "RANK", "USER", "VALUE")
				for _, r := range results {
					for i, top := range r.Top {
						t.add(r.Role, fmt.Sprintf("#%d", i+1), top.Author, top.Value)
					}
				}
				return t.render(w)
			})
		},
	}

	return cmd
}

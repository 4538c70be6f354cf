package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/health"
)

// UserHealth is one row of the health command output.
type UserHealth struct {
	User   string       `json:"user"`
	Health health.Score `json:"health"`
}

// NewHealthCommand creates the health command.
func NewHealthCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var user string

	cmd := &cobra.Command{
		Use:   "health <transcript>",
		Short: "Score the health of a conversation",
		Long: `Score how healthy a conversation is, from 0 to 100.

The score weighs sentiment (30%), engagement (25%), response speed (20%)
and balance between participants (15%), minus a penalty of 2 points per
detected anomaly up to 10. Ratings: Legendary (85+), Vibrant (70+),
Healthy (50+), Sporadic (30+), otherwise Cold.

Without --user every section is scored.`,
		Example: `  chatpulse health chat.txt
  chatpulse health chat.txt --user Overall --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, cfg, err := runReport(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			users := rep.Meta.Users
			if user != "" {
				name, _, err := selectUser(rep, user)
				if err != nil {
					return err
				}
				users = []string{name}
			}

			rows := make([]UserHealth, 0, len(users))
			for _, u := range users {
				rows = append(rows, UserHealth{User: u, Health: rep.Analytics[u].Health})
			}

			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, rows, func(w io.Writer) error {
				t := newTable("USER", "SCORE", "RATING", "SENTIMENT", "ENGAGEMENT", "RESPONSE", "BALANCE", "PENALTY")
				for _, r := range rows {
					b := r.Health.Metrics
					if b == nil {
						t.add(r.User, formatScore(r.Health.Score), r.Health.Rating, "-", "-", "-", "-", "-")
						continue
					}
					t.add(r.User, formatScore(r.Health.Score), r.Health.Rating,
						formatScore(b.Sentiment), formatScore(b.Engagement), formatScore(b.Response),
						formatScore(b.Balance), formatScore(b.Penalty))
				}
				return t.render(w)
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Only score this participant (or Overall)")

	return cmd
}

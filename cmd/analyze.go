package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/pkg/report"
)

// UserReport is the analyze output when --user selects one section.
type UserReport struct {
	Meta    report.Meta     `json:"meta"`
	User    string          `json:"user"`
	Section *report.Section `json:"analytics"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var user string

	cmd := &cobra.Command{
		Use:   "analyze <transcript>",
		Short: "Analyse a chat transcript",
		Long: `Parse an exported chat transcript and run every analytic over it.

The report has one section for the whole conversation ("Overall") and one
per participant. Each section holds message counts, activity timelines by
day, hour, weekday, month, quarter and year, turn-taking statistics, the
longest messages, top words and emoji, sentiment, anomalies and a health
score. The Overall section also lists the busiest periods, the most active
users and participant roles.

The transcript may be a plain .txt export, the .zip produced by the
export feature, or a .gz / .zst compressed text file. Use "-" to read
from standard input.`,
		Example: `  # Full report as text
  chatpulse analyze chat.txt

  # Full report as JSON
  chatpulse analyze WhatsApp-Chat.zip --output json

  # Only one participant's section
  chatpulse analyze chat.txt --user Alice --output yaml

  # Read from stdin
  cat chat.txt | chatpulse analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, cfg, err := runReport(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}

			if user == "" {
				return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, rep, func(w io.Writer) error {
					return renderReport(w, rep, rep.Meta.Users)
				})
			}

			name, section, err := selectUser(rep, user)
			if err != nil {
				return err
			}
			out := UserReport{Meta: rep.Meta, User: name, Section: section}
			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, out, func(w io.Writer) error {
				return renderReport(w, rep, []string{name})
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Only output this participant's section (or Overall)")

	return cmd
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/pkg/analytics/anomaly"
)

// AnomaliesResult is the output of the anomalies command.
type AnomaliesResult struct {
	User      string         `json:"user"`
	Anomalies anomaly.Result `json:"anomalies"`
}

// NewAnomaliesCommand creates the anomalies command.
func NewAnomaliesCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var user string

	cmd := &cobra.Command{
		Use:   "anomalies <transcript>",
		Short: "Find unusual days and long silences",
		Long: `Find unusual days and long silences in a conversation.

Days are compared on message volume, average sentiment, media and links
with an isolation forest; outliers are labelled by their likely cause
(Activity Burst, Activity Drought, Sentiment Shift, Joy Spike, Media
Burst). Gaps between consecutive messages longer than the configured
threshold (default 72h) are reported as Silent Periods.

Pattern detection needs at least 5 distinct days and gap detection at
least 5 messages; shorter transcripts report no anomalies.`,
		Example: `  chatpulse anomalies chat.txt
  chatpulse anomalies chat.txt --user Alice --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, cfg, err := runReport(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			name, section, err := selectUser(rep, user)
			if err != nil {
				return err
			}

			result := AnomaliesResult{User: name, Anomalies: section.Anomalies}
			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, result, func(w io.Writer) error {
				all := append(append([]anomaly.Anomaly(nil), result.Anomalies.Spikes...), result.Anomalies.Drops...)
				if len(all) == 0 {
					_, err := fmt.Fprintf(w, "No anomalies detected for %s.\n", name)
					return err
				}
				t := newTable("DATE", "TYPE", "CATEGORY", "SEVERITY", "SCORE", "DESCRIPTION")
				for _, a := range all {
					t.add(a.Date, a.Type, a.Category, a.Severity, fmt.Sprintf("%.4f", a.SeverityScore), a.Description)
				}
				if err := t.render(w); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "\n%d detected, %d spikes and %d drops listed.\n",
					result.Anomalies.Total, len(result.Anomalies.Spikes), len(result.Anomalies.Drops))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Participant to inspect (default Overall)")

	return cmd
}

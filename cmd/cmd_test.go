package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/config"
	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
	"github.com/otherjamesbrown/chatpulse/pkg/observability"
)

const scenario = "01/01/24, 10:00 am - Alice: hi\n" +
	"01/01/24, 10:05 am - Bob: hello\n" +
	"01/01/24, 10:10 am - Alice: how are you\n"

func newTestDeps(format config.OutputFormat) *CommandDeps {
	cfg := config.DefaultConfig()
	cfg.OutputFormat = format
	reg := prometheus.NewRegistry()
	deps := DefaultDeps()
	deps.Config = cfg
	deps.Registry = reg
	deps.Metrics = observability.NewMetrics(reg)
	return deps
}

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write transcript: %v", err)
	}
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestCommandStructure verifies every command is documented and takes one argument.
func TestCommandStructure(t *testing.T) {
	commands := map[string]*cobra.Command{
		"analyze":   NewAnalyzeCommand(nil),
		"users":     NewUsersCommand(nil),
		"health":    NewHealthCommand(nil),
		"anomalies": NewAnomaliesCommand(nil),
		"roles":     NewRolesCommand(nil),
	}

	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			if cmd.Name() != name {
				t.Errorf("Name() = %q, want %q", cmd.Name(), name)
			}
			if cmd.Short == "" {
				t.Error("Short description is empty")
			}
			if cmd.Long == "" {
				t.Error("Long description is empty")
			}
			if !strings.Contains(cmd.Example, "chatpulse "+name) {
				t.Errorf("Example should mention 'chatpulse %s'", name)
			}
			if err := cmd.Args(cmd, []string{}); err == nil {
				t.Error("expected an error with no arguments")
			}
			if err := cmd.Args(cmd, []string{"chat.txt"}); err != nil {
				t.Errorf("unexpected error with one argument: %v", err)
			}
		})
	}
}

func TestAnalyze_JSON(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	out, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var decoded struct {
		Meta struct {
			Events int      `json:"events"`
			Users  []string `json:"users"`
			Digest string   `json:"digest"`
		} `json:"meta"`
		Analytics map[string]json.RawMessage `json:"analytics"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if decoded.Meta.Events != 3 {
		t.Errorf("events = %d, want 3", decoded.Meta.Events)
	}
	if strings.Join(decoded.Meta.Users, ",") != "Overall,Alice,Bob" {
		t.Errorf("users = %v", decoded.Meta.Users)
	}
	if len(decoded.Meta.Digest) != 64 {
		t.Errorf("digest = %q, want 64 hex chars", decoded.Meta.Digest)
	}
	for _, u := range []string{"Overall", "Alice", "Bob"} {
		if _, ok := decoded.Analytics[u]; !ok {
			t.Errorf("missing section %q", u)
		}
	}
}

func TestAnalyze_UserSection(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	out, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, scenario), "--user", "Bob")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var decoded UserReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.User != "Bob" {
		t.Errorf("user = %q, want Bob", decoded.User)
	}
	if decoded.Section == nil || decoded.Section.BasicStats.Messages != 1 {
		t.Errorf("Bob section = %+v", decoded.Section)
	}
}

func TestAnalyze_UnknownUser(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	_, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, scenario), "--user", "Carol")
	if !chaterrors.IsUnknownAuthor(err) {
		t.Errorf("expected ErrUnknownAuthor, got %v", err)
	}
}

func TestAnalyze_NoMessages(t *testing.T) {
	deps := newTestDeps(config.OutputFormatText)
	_, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, "just some text\nwith no headers\n"))
	if !chaterrors.IsNoMessages(err) {
		t.Errorf("expected ErrNoMessages, got %v", err)
	}
}

func TestAnalyze_MissingFile(t *testing.T) {
	deps := newTestDeps(config.OutputFormatText)
	_, err := execute(t, NewAnalyzeCommand(deps), filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestAnalyze_YAML(t *testing.T) {
	deps := newTestDeps(config.OutputFormatYAML)
	out, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"meta:", "analytics:", "Overall:", `bucket: "2024"`, "response_latency:"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q", want)
		}
	}
	if strings.Contains(out, `"meta":`) {
		t.Error("YAML output should not contain JSON keys")
	}
}

func TestAnalyze_Text(t *testing.T) {
	deps := newTestDeps(config.OutputFormatText)
	out, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"== Overall ==", "== Alice ==", "== Bob ==", "Replies:  Alice 5.0 min, Bob 5.0 min", "Health:"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\n%s", want, out)
		}
	}
}

func TestAnalyze_Stdin(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	deps.Stdin = strings.NewReader(scenario)
	out, err := execute(t, NewAnalyzeCommand(deps), "-")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, `"source": "-"`) {
		t.Errorf("expected stdin source in meta\n%s", out)
	}
}

func TestAnalyze_MetricsFile(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	deps.Config.MetricsFile = filepath.Join(t.TempDir(), "chatpulse.prom")

	if _, err := execute(t, NewAnalyzeCommand(deps), writeTranscript(t, scenario)); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	data, err := os.ReadFile(deps.Config.MetricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "chatpulse_events_parsed_total 3") {
		t.Errorf("metrics file missing parsed events:\n%s", data)
	}
}

func TestUsers(t *testing.T) {
	deps := newTestDeps(config.OutputFormatText)
	out, err := execute(t, NewUsersCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("users failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "Alice") || !strings.Contains(lines[1], "66.67%") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestUsers_JSON(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	out, err := execute(t, NewUsersCommand(deps), writeTranscript(t, scenario), "--top", "1")
	if err != nil {
		t.Fatalf("users failed: %v", err)
	}
	var decoded UsersResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded.Users) != 3 || decoded.Users[0] != "Overall" {
		t.Errorf("users = %v", decoded.Users)
	}
	if len(decoded.Activity) != 1 || decoded.Activity[0].Author != "Alice" {
		t.Errorf("activity = %+v", decoded.Activity)
	}
}

func TestHealth_JSON(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	out, err := execute(t, NewHealthCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	var rows []UserHealth
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if r.Health.Score < 0 || r.Health.Score > 100 {
			t.Errorf("%s score %v out of range", r.User, r.Health.Score)
		}
	}
}

func TestHealth_SingleUser(t *testing.T) {
	deps := newTestDeps(config.OutputFormatText)
	out, err := execute(t, NewHealthCommand(deps), writeTranscript(t, scenario), "-u", "Alice")
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "Alice") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAnomalies_None(t *testing.T) {
	deps := newTestDeps(config.OutputFormatText)
	out, err := execute(t, NewAnomaliesCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("anomalies failed: %v", err)
	}
	if !strings.Contains(out, "No anomalies detected for Overall.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAnomalies_SilentPeriod(t *testing.T) {
	raw := "01/03/24, 9:00 am - Alice: a\n" +
		"02/03/24, 9:00 am - Bob: b\n" +
		"03/03/24, 9:00 am - Alice: c\n" +
		"04/03/24, 9:00 am - Bob: d\n" +
		"08/03/24, 9:00 am - Alice: e\n"
	deps := newTestDeps(config.OutputFormatJSON)
	out, err := execute(t, NewAnomaliesCommand(deps), writeTranscript(t, raw))
	if err != nil {
		t.Fatalf("anomalies failed: %v", err)
	}
	var decoded AnomaliesResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	found := false
	for _, a := range decoded.Anomalies.Drops {
		if a.Type == "Silent Period" {
			found = true
			if a.Metrics["gap_hours"] != 96 {
				t.Errorf("gap_hours = %v, want 96", a.Metrics["gap_hours"])
			}
			if a.Severity != "Medium" {
				t.Errorf("severity = %q, want Medium", a.Severity)
			}
		}
	}
	if !found {
		t.Errorf("no Silent Period in %+v", decoded.Anomalies)
	}
}

func TestRoles_JSON(t *testing.T) {
	deps := newTestDeps(config.OutputFormatJSON)
	out, err := execute(t, NewRolesCommand(deps), writeTranscript(t, scenario))
	if err != nil {
		t.Fatalf("roles failed: %v", err)
	}
	var results []RoleResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d roles, want 5", len(results))
	}
	if results[0].Role != "Initiator" || results[0].Top[0].Author != "Alice" {
		t.Errorf("first role = %+v", results[0])
	}
}

func TestTable_WideCharacters(t *testing.T) {
	tb := newTable("NAME", "N")
	tb.add("日本", 1)
	tb.add("ab", 22)

	var out bytes.Buffer
	if err := tb.render(&out); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "NAME  N\n日本  1\nab    22\n"
	if out.String() != want {
		t.Errorf("render = %q, want %q", out.String(), want)
	}
}

func TestWriteYAML_UsesJSONKeys(t *testing.T) {
	v := struct {
		UserName string `json:"user_name"`
		Count    int    `json:"count"`
	}{"Alice", 2}

	var out bytes.Buffer
	if err := writeYAML(&out, v); err != nil {
		t.Fatalf("writeYAML failed: %v", err)
	}
	if out.String() != "user_name: Alice\ncount: 2\n" {
		t.Errorf("writeYAML = %q", out.String())
	}
}

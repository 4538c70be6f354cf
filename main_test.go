package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatpulse/cmd"
	"github.com/otherjamesbrown/chatpulse/config"
	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
)

// isolate points configuration at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvPrefix+"CONFIG_DIR", dir)
	for _, k := range []string{"OUTPUT_FORMAT", "LOG_LEVEL", "LOG_FORMAT", "METRICS_FILE", "WORKERS"} {
		t.Setenv(config.EnvPrefix+k, "")
		os.Unsetenv(config.EnvPrefix + k)
	}
	t.Chdir(t.TempDir())
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(cmd.DefaultDeps())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestRootCommandStructure(t *testing.T) {
	root := newRootCmd(cmd.DefaultDeps())

	for _, name := range []string{"analyze", "users", "health", "anomalies", "roles", "config", "completion", "version"} {
		if findSubcommand(root, name) == nil {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, flag := range []string{"config", "output", "log-format", "debug"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}

	configCmd := findSubcommand(root, "config")
	for _, name := range []string{"show", "init"} {
		if findSubcommand(configCmd, name) == nil {
			t.Errorf("missing config subcommand %q", name)
		}
	}
}

func TestVersion_JSON(t *testing.T) {
	out, err := run(t, "version", "--output", "json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info["generator"] != "chatpulse" {
		t.Errorf("generator = %q, want chatpulse", info["generator"])
	}
	if info["go_version"] == "" {
		t.Error("go_version is empty")
	}
}

func TestAnalyze_OutputFlagOverridesConfig(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte("output_format: yaml\n"), 0600); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte("01/01/24, 10:00 am - Alice: hi\n01/01/24, 10:05 am - Bob: hello\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "users", path)
	if err != nil {
		t.Fatalf("users failed: %v", err)
	}
	if !strings.Contains(out, "most_active_users:") {
		t.Errorf("expected YAML from the config file, got:\n%s", out)
	}

	out, err = run(t, "users", path, "--output", "json")
	if err != nil {
		t.Fatalf("users failed: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("expected JSON from --output, got:\n%s", out)
	}
}

func TestInvalidOutputFlag(t *testing.T) {
	isolate(t)
	_, err := run(t, "users", "chat.txt", "--output", "xml")
	if !chaterrors.IsValidation(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	isolate(t)
	_, err := run(t, "users", "chat.txt", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected an error for a missing --config file")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Created configuration file") {
		t.Errorf("unexpected init output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultConfigFile)); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	out, err = run(t, "config", "init")
	if err != nil {
		t.Fatalf("second config init failed: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected the existing file to be kept: %s", out)
	}

	out, err = run(t, "config", "show", "--output", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"# Config file:", "output_format: json", "gap_threshold: 72h0m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(out, "chatpulse") {
		t.Error("bash completion should mention chatpulse")
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

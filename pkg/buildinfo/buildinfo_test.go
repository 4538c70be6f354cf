package buildinfo

import (
	"encoding/json"
	"runtime"
	"testing"
)

func TestGet_Defaults(t *testing.T) {
	info := Get()

	if info.Generator != Generator {
		t.Errorf("expected Generator=%q, got %q", Generator, info.Generator)
	}
	if info.Version != "dev" {
		t.Errorf("expected Version='dev', got %q", info.Version)
	}
	if info.Commit == "" {
		t.Error("expected a non-empty Commit")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected GoVersion=%q, got %q", runtime.Version(), info.GoVersion)
	}
}

func TestGet_LdflagsCommitWins(t *testing.T) {
	orig := Commit
	defer func() { Commit = orig }()

	Commit = "abc123d"
	if got := Get().Commit; got != "abc123d" {
		t.Errorf("expected Commit='abc123d', got %q", got)
	}
}

func TestString(t *testing.T) {
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	defer func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	}()

	if got, want := String(), "dev (unknown, unknown)"; got != want {
		t.Errorf("expected String()=%q, got %q", want, got)
	}

	Version, Commit, BuildTime = "v1.2.3", "abc123d", "2026-02-07T10:30:00Z"
	if got, want := String(), "v1.2.3 (abc123d, 2026-02-07T10:30:00Z)"; got != want {
		t.Errorf("expected String()=%q, got %q", want, got)
	}
}

func TestInfo_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Info{Generator: "chatpulse", Version: "v1.0.0"})
	if err != nil {
		t.Fatalf("failed to marshal Info: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
	for _, key := range []string{"generator", "version", "commit", "build_time", "go_version"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in JSON output", key)
		}
	}
	if len(decoded) != 5 {
		t.Errorf("expected 5 keys in JSON, got %d", len(decoded))
	}
}

package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-rnote/internal/config"
	"github.com/alnah/go-rnote/internal/yamlutil"
)

func TestRunConfig_PrintsEffectiveConfig(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, filepath.Join(t.TempDir(), "work.yaml"), "document:\n  theme: dark\n  size: a4\nrender:\n  workers: 2\n")

	te := newTestEnv(t)
	code := runMain([]string{"rnote", "config", "-c", cfgPath, "--size", "legal", "-t", "1m"}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, te.stderr)
	}

	var got config.Config
	if err := yamlutil.UnmarshalStrict([]byte(te.stdout.String()), &got); err != nil {
		t.Fatalf("output is not a valid config: %v\n%s", err, te.stdout)
	}

	want := config.DefaultConfig()
	want.Document.Theme = "dark"
	want.Document.Size = "legal"
	want.Render.Workers = 2
	want.Render.Timeout = "1m"
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("effective config mismatch (-want +got):\n%s", diff)
	}
}

func TestRunConfig_RejectsArguments(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	if code := runMain([]string{"rnote", "config", "extra"}, te.Environment); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}

package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunThemes(t *testing.T) {
	t.Parallel()

	assets := t.TempDir()
	writeFile(t, filepath.Join(assets, "themes", "sepia.css"), "body { color: #704214; }")
	writeFile(t, filepath.Join(assets, "themes", "broken.css"), "p { :red }")
	writeFile(t, filepath.Join(assets, "templates", "letter.rntp"), "size letter")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr string
	}{
		{
			name:       "list embedded",
			args:       nil,
			wantCode:   ExitSuccess,
			wantStdout: []string{"Themes:\n  dark\n  light (default)\n", "Templates:\n  memo\n  poster\n  report\n"},
		},
		{
			name:       "list with overrides",
			args:       []string{"--asset-path", assets},
			wantCode:   ExitSuccess,
			wantStdout: []string{"  sepia\n", "  letter\n"},
		},
		{
			name:       "check embedded",
			args:       []string{"--check"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"ok   dark: ", "ok   light: "},
		},
		{
			name:       "check broken theme",
			args:       []string{"--check", "--asset-path", assets, "broken", "sepia"},
			wantCode:   ExitDiagnostics,
			wantStdout: []string{"FAIL broken: ", "ok   sepia: 1 rulesets"},
		},
		{
			name:       "check unknown theme",
			args:       []string{"--check", "nope"},
			wantCode:   ExitUsage,
			wantStderr: "hint: available: dark, light",
		},
		{
			name:     "invalid asset path",
			args:     []string{"--asset-path", filepath.Join(assets, "missing")},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			code := runMain(append([]string{"rnote", "themes"}, tt.args...), te.Environment)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, te.stderr)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(te.stdout.String(), want) {
					t.Errorf("stdout = %q, want substring %q", te.stdout, want)
				}
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", te.stderr, tt.wantStderr)
			}
		})
	}
}

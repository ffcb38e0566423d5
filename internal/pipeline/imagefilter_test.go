package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestRestrictImageSources
// ---------------------------------------------------------------------------

func TestRestrictImageSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		wantRemoved  []string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "absolute path",
			body:         `<img src="/etc/passwd"/>`,
			wantRemoved:  []string{"/etc/passwd"},
			wantContains: []string{`<img/>`},
			wantExcludes: []string{"/etc/passwd"},
		},
		{
			name:         "file URL",
			body:         `<img src="file:///home/me/key.png" alt="k"/>`,
			wantRemoved:  []string{"file:///home/me/key.png"},
			wantContains: []string{`alt="k"`},
			wantExcludes: []string{"file://"},
		},
		{
			name:        "relative path",
			body:        `<img src="pic.png"/>`,
			wantRemoved: []string{"pic.png"},
		},
		{
			name:         "remote and inline images kept",
			body:         `<img src="https://example.com/a.png"/><img src="HTTP://example.com/b.png"/><img src="data:image/png;base64,AAAA"/>`,
			wantContains: []string{`src="https://example.com/a.png"`, `src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "links untouched",
			body:         `<a href="/etc/passwd">x</a>`,
			wantContains: []string{`href="/etc/passwd"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, removed, err := RestrictImageSources(wrapDocument(tt.body))
			if err != nil {
				t.Fatalf("RestrictImageSources() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantRemoved, removed); diff != "" {
				t.Errorf("removed mismatch (-want +got):\n%s", diff)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.wantExcludes {
				if strings.Contains(got, bad) {
					t.Errorf("output still contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestRestrictImageSources_UnchangedWhenClean(t *testing.T) {
	t.Parallel()

	in := wrapDocument(`<img src="https://example.com/a.png"/>`)
	got, removed, err := RestrictImageSources(in)
	if err != nil {
		t.Fatalf("RestrictImageSources() error = %v", err)
	}
	if got != in || removed != nil {
		t.Errorf("clean document was rewritten: %q, removed %v", got, removed)
	}
}

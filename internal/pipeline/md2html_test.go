package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name        string
		input       string
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:        "paragraph fragment without document wrapper",
			input:       "Plain text.",
			wantContain: []string{"<p>Plain text.</p>"},
			wantAbsent:  []string{"<html", "<body", "<!DOCTYPE"},
		},
		{
			name:        "heading gets an anchor",
			input:       "## Results",
			wantContain: []string{`<h2 id="results">Results</h2>`},
		},
		{
			name:        "GFM table",
			input:       "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContain: []string{"<table>", "<td>1</td>"},
		},
		{
			name:        "highlight syntax",
			input:       "this is ==key==",
			wantContain: []string{"<mark>key</mark>"},
		},
		{
			name:        "fenced code is highlighted inline",
			input:       "```go\nfunc main() {}\n```",
			wantContain: []string{"<pre", "style="},
			wantAbsent:  []string{`class="chroma"`},
		},
		{
			name:        "raw HTML is not passed through",
			input:       "<script>alert(1)</script>",
			wantAbsent:  []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input, nil)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("ToHTML(%q) = %q, should not contain %q", tt.input, got, absent)
				}
			}
		})
	}
}

func TestGoldmarkConverter_SharedIDs(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()
	ids := NewHeadingIDs()
	ids.Next("Overview")

	got, err := conv.ToHTML(context.Background(), "# Overview", ids)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, `id="overview-1"`) {
		t.Errorf("ToHTML() = %q, want shared registry to dedupe the anchor", got)
	}
}

func TestGoldmarkConverter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

package pipeline

import "testing"

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "normalizes CRLF and CR",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "compresses blank lines",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "converts highlight",
			input: "this is ==important== text",
			want:  "this is " + MarkStartPlaceholder + "important" + MarkEndPlaceholder + " text",
		},
		{
			name:  "multiple highlights on one line",
			input: "==a== and ==b==",
			want:  MarkStartPlaceholder + "a" + MarkEndPlaceholder + " and " + MarkStartPlaceholder + "b" + MarkEndPlaceholder,
		},
		{
			name:  "leaves fenced code alone",
			input: "```go\nif a == b == c {}\nx := ==y==\n```\n==after==",
			want:  "```go\nif a == b == c {}\nx := ==y==\n```\n" + MarkStartPlaceholder + "after" + MarkEndPlaceholder,
		},
		{
			name:  "tilde fence not closed by backticks",
			input: "~~~\n==in==\n```\n==still in==\n~~~",
			want:  "~~~\n==in==\n```\n==still in==\n~~~",
		},
		{
			name:  "empty marks are not highlights",
			input: "a ==== b",
			want:  "a ==== b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := preprocessMarkdown(tt.input); got != tt.want {
				t.Errorf("preprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	in := "<p>" + MarkStartPlaceholder + "key" + MarkEndPlaceholder + "</p>"
	if got := ConvertMarkPlaceholders(in); got != "<p><mark>key</mark></p>" {
		t.Errorf("ConvertMarkPlaceholders() = %q", got)
	}
}

package browser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string // substrings that should be present
		wantNot []string // substrings that should NOT be present
	}{
		{
			name: "drops script and style content",
			input: `<html>
				<head>
					<title>Results</title>
					<script>var tracking = true;</script>
					<style>body { margin: 0; }</style>
				</head>
				<body>
					<h1>Search Results</h1>
					<p>First result here.</p>
				</body>
			</html>`,
			want:    []string{"Search Results", "First result here."},
			wantNot: []string{"tracking", "margin"},
		},
		{
			name: "block elements produce line breaks",
			input: `<html><body>
				<p>line one</p><p>line two</p>
			</body></html>`,
			want: []string{"line one\nline two"},
		},
		{
			name:    "inline markup does not split text",
			input:   `<html><body><p>hello <b>bold</b> world</p></body></html>`,
			want:    []string{"hello bold world"},
			wantNot: []string{"hello\nbold"},
		},
		{
			name:  "empty body",
			input: `<html><body></body></html>`,
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visibleText(tt.input)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if notWant != "" && strings.Contains(got, notWant) {
					t.Errorf("expected output not to contain %q, got:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestVisibleTextDropsHead(t *testing.T) {
	got := visibleText(`<html><head><title>Page Title</title></head><body><p>body text</p></body></html>`)
	if strings.Contains(got, "Page Title") {
		t.Errorf("head content should not be visible, got: %s", got)
	}
	if !strings.Contains(got, "body text") {
		t.Errorf("body content missing, got: %s", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 10000)

	got := truncate(long, 4000)
	if len(got) != 4000 {
		t.Errorf("expected 4000 chars, got %d", len(got))
	}

	short := "short text"
	if truncate(short, 4000) != short {
		t.Error("short text should pass through unchanged")
	}

	if truncate(long, 0) != long {
		t.Error("zero limit should mean unlimited")
	}
}

func TestTruncatePreservesRuneBoundaries(t *testing.T) {
	// Each rune is 3 bytes, so a 4000-byte cut would land mid-rune
	long := strings.Repeat("温", 2000)

	got := truncate(long, 4000)
	if !utf8.ValidString(got) {
		t.Error("truncated text contains a broken rune")
	}
	if len(got) != 3999 {
		t.Errorf("expected cut at the preceding rune boundary (3999 bytes), got %d", len(got))
	}

	// A cut that already lands on a boundary stays put
	got = truncate(long, 3000)
	if len(got) != 3000 {
		t.Errorf("expected exact cut on a rune boundary, got %d", len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("boundary cut produced invalid text")
	}
}

package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHashKey(t *testing.T) {
	id := "note:12345"
	got := HashKey(id)
	if got != HashKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "AAPL_research.pdf", want: "AAPL_research.pdf"},
		{in: " a/b\\c.md ", want: "a_b_c.md"},
		{in: "../etc", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "V:research\x00.md", want: "V_research.md"},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSanitizeFileNameShortensKeepingExtension(t *testing.T) {
	got, err := SanitizeFileName(strings.Repeat("é", 200) + ".docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if utf8.RuneCountInString(got) != maxFileNameRunes || !strings.HasSuffix(got, ".docx") {
		t.Fatalf("unexpected shortened name %q", got)
	}
}

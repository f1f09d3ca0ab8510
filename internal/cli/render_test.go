package cli

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Balances",
		Headers: []string{"Person", "Net"},
		Rows: [][]string{
			{"Alice", "+20.00"},
			{"Bob", "-20.00"},
		},
	})

	for _, want := range []string{"Balances", "Person", "Net", "Alice", "+20.00", "Bob", "-20.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╰") {
		t.Errorf("output missing borders:\n%s", out)
	}
}

func TestRenderTableSeparatorRow(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"From", "To", "Amount"},
		Rows: [][]string{
			{"Bob", "Alice", "10.00"},
			{"---"},
			{"", "Total", "10.00"},
		},
	})

	// One separator under the header, one for the "---" row.
	if got := strings.Count(out, "├"); got != 2 {
		t.Errorf("got %d separator lines, want 2:\n%s", got, out)
	}
	if strings.Contains(out, "---") {
		t.Errorf("separator marker leaked into output:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Errorf("empty table rendered %q", out)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		cell       string
		width      int
		rightAlign bool
		want       string
	}{
		{"Alice", 7, false, "Alice  "},
		{"12.00", 7, true, "  12.00"},
		{"José", 6, false, "José  "},
		{"too wide", 3, false, "too wide"},
		{"", 3, true, "   "},
	}
	for _, tt := range tests {
		if got := pad(tt.cell, tt.width, tt.rightAlign); got != tt.want {
			t.Errorf("pad(%q, %d, %v) = %q, want %q", tt.cell, tt.width, tt.rightAlign, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(7); got != "7.00" {
		t.Errorf("FormatAmount(7) = %q, want 7.00", got)
	}
	if got := FormatAmount(12.345); got != "12.35" {
		t.Errorf("FormatAmount(12.345) = %q, want 12.35", got)
	}
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{20, "+20.00"},
		{-3.5, "-3.50"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatSigned(tt.v); got != tt.want {
			t.Errorf("FormatSigned(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

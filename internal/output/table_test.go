package output

import (
	"os"
	"strings"
	"testing"
)

func TestVisualLen_PlainText(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"hello", 5},
		{"", 0},
		{"abc def", 7},
	}

	for _, tc := range tests {
		got := visualLen(tc.input)
		if got != tc.want {
			t.Errorf("visualLen(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestVisualLen_StripsANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "bold",
			input: "\x1b[1mhello\x1b[0m",
			want:  5,
		},
		{
			name:  "color",
			input: "\x1b[31mred\x1b[0m",
			want:  3,
		},
		{
			name:  "multiple sequences",
			input: "\x1b[1m\x1b[34mblue bold\x1b[0m",
			want:  9,
		},
		{
			name:  "no ansi",
			input: "plain text",
			want:  10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := visualLen(tc.input)
			if got != tc.want {
				t.Errorf("visualLen() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  int // expected length of output
	}{
		{"needs padding", "hi", 10, 10},
		{"exact width", "hello", 5, 5},
		{"over width", "toolong", 3, 7}, // no truncation
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pad(tc.input, tc.width)
			if len(got) != tc.want {
				t.Errorf("pad(%q, %d) len = %d, want %d", tc.input, tc.width, len(got), tc.want)
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	// Disable color so we get predictable output.
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Name", "Score")
	tbl.AddRow("Alice", "95")
	tbl.AddRow("Bob", "87")

	output := tbl.Render()

	// Should contain headers.
	if !strings.Contains(output, "Name") {
		t.Error("expected header 'Name' in output")
	}
	if !strings.Contains(output, "Score") {
		t.Error("expected header 'Score' in output")
	}

	// Should contain data.
	if !strings.Contains(output, "Alice") {
		t.Error("expected 'Alice' in output")
	}
	if !strings.Contains(output, "Bob") {
		t.Error("expected 'Bob' in output")
	}

	// Should have separator line.
	if !strings.Contains(output, "─") {
		t.Error("expected separator character in output")
	}

	// Count lines: header + separator + 2 data rows = 4 lines.
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable()
	output := tbl.Render()
	if output != "" {
		t.Errorf("expected empty output for empty table, got %q", output)
	}
}

func TestTable_ColumnWidths(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("A", "LongHeader")
	tbl.AddRow("VeryLongValue", "X")

	output := tbl.Render()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d", len(lines))
	}

	// The data row should be padded so columns align.
	dataLine := lines[2]
	if !strings.Contains(dataLine, "VeryLongValue") {
		t.Error("expected data row to contain 'VeryLongValue'")
	}
}

func TestTable_String(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Col1")
	tbl.AddRow("Val1")

	// String() should equal Render().
	if tbl.String() != tbl.Render() {
		t.Error("String() != Render()")
	}
}

func TestTable_AlignRight(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Family", "Rounds").AlignRight(1)
	tbl.AddRow("codejam", "7")
	tbl.AddRow("kickstart", "120")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[2], "     7") {
		t.Errorf("expected right-aligned count, got %q", lines[2])
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTable_StyledCellsAlign(t *testing.T) {
	tbl := NewTable("Check", "Name")
	tbl.AddRow("\x1b[32mok\x1b[0m", "a")
	tbl.AddRow("fail", "b")

	if tbl.widths[0] != 5 {
		t.Errorf("width = %d, want 5 (header length)", tbl.widths[0])
	}
}

func TestTable_ExtraValuesDropped(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("One")
	tbl.AddRow("a", "b", "c")
	if strings.Contains(tbl.Render(), "b") {
		t.Error("expected extra values to be dropped")
	}
}

func TestPadLeft(t *testing.T) {
	if got := padLeft("7", 3); got != "  7" {
		t.Errorf("padLeft = %q, want %q", got, "  7")
	}
	if got := padLeft("1234", 3); got != "1234" {
		t.Errorf("padLeft = %q, want no truncation", got)
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)
	if !IsNoColor() {
		t.Error("IsNoColor() = false after SetNoColor(true)")
	}
	rendered := StyleHeader.Render("test")
	if strings.Contains(rendered, "\x1b[") {
		t.Error("expected no ANSI codes after SetNoColor(true)")
	}
}

func TestSetNoColor_Restores(t *testing.T) {
	SetNoColor(true)
	SetNoColor(false)
	if IsNoColor() {
		t.Error("IsNoColor() = true after SetNoColor(false)")
	}
	if StyleLabel.GetWidth() != 20 {
		t.Errorf("StyleLabel width = %d, want 20", StyleLabel.GetWidth())
	}
	if !StyleBold.GetBold() || !StyleHeader.GetBold() {
		t.Error("expected bold styles to be restored")
	}
	if StyleError.GetForeground() != ColorError {
		t.Errorf("StyleError foreground = %v, want %v", StyleError.GetForeground(), ColorError)
	}
}

func TestIsTerminal_NilAndFile(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file should not be a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file should not be a terminal")
	}
}

func TestSectionAndKeyValue(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if s := Section("Index"); !strings.Contains(s, "Index") || !strings.Contains(s, "─") {
		t.Errorf("unexpected section %q", s)
	}
	if kv := KeyValue("Rounds:", 12); !strings.Contains(kv, "Rounds:") || !strings.Contains(kv, "12") {
		t.Errorf("unexpected key/value %q", kv)
	}
	if CheckMark(true) == CheckMark(false) {
		t.Error("pass and fail marks should differ")
	}
}

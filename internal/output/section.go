package output

import (
	"fmt"
	"strings"
)

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// KeyValue returns one aligned summary line.
func KeyValue(label string, value any) string {
	return fmt.Sprintf(" %s %s", StyleLabel.Render(label), StyleValue.Render(fmt.Sprint(value)))
}

// CheckMark returns a styled pass or fail marker.
func CheckMark(passed bool) string {
	if passed {
		return StyleSuccess.Render("✓")
	}
	return StyleError.Render("✗")
}

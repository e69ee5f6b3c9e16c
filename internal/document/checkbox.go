package document

import "strings"

// Checkbox is one markdown task-list line inside a section body. Line is the
// zero-based index into the body's lines, Indent the count of leading
// whitespace characters.
type Checkbox struct {
	Line    int
	Indent  int
	Checked bool
	Label   string
}

// ParseCheckboxLine matches "- [ ] text" / "- [x] text" after optional
// leading whitespace. The x is case-insensitive.
func ParseCheckboxLine(line string) (c Checkbox, ok bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	rest := line[i:]
	if len(rest) < 6 || rest[0] != '-' || rest[1] != ' ' || rest[2] != '[' || rest[4] != ']' || rest[5] != ' ' {
		return Checkbox{}, false
	}
	switch rest[3] {
	case ' ':
		c.Checked = false
	case 'x', 'X':
		c.Checked = true
	default:
		return Checkbox{}, false
	}
	c.Indent = i
	c.Label = strings.TrimSpace(rest[6:])
	return c, true
}

// ScanCheckboxes returns every checkbox line in body, in order. Indented
// checkboxes match exactly like top-level ones; only the recorded indent
// differs.
func ScanCheckboxes(body string) []Checkbox {
	var out []Checkbox
	for i, line := range strings.Split(body, "\n") {
		if c, ok := ParseCheckboxLine(line); ok {
			c.Line = i
			out = append(out, c)
		}
	}
	return out
}

// ToggleCheckbox flips the checked marker on exactly the given line, leaving
// every other character untouched. When the index is out of range or the
// line no longer matches the checkbox pattern (stale offset after an
// external edit), the input is returned unchanged.
func ToggleCheckbox(body string, line int) string {
	lines := strings.Split(body, "\n")
	if line < 0 || line >= len(lines) {
		return body
	}
	c, ok := ParseCheckboxLine(lines[line])
	if !ok {
		return body
	}
	mark := "x"
	if c.Checked {
		mark = " "
	}
	pos := c.Indent + 3
	lines[line] = lines[line][:pos] + mark + lines[line][pos+1:]
	return strings.Join(lines, "\n")
}

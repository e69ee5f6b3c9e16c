package document

import (
	"strings"
	"testing"
)

const checklistBody = "- [ ] one\n  - [x] two\n- [X] three\nplain text\n"

func TestScanCheckboxes(t *testing.T) {
	got := ScanCheckboxes(checklistBody)
	want := []Checkbox{
		{Line: 0, Indent: 0, Checked: false, Label: "one"},
		{Line: 1, Indent: 2, Checked: true, Label: "two"},
		{Line: 2, Indent: 0, Checked: true, Label: "three"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScanCheckboxes_NonMatchingLines(t *testing.T) {
	body := "-[ ] no space after dash\n- [y] bad marker\n- [ ]no space after bracket\n* [ ] star bullet\n"
	if got := ScanCheckboxes(body); got != nil {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestToggleCheckbox(t *testing.T) {
	// Only the marker character on the targeted line changes.
	if got, want := ToggleCheckbox(checklistBody, 0), "- [x] one\n  - [x] two\n- [X] three\nplain text\n"; got != want {
		t.Errorf("toggle line 0 = %q, want %q", got, want)
	}
	if got, want := ToggleCheckbox(checklistBody, 1), "- [ ] one\n  - [ ] two\n- [X] three\nplain text\n"; got != want {
		t.Errorf("toggle line 1 = %q, want %q", got, want)
	}
	// Uppercase X unchecks to a space.
	if got, want := ToggleCheckbox(checklistBody, 2), "- [ ] one\n  - [x] two\n- [ ] three\nplain text\n"; got != want {
		t.Errorf("toggle line 2 = %q, want %q", got, want)
	}
}

func TestToggleCheckbox_Idempotent(t *testing.T) {
	for _, line := range []int{0, 1} {
		if got := ToggleCheckbox(ToggleCheckbox(checklistBody, line), line); got != checklistBody {
			t.Errorf("double toggle of line %d = %q, want input", line, got)
		}
	}
	// An uppercase X re-checks as lowercase; the scan result is unchanged.
	got := ScanCheckboxes(ToggleCheckbox(ToggleCheckbox(checklistBody, 2), 2))
	want := ScanCheckboxes(checklistBody)
	if len(got) != len(want) {
		t.Fatalf("scan after double toggle: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestToggleCheckbox_OutOfRangeIsNoOp(t *testing.T) {
	if got := ToggleCheckbox(checklistBody, -1); got != checklistBody {
		t.Errorf("toggle(-1) changed the body")
	}
	lines := len(strings.Split(checklistBody, "\n"))
	if got := ToggleCheckbox(checklistBody, lines); got != checklistBody {
		t.Errorf("toggle(len) changed the body")
	}
}

func TestToggleCheckbox_StaleTargetIsNoOp(t *testing.T) {
	// Line 3 exists but is not a checkbox: guards against stale offsets.
	if got := ToggleCheckbox(checklistBody, 3); got != checklistBody {
		t.Errorf("toggle of plain text line changed the body")
	}
}

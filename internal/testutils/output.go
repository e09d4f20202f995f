package testutils

import (
	"fmt"
	"strings"
	"testing"
	"text/tabwriter"

	"charm.land/lipgloss/v2"
)

// TestCase is one row of a comparison table.
type TestCase struct {
	Input    string
	Expected string
	Actual   string
}

// Pass reports whether the row matched.
func (tc TestCase) Pass() bool {
	return tc.Expected == tc.Actual
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// CompareTable logs the cases as an input | expected | returned table and
// fails the test if any row does not match. Failed rows are marked > <.
func CompareTable(t testing.TB, cases []TestCase) {
	t.Helper()

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Input\tExpected Value\tReturned Value\t\n")

	failed := false
	for _, tc := range cases {
		leftPtr, rightPtr := " ", " "
		style := passStyle
		if !tc.Pass() {
			failed = true
			leftPtr, rightPtr = ">", "<"
			style = failStyle
		}
		fmt.Fprintf(w, "%s %q\t%q\t%s\t%s\n",
			leftPtr, tc.Input, tc.Expected, style.Render(fmt.Sprintf("%q", tc.Actual)), rightPtr)
	}
	w.Flush()

	if failed {
		t.Errorf("comparison failed:\n%s", sb.String())
		return
	}
	t.Logf("\n%s", sb.String())
}

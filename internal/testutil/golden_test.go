package testutil

import (
	"strings"
	"testing"
)

func TestLineDiff(t *testing.T) {
	t.Parallel()

	if d := LineDiff("a\nb", "a\nb"); d != "" {
		t.Errorf("LineDiff of equal texts = %q, want empty", d)
	}
	d := LineDiff("a\nb\nc", "a\nx\nc")
	if !strings.Contains(d, "- b") || !strings.Contains(d, "+ x") || !strings.Contains(d, "  a") {
		t.Errorf("LineDiff() = %q", d)
	}
}

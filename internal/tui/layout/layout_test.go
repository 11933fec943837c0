package layout

import "testing"

func TestTierForWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width int
		want  Tier
	}{
		{0, TierNarrow},
		{59, TierNarrow},
		{60, TierWide},
		{99, TierWide},
		{100, TierSplit},
		{300, TierSplit},
	}
	for _, tt := range tests {
		if got := TierForWidth(tt.width); got != tt.want {
			t.Errorf("TierForWidth(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s      string
		max    int
		suffix string
		want   string
	}{
		{"hello", 10, "…", "hello"},
		{"hello world", 8, "…", "hello w…"},
		{"日本語テキスト", 7, "…", "日本語…"},
		{"hello", 2, "...", "he"},
		{"hello", 0, "…", ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.max, tt.suffix); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}

func TestSplitProportions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total       int
		left, right int
	}{
		{80, 80, 0},
		{100, 30, 69},
		{200, 40, 159},
	}
	for _, tt := range tests {
		left, right := SplitProportions(tt.total)
		if left != tt.left || right != tt.right {
			t.Errorf("SplitProportions(%d) = %d, %d; want %d, %d", tt.total, left, right, tt.left, tt.right)
		}
		if right > 0 && left+right+1 != tt.total {
			t.Errorf("SplitProportions(%d) does not add up", tt.total)
		}
	}
}

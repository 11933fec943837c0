// Package layout holds the width rules shared by the pager's panes.
package layout

import "github.com/mattn/go-runewidth"

// Width tiers decide how much chrome the pager can afford:
//   - SplitView: the table of contents sits beside the document instead of
//     replacing it
//   - WideView: the status bar has room for a progress bar
const (
	SplitViewThreshold = 100
	WideViewThreshold  = 60
)

// Tier describes the current width bucket.
type Tier int

const (
	TierNarrow Tier = iota
	TierWide
	TierSplit
)

// TierForWidth maps a terminal width to a tier.
func TierForWidth(width int) Tier {
	switch {
	case width >= SplitViewThreshold:
		return TierSplit
	case width >= WideViewThreshold:
		return TierWide
	default:
		return TierNarrow
	}
}

// Truncate trims s to max display columns and appends suffix if truncated.
// Wide glyphs are never split.
func Truncate(s string, max int, suffix string) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if runewidth.StringWidth(suffix) > max {
		suffix = ""
	}
	return runewidth.Truncate(s, max, suffix)
}

// SplitProportions returns side pane and main pane widths for a split view
// of total columns, leaving one column of gutter between them. Below the
// split threshold the side pane takes everything.
func SplitProportions(total int) (left int, right int) {
	if total < SplitViewThreshold {
		return total, 0
	}
	left = min(max(int(float64(total)*0.3), 20), 40)
	right = total - left - 1
	return
}

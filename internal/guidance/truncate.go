package guidance

import (
	"strings"
	"unicode"
)

const ellipsis = "..."

// trimAtUnit caps text at limit runes without ending mid-sentence. Units start
// with marker ("Step ", "\n•"); the cut goes after the last period inside the
// last unit, or before that unit when it has no period yet. Without a marker
// the last period wins. Text with no boundary at all is hard-cut with "...".
func trimAtUnit(text string, limit int, marker string) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	head := string(runes[:limit])

	if marker != "" {
		if start := strings.LastIndex(head, marker); start > 0 {
			if period := strings.LastIndex(head[start:], "."); period > 0 {
				return head[:start+period+1]
			}
			return strings.TrimRightFunc(head[:start], unicode.IsSpace)
		}
	}
	if period := strings.LastIndex(head, "."); period > 0 {
		return head[:period+1]
	}
	return hardCut(runes, limit)
}

func hardCut(runes []rune, limit int) string {
	n := limit - len(ellipsis)
	if n < 0 {
		n = 0
	}
	return string(runes[:n]) + ellipsis
}

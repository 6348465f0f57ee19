package markdown

import (
	"regexp"
	"strings"
)

// heading is an ATX heading found in a document, with the index of the line
// it starts on.
type heading struct {
	Level int
	Title string
	Line  int
}

var headingPattern = regexp.MustCompile(`^ {0,3}(#{1,6})\s+(.+?)\s*#*\s*$`)

// scanHeadings returns all H1-H6 headings in order of appearance. Lines
// inside fenced code blocks are skipped so a shell comment never becomes a
// chapter boundary.
func scanHeadings(lines []string) []heading {
	var headings []heading
	inFence := false
	fenceMarker := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := fenceOpening(trimmed); marker != "" {
			if !inFence {
				inFence = true
				fenceMarker = marker
			} else if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
			}
			continue
		}
		if inFence {
			continue
		}

		match := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}
		headings = append(headings, heading{
			Level: len(match[1]),
			Title: strings.TrimSpace(match[2]),
			Line:  i,
		})
	}
	return headings
}

// fenceOpening reports the fence marker a trimmed line starts, or "".
func fenceOpening(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```"
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~"
	}
	return ""
}

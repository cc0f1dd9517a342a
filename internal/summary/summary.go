// Package summary parses an mdBook SUMMARY.md outline into an ordered
// chapter list with hierarchical section numbers.
package summary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Sentinel errors for summary parsing.
var (
	ErrSummaryNotFound = errors.New("SUMMARY.md not found")
	ErrSummaryRead     = errors.New("failed to read SUMMARY.md")
)

// Precompiled line patterns.
var (
	// Numbered chapter: list item with a markdown link, possibly indented.
	listItemPattern = regexp.MustCompile(`^(\s*)[-*+]\s+\[([^\]]*)\]\(([^)]*)\)`)

	// Prefix/suffix chapter: bare link at the start of a line, outside lists.
	bareLinkPattern = regexp.MustCompile(`^\[([^\]]*)\]\(([^)]*)\)`)
)

// Chapter is one outline entry in document order.
type Chapter struct {
	Name   string
	Path   string // link target relative to the source root; "" for drafts
	Number []int  // hierarchical section number; nil for unnumbered chapters
}

// Numbered reports whether the chapter carries a section number.
func (c Chapter) Numbered() bool { return c.Number != nil }

// Draft reports whether the chapter has no source file yet.
func (c Chapter) Draft() bool { return c.Path == "" }

// Load reads and parses SUMMARY.md from the given path.
func Load(path string) ([]Chapter, error) {
	f, err := os.Open(path) // #nosec G304 -- path is derived from the book root
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSummaryNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSummaryRead, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a SUMMARY.md outline. Numbered chapters get section numbers
// from their list nesting; bare links before or after the lists become
// unnumbered prefix/suffix chapters. Headings, part titles, and separators
// contribute nothing to the numbering.
func Parse(r io.Reader) ([]Chapter, error) {
	var chapters []Chapter

	// Nesting state: one indent width and one counter per open list level.
	var indents []int
	var counters []int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := listItemPattern.FindStringSubmatch(line); m != nil {
			level := resolveLevel(&indents, indentWidth(m[1]))
			counters = bump(counters, level)

			number := make([]int, level+1)
			copy(number, counters)

			chapters = append(chapters, Chapter{
				Name:   m[2],
				Path:   cleanPath(m[3]),
				Number: number,
			})
			continue
		}

		if m := bareLinkPattern.FindStringSubmatch(line); m != nil {
			chapters = append(chapters, Chapter{
				Name: m[1],
				Path: cleanPath(m[2]),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummaryRead, err)
	}

	return chapters, nil
}

// resolveLevel maps an indent width onto a nesting level, adjusting the
// indent stack: deeper indent opens a level, shallower indent pops back to
// the closest enclosing one.
func resolveLevel(indents *[]int, width int) int {
	s := *indents
	for len(s) > 0 && width < s[len(s)-1] {
		s = s[:len(s)-1]
	}
	if len(s) == 0 || width > s[len(s)-1] {
		s = append(s, width)
	}
	*indents = s
	return len(s) - 1
}

// bump increments the counter at level, truncating deeper levels so a new
// sibling restarts its subtree numbering.
func bump(counters []int, level int) []int {
	for len(counters) <= level {
		counters = append(counters, 0)
	}
	counters = counters[:level+1]
	counters[level]++
	return counters
}

// indentWidth measures leading whitespace; tabs count as four spaces.
func indentWidth(indent string) int {
	return len(indent) + 3*strings.Count(indent, "\t")
}

// cleanPath normalizes a link target to a slash-separated relative path.
func cleanPath(target string) string {
	target = strings.TrimSpace(target)
	target = strings.TrimPrefix(target, "./")
	return target
}

// Package sections splits extracted CV text into labeled fields.
//
// The parser is a deterministic single-pass keyword scan over lines, not a
// classifier. It trades recall for O(n) behavior and zero I/O: earlier
// heading matches win, duplicate headings use only the first occurrence, and
// noise lines outside the name window are left in place.
package sections

import (
	"regexp"
	"strings"

	"github.com/inkfold/cvpress/internal/models"
)

// nameWindow is how many leading lines are scanned for the candidate name.
const nameWindow = 6

// summaryMaxLines caps the summary span following the name line.
const summaryMaxLines = 5

// experienceFallbackEnd bounds the experience span taken from unlabeled CVs.
const experienceFallbackEnd = 60

// DefaultName is the placeholder used when no line in the name window
// qualifies as a name.
const DefaultName = "Candidate Name"

// nameNoiseRe rejects code and URL remnants from name detection.
var nameNoiseRe = regexp.MustCompile(`https?://|www\.|@|[{}<>;=]`)

// Parse splits text into CV fields. Raw always holds text verbatim; every
// other field defaults to the empty string.
func Parse(text string) models.CvSections {
	s := models.CvSections{Raw: text}
	lines := splitLines(text)
	if len(lines) == 0 {
		s.Name = DefaultName
		return s
	}

	nameIdx := findName(lines)
	if nameIdx >= 0 {
		s.Name = lines[nameIdx]
	} else {
		s.Name = DefaultName
	}
	s.Summary = summaryAfter(lines, nameIdx)

	s.Experience = capture(lines, experienceKeywords)
	s.Education = capture(lines, educationKeywords)
	s.Skills = capture(lines, skillsKeywords)
	s.Projects = capture(lines, projectsKeywords)
	s.Achievements = capture(lines, achievementsKeywords)
	s.Contact = capture(lines, contactKeywords)

	// Unlabeled CVs usually place work history right after a short header
	// block.
	if s.Experience == "" && len(lines) > nameWindow {
		end := len(lines)
		if end > experienceFallbackEnd {
			end = experienceFallbackEnd
		}
		s.Experience = strings.Join(lines[nameWindow:end], "\n")
	}
	return s
}

// splitLines returns the non-empty trimmed lines of text in order.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// findName returns the index of the first line in the name window that looks
// like a person's name: free of code/URL noise, longer than 3 characters,
// and at most 8 whitespace-separated tokens. Returns -1 if none qualifies.
func findName(lines []string) int {
	window := len(lines)
	if window > nameWindow {
		window = nameWindow
	}
	for i := 0; i < window; i++ {
		line := lines[i]
		if nameNoiseRe.MatchString(line) {
			continue
		}
		if len(line) > 3 && len(strings.Fields(line)) <= 8 {
			return i
		}
	}
	return -1
}

// summaryAfter joins up to summaryMaxLines lines following the name line
// with single spaces. When no name qualified the span starts at the second
// line, as if the header were first.
func summaryAfter(lines []string, nameIdx int) string {
	start := nameIdx + 1
	if nameIdx < 0 {
		start = 1
	}
	if start >= len(lines) {
		return ""
	}
	end := start + summaryMaxLines
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], " ")
}

// capture returns the lines between the first heading matching keywords and
// the next line containing any global heading keyword, joined by newlines.
// The heading line itself is excluded from the captured range. Empty when no
// heading line exists.
func capture(lines []string, keywords []string) string {
	start := -1
	for i, line := range lines {
		if containsAny(strings.ToLower(line), keywords) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(lines)
	for i := start; i < len(lines); i++ {
		if containsAny(strings.ToLower(lines[i]), globalKeywords) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

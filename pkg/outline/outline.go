// Package outline extracts a table of contents from markdown source.
package outline

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Header is the first line of every outline block.
const Header = "## Indice"

const (
	fenceMarker = "```"
	maxLevel    = 6
)

// Entry is one heading of the outline.
type Entry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Extract scans source line by line and returns its headings in order.
// Lines inside fenced code blocks are ignored; an unclosed fence hides every
// heading after it.
func Extract(source string) []Entry {
	var entries []Entry
	inFence := false

	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if entry, ok := parseHeading(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func parseHeading(line string) (Entry, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxLevel {
		return Entry{}, false
	}
	title := strings.TrimSpace(line[level:])
	if title == "" {
		return Entry{}, false
	}
	return Entry{Level: level, Title: title, Slug: Slug(title)}, true
}

// Slug derives an anchor id from a heading title: lower-cased, everything
// but letters, digits and spaces dropped, spaces turned into hyphens.
// Repeated titles yield repeated slugs.
func Slug(title string) string {
	// A Caser holds state, so each call gets its own.
	lower := cases.Lower(language.Und)
	var b strings.Builder
	for _, r := range lower.String(title) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Block renders entries as a markdown list of links prefixed with Header.
// Nested levels are indented two spaces per level below 1.
func Block(entries []Entry) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n\n")
	for _, e := range entries {
		b.WriteString(strings.Repeat("  ", e.Level-1))
		fmt.Fprintf(&b, "- [%s](#%s)\n", e.Title, e.Slug)
	}
	return b.String()
}

// Generate extracts the outline of source and renders it as a block.
func Generate(source string) string {
	return Block(Extract(source))
}

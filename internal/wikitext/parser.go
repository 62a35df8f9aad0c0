// Package wikitext converts rendered MediaWiki article HTML into an ordered
// mapping of section titles to plain-text blocks. Tables are flattened to
// pipe-delimited rows, lists to bulleted lines, and editing chrome
// (edit-section links, navboxes, style/script elements) is stripped.
package wikitext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SummarySection names the implicit section holding content that appears
// before the first level-2 heading.
const SummarySection = "Summary"

// noiseSelector matches elements that never contribute to output and are
// removed before any text extraction.
const noiseSelector = "style, script, noscript, .navbox, .mw-editsection, .magnify"

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	editSuffixRE = regexp.MustCompile(`\s*\[[^][]*\]\s*$`)
)

// Parse segments article HTML into named sections. It is a pure function:
// the same input always yields the same mapping, and an empty document
// yields an empty (never nil) result.
func Parse(html string) (*Sections, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	doc.Find(noiseSelector).Remove()

	// MediaWiki wraps article bodies in .mw-parser-output; fall back to the
	// whole document for wrapper-less fragments.
	root := doc.Find(".mw-parser-output").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	sections := NewSections()
	current := SummarySection
	var lines []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text != "" {
			sections.Add(current, text)
		}
		lines = nil
	}

	root.Children().Each(func(_ int, el *goquery.Selection) {
		switch goquery.NodeName(el) {
		case "h2":
			flush()
			current = headingText(el)
		case "h3", "h4":
			if title := headingText(el); title != "" {
				lines = append(lines, "-- "+title+" --")
			}
		case "table":
			lines = append(lines, tableLines(el)...)
		case "ul", "ol":
			lines = append(lines, listLines(el)...)
		default:
			if text := strings.TrimSpace(el.Text()); text != "" {
				lines = append(lines, text)
			}
		}
	})
	flush()

	return sections, nil
}

// headingText returns the heading's text with any trailing bracketed
// edit-link remnants removed.
func headingText(el *goquery.Selection) string {
	text := collapse(el.Text())
	for {
		stripped := editSuffixRE.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}
	return strings.TrimSpace(text)
}

// tableLines renders each table row as its cell texts joined with a pipe
// delimiter. Rows without cells (e.g. pure structure rows) are skipped.
func tableLines(table *goquery.Selection) []string {
	var out []string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, collapse(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		out = append(out, strings.Join(cells, " | "))
	})
	return out
}

// listLines renders each direct list item as a bulleted line.
func listLines(list *goquery.Selection) []string {
	var out []string
	list.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
		if text := collapse(item.Text()); text != "" {
			out = append(out, "• "+text)
		}
	})
	return out
}

func collapse(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

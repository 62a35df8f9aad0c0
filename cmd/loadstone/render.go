package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/damianpoole/Loadstone/internal/profile"
	"github.com/damianpoole/Loadstone/internal/wiki"
	"github.com/damianpoole/Loadstone/internal/wikitext"
)

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatSearchResult(result wiki.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(result.Title)
	sb.WriteString("\n  ")
	sb.WriteString(result.URL)
	if result.Snippet != "" {
		sb.WriteString("\n  ")
		sb.WriteString(result.Snippet)
	}
	sb.WriteString("\n")
	return sb.String()
}

// pageJSON is the structured page shape: envelope fields plus the parsed,
// already-filtered section mapping. lastModified is the wiki revision id,
// not a timestamp.
type pageJSON struct {
	Title        string             `json:"title"`
	PageID       int                `json:"pageId"`
	URL          string             `json:"url"`
	LastModified int64              `json:"lastModified"`
	Sections     *wikitext.Sections `json:"sections"`
}

func pageDocument(page *wiki.Page, sections *wikitext.Sections) pageJSON {
	return pageJSON{
		Title:        page.Title,
		PageID:       page.PageID,
		URL:          page.URL,
		LastModified: page.Revision,
		Sections:     sections,
	}
}

// matchSection finds the first section, in document order, whose name
// contains filter case-insensitively. First match wins even when several
// names share the substring.
func matchSection(sections *wikitext.Sections, filter string) (string, bool) {
	needle := strings.ToLower(filter)
	for _, name := range sections.Names() {
		if strings.Contains(strings.ToLower(name), needle) {
			return name, true
		}
	}
	return "", false
}

// filterSections reduces the mapping to the first section matching filter.
// An empty filter keeps everything; no match yields an empty mapping.
func filterSections(sections *wikitext.Sections, filter string) *wikitext.Sections {
	if filter == "" {
		return sections
	}
	filtered := wikitext.NewSections()
	if name, ok := matchSection(sections, filter); ok {
		text, _ := sections.Get(name)
		filtered.Add(name, text)
	}
	return filtered
}

func formatPageText(page *wiki.Page, sections *wikitext.Sections, filter string) string {
	var sb strings.Builder

	if filter != "" {
		name, ok := matchSection(sections, filter)
		if !ok {
			fmt.Fprintf(&sb, "No section matching %q in %s.\n", filter, page.Title)
			if sections.Len() > 0 {
				fmt.Fprintf(&sb, "Available sections: %s\n", strings.Join(sections.Names(), ", "))
			}
			return sb.String()
		}
		text, _ := sections.Get(name)
		fmt.Fprintf(&sb, "=== %s ===\n%s\n", name, text)
		return sb.String()
	}

	for _, name := range sections.Names() {
		text, _ := sections.Get(name)
		fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", name, text)
	}
	return sb.String()
}

// profileFieldOrder fixes the matching order for --fields so that a
// substring shared by several keys picks the same one every run.
var profileFieldOrder = []string{
	"name",
	"combatLevel",
	"totalSkill",
	"totalXp",
	"questsComplete",
	"questsStarted",
	"questsNotStarted",
	"skills",
	"quests",
	"raw",
}

// profileDocument applies the --fields sub-filter to a profile's top-level
// JSON keys. Each requested field keeps the first key containing it
// case-insensitively; without fields the profile passes through whole.
func profileDocument(p *profile.Profile, fields []string) (any, error) {
	if len(fields) == 0 {
		return p, nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	var full map[string]json.RawMessage
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, fmt.Errorf("failed to re-read profile: %w", err)
	}

	filtered := make(map[string]json.RawMessage)
	for _, field := range fields {
		needle := strings.ToLower(strings.TrimSpace(field))
		if needle == "" {
			continue
		}
		for _, key := range profileFieldOrder {
			if !strings.Contains(strings.ToLower(key), needle) {
				continue
			}
			if value, ok := full[key]; ok {
				filtered[key] = value
			}
			break
		}
	}
	return filtered, nil
}

func formatProfileText(p *profile.Profile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", p.Name)
	fmt.Fprintf(&sb, "Combat Level: %d\n", p.CombatLevel)
	fmt.Fprintf(&sb, "Total Skill:  %d\n", p.TotalSkill)
	fmt.Fprintf(&sb, "Total XP:     %d\n", p.TotalXP)
	fmt.Fprintf(&sb, "Quests:       %d complete, %d started, %d not started\n",
		p.QuestsComplete, p.QuestsStarted, p.QuestsNotStarted)

	if len(p.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		names := make([]string, 0, len(p.Skills))
		for name := range p.Skills {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  %-15s %d\n", name, p.Skills[name])
		}
	}

	return sb.String()
}

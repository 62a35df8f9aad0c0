package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damianpoole/Loadstone/internal/profile"
	"github.com/damianpoole/Loadstone/internal/wiki"
	"github.com/damianpoole/Loadstone/internal/wikitext"
)

func sampleSections() *wikitext.Sections {
	s := wikitext.NewSections()
	s.Add("Summary", "A whip.")
	s.Add("Combat stats", "High.")
	s.Add("Base stats", "Low.")
	return s
}

func TestMatchSection_CaseInsensitiveSubstring(t *testing.T) {
	name, ok := matchSection(sampleSections(), "combat")
	require.True(t, ok)
	assert.Equal(t, "Combat stats", name)
}

func TestMatchSection_FirstMatchWinsInDocumentOrder(t *testing.T) {
	// "stats" matches both "Combat stats" and "Base stats"; the earlier
	// section wins.
	name, ok := matchSection(sampleSections(), "stats")
	require.True(t, ok)
	assert.Equal(t, "Combat stats", name)
}

func TestMatchSection_NoMatch(t *testing.T) {
	_, ok := matchSection(sampleSections(), "drops")
	assert.False(t, ok)
}

func TestFilterSections_EmptyFilterKeepsAll(t *testing.T) {
	s := sampleSections()
	assert.Same(t, s, filterSections(s, ""))
}

func TestFilterSections_ReducesToFirstMatch(t *testing.T) {
	filtered := filterSections(sampleSections(), "stats")

	assert.Equal(t, []string{"Combat stats"}, filtered.Names())
	text, _ := filtered.Get("Combat stats")
	assert.Equal(t, "High.", text)
}

func TestFilterSections_NoMatchYieldsEmptyMapping(t *testing.T) {
	filtered := filterSections(sampleSections(), "drops")
	assert.Equal(t, 0, filtered.Len())
}

func TestFormatPageText_AllSectionsUnderBanners(t *testing.T) {
	page := &wiki.Page{Title: "Abyssal whip"}
	out := formatPageText(page, sampleSections(), "")

	assert.Contains(t, out, "=== Summary ===\nA whip.")
	assert.Contains(t, out, "=== Combat stats ===\nHigh.")
	assert.Contains(t, out, "=== Base stats ===\nLow.")
}

func TestFormatPageText_SectionFilterStandalone(t *testing.T) {
	page := &wiki.Page{Title: "Abyssal whip"}
	out := formatPageText(page, sampleSections(), "base")

	assert.Equal(t, "=== Base stats ===\nLow.\n", out)
}

func TestFormatPageText_NoMatchListsAvailableSections(t *testing.T) {
	page := &wiki.Page{Title: "Abyssal whip"}
	out := formatPageText(page, sampleSections(), "drops")

	assert.Contains(t, out, `No section matching "drops"`)
	assert.Contains(t, out, "Summary, Combat stats, Base stats")
}

func TestPageDocument_CarriesEnvelopeFields(t *testing.T) {
	page := &wiki.Page{
		Title:    "X",
		PageID:   1,
		Revision: 2,
		URL:      "https://runescape.wiki/w/X",
	}
	doc := pageDocument(page, sampleSections())

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `"X"`, string(decoded["title"]))
	assert.JSONEq(t, `1`, string(decoded["pageId"]))
	assert.JSONEq(t, `2`, string(decoded["lastModified"]))
	assert.Contains(t, string(decoded["sections"]), "Combat stats")
}

func sampleProfile() *profile.Profile {
	return &profile.Profile{
		Name:           "Zezima",
		CombatLevel:    138,
		TotalSkill:     2898,
		TotalXP:        5_600_000_000,
		QuestsComplete: 250,
		Skills:         map[string]int{"Attack": 99, "Necromancy": 99},
		Quests:         []profile.Quest{{Title: "Cook's Assistant", Status: profile.QuestCompleted, QuestPoints: 1}},
	}
}

func TestProfileDocument_NoFieldsPassesThrough(t *testing.T) {
	p := sampleProfile()
	doc, err := profileDocument(p, nil)
	require.NoError(t, err)
	assert.Same(t, p, doc)
}

func TestProfileDocument_FieldFilter(t *testing.T) {
	doc, err := profileDocument(sampleProfile(), []string{"name", "skills"})
	require.NoError(t, err)

	filtered, ok := doc.(map[string]json.RawMessage)
	require.True(t, ok)
	assert.Len(t, filtered, 2)
	assert.JSONEq(t, `"Zezima"`, string(filtered["name"]))
	assert.Contains(t, string(filtered["skills"]), "Necromancy")
}

func TestProfileDocument_AmbiguousFieldTakesFirstInOrder(t *testing.T) {
	// "quests" matches questsComplete, questsStarted, questsNotStarted, and
	// quests; the fixed field order makes questsComplete win.
	doc, err := profileDocument(sampleProfile(), []string{"quests"})
	require.NoError(t, err)

	filtered := doc.(map[string]json.RawMessage)
	require.Len(t, filtered, 1)
	assert.JSONEq(t, `250`, string(filtered["questsComplete"]))
}

func TestFormatProfileText_IncludesStatsAndSkills(t *testing.T) {
	out := formatProfileText(sampleProfile())

	assert.Contains(t, out, "Zezima")
	assert.Contains(t, out, "Combat Level: 138")
	assert.Contains(t, out, "Total Skill:  2898")
	assert.Contains(t, out, "250 complete")
	assert.Contains(t, out, "Attack")
	assert.Contains(t, out, "Necromancy")
}

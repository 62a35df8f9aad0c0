package profile

import "fmt"

// skillNames maps RuneMetrics numeric skill IDs to display names. The index
// is the ID. New skills get appended by the game over time; SkillName keeps
// unknown IDs visible instead of dropping them.
var skillNames = [...]string{
	0:  "Attack",
	1:  "Defence",
	2:  "Strength",
	3:  "Constitution",
	4:  "Ranged",
	5:  "Prayer",
	6:  "Magic",
	7:  "Cooking",
	8:  "Woodcutting",
	9:  "Fletching",
	10: "Fishing",
	11: "Firemaking",
	12: "Crafting",
	13: "Smithing",
	14: "Mining",
	15: "Herblore",
	16: "Agility",
	17: "Thieving",
	18: "Slayer",
	19: "Farming",
	20: "Runecrafting",
	21: "Hunter",
	22: "Construction",
	23: "Summoning",
	24: "Dungeoneering",
	25: "Divination",
	26: "Invention",
	27: "Archaeology",
	28: "Necromancy",
}

// SkillName resolves a numeric skill ID to its display name. IDs outside the
// known table yield a synthetic "Unknown(<id>)" label so new in-game skills
// still appear in output.
func SkillName(id int) string {
	if id >= 0 && id < len(skillNames) {
		return skillNames[id]
	}
	return fmt.Sprintf("Unknown(%d)", id)
}

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillName_KnownIDs(t *testing.T) {
	assert.Equal(t, "Attack", SkillName(0))
	assert.Equal(t, "Constitution", SkillName(3))
	assert.Equal(t, "Archaeology", SkillName(27))
	assert.Equal(t, "Necromancy", SkillName(28))
}

func TestSkillName_UnknownIDSynthetic(t *testing.T) {
	assert.Equal(t, "Unknown(29)", SkillName(29))
	assert.Equal(t, "Unknown(99)", SkillName(99))
	assert.Equal(t, "Unknown(-1)", SkillName(-1))
}

func TestSkillName_TableCoversAllCurrentSkills(t *testing.T) {
	for id := 0; id <= 28; id++ {
		assert.NotContains(t, SkillName(id), "Unknown", "id %d should be named", id)
	}
}

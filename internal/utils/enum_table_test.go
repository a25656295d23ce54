package utils

import (
	"testing"

	assert "github.com/stretchr/testify/assert"
)

type testSpell int

const (
	spellVanish testSpell = iota
	spellTeleport
	spellLevitate
)

var testSpells = NewEnumTable(
	EnumEntry[testSpell]{Value: spellVanish, Description: "vanish"},
	EnumEntry[testSpell]{Value: spellTeleport, Description: "teleport"},
	EnumEntry[testSpell]{Value: spellLevitate, Description: "levitate"},
)

func TestEnumTable_RoundTrip(t *testing.T) {
	for _, entry := range testSpells.Entries() {
		t.Run(entry.Description, func(t *testing.T) {
			description, ok := testSpells.Description(entry.Value)
			assert.True(t, ok)
			assert.Equal(t, entry.Description, description)

			value, ok := testSpells.Value(entry.Description)
			assert.True(t, ok)
			assert.Equal(t, entry.Value, value)
		})
	}
	assert.Equal(t, 3, testSpells.Len())
}

func TestEnumTable_NotFound(t *testing.T) {
	_, ok := testSpells.Description(testSpell(42))
	assert.False(t, ok)

	_, ok = testSpells.Description(testSpell(-1))
	assert.False(t, ok)

	_, ok = testSpells.Value("explode")
	assert.False(t, ok)
}

func TestEnumTable_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewEnumTable(
			EnumEntry[testSpell]{Value: spellVanish, Description: "vanish"},
			EnumEntry[testSpell]{Value: spellVanish, Description: "other"},
		)
	})
}

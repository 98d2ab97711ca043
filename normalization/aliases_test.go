package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasTable_Expand(t *testing.T) {
	table := DefaultAliasTable()

	testCases := []struct {
		query string
		want  []string
	}{
		{"Канал", []string{"канал", "canal"}},
		{"клауд тауэр", []string{"клауд тауэр", "cloud tower", "cloud тауэр", "клауд tower"}},
		{"Прайм", []string{"прайм", "прайм парк"}},
		{"артхаус", []string{"артхаус"}},
		{"поклонная 9", []string{"поклонная 9", "покланная 9"}},
		{"  Марина   Бич ", []string{"марина бич", "marina бич", "марина beach"}},
		{"Shagal", []string{"shagal"}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, table.Expand(tc.query))
		})
	}
}

func TestAliasTable_ExpandFirstVariantIsNormalizedQuery(t *testing.T) {
	table := DefaultAliasTable()

	for _, q := range []string{"ВЕСТ ГАРДЕН", "Крик", "", "Неизвестный объект"} {
		variants := table.Expand(q)
		if assert.NotEmpty(t, variants) {
			assert.Equal(t, normalizeForTest(q), variants[0])
		}
	}
}

func TestAliasTable_Nil(t *testing.T) {
	var table *AliasTable

	assert.Equal(t, []string{"канал"}, table.Expand(" Канал "))
	assert.Equal(t, 0, table.Len())
	assert.Nil(t, table.Entries())
}

func TestNewAliasTable_DuplicatesAndEmpty(t *testing.T) {
	table := NewAliasTable([]Alias{
		{Trigger: "Канал", Replacement: "canal"},
		{Trigger: "  ", Replacement: "ignored"},
		{Trigger: "фронт", Replacement: "front"},
		{Trigger: "канал", Replacement: "kanal"},
	})

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []Alias{
		{Trigger: "канал", Replacement: "kanal"},
		{Trigger: "фронт", Replacement: "front"},
	}, table.Entries())
}

func TestAliasTable_EntriesIsCopy(t *testing.T) {
	table := DefaultAliasTable()

	entries := table.Entries()
	entries[0].Replacement = "изменено"

	assert.Equal(t, "cloud", table.Entries()[0].Replacement)
}

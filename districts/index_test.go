package districts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testIndex() *Index {
	return NewIndex([]Record{
		{Object: "Прайм парк", District: "Хорошевский", City: "Москва", Country: "Россия"},
		{Object: "Шагал", District: "Даниловский", City: "Москва", Country: "Россия"},
		{Object: "Canal Front Residences 3", District: "Al Wasl", City: "Дубай", Country: "ОАЭ"},
		{Object: "Marina Vista", District: "Dubai Marina", City: "Дубай", Country: "ОАЭ"},
		{Object: "Дом в Николино", District: "Хорошевский", City: "Москва", Country: "Россия"},
		{Object: "Без района", District: "", City: "", Country: "Россия"},
	})
}

func TestIndex_LookupByArea(t *testing.T) {
	idx := testIndex()

	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{"район целиком", "Хорошевский", []string{"Прайм парк", "Дом в Николино"}},
		{"часть названия района", "  хорошев ", []string{"Прайм парк", "Дом в Николино"}},
		{"район внутри запроса", "хорошевский район", []string{"Прайм парк", "Дом в Николино"}},
		{"по городу", "Дубай", []string{"Canal Front Residences 3", "Marina Vista"}},
		{"латиница в районе", "marina", []string{"Marina Vista"}},
		{"нет совпадений", "Хамовники", nil},
		{"пустой запрос", "   ", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := idx.LookupByArea(tc.query)
			var got []string
			for _, r := range records {
				got = append(got, r.Object)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIndex_LookupByAreaKeepsRecordFields(t *testing.T) {
	records := testIndex().LookupByArea("Даниловский")

	assert.Equal(t, []Record{
		{Object: "Шагал", District: "Даниловский", City: "Москва", Country: "Россия"},
	}, records)
}

func TestIndex_AllKnownAreas(t *testing.T) {
	areas := testIndex().AllKnownAreas()

	assert.Equal(t, []string{
		"Al Wasl (Дубай)",
		"Dubai Marina (Дубай)",
		"Даниловский (Москва)",
		"Хорошевский (Москва)",
	}, areas)
}

func TestIndex_Nil(t *testing.T) {
	var idx *Index

	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.LookupByArea("Москва"))
	assert.Nil(t, idx.AllKnownAreas())
	assert.Nil(t, idx.Records())
}

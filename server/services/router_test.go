package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	testCases := []struct {
		text  string
		kind  string
		query string
	}{
		{"район Хамовники", QueryKindDistrict, "Хамовники"},
		{"Район:Business Bay", QueryKindDistrict, "Business Bay"},
		{"РАЙОН: Дубай", QueryKindDistrict, "Дубай"},
		{"  район   Хамовники  ", QueryKindDistrict, "Хамовники"},
		{"район", QueryKindObject, "район"},
		{"район :", QueryKindObject, "район :"},
		{"районы Москвы", QueryKindObject, "районы Москвы"},
		{"Прайм парк", QueryKindObject, "Прайм парк"},
		{"", QueryKindObject, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			kind, query := ParseQuery(tc.text)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.query, query)
		})
	}
}

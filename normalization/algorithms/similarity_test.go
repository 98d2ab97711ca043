package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("abc", "abc"))
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
	assert.InDelta(t, 66.667, Ratio("abc", "abd"), 0.01)
	assert.InDelta(t, 96.296, Ratio("new york mets", "new york meats"), 0.01)
}

func TestRatio_CountsRunes(t *testing.T) {
	// Кириллица сравнивается по символам, а не по байтам
	assert.InDelta(t, 66.667, Ratio("шаг", "шар"), 0.01)
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 100.0, PartialRatio("abc", "xxabcxx"))
	assert.Equal(t, 100.0, PartialRatio("xxabcxx", "abc"))
	assert.Equal(t, 0.0, PartialRatio("", "abc"))
	assert.Less(t, PartialRatio("abc", "xyzxyz"), 1.0)
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 100.0, TokenSortRatio("fuzzy wuzzy was a bear", "wuzzy fuzzy was a bear"))
	assert.Equal(t, 100.0, TokenSortRatio("прайм парк", "парк прайм"))
}

func TestTokenSetRatio(t *testing.T) {
	assert.Equal(t, 100.0, TokenSetRatio("fuzzy was a bear", "fuzzy fuzzy was a bear"))
	assert.Less(t, TokenSetRatio("canal front", "marina view"), 75.0)
}

func TestPartialTokenRatio(t *testing.T) {
	assert.Equal(t, 100.0, PartialTokenRatio("canal front", "canal view"))
	assert.Equal(t, 100.0, PartialTokenRatio("front", "canal frontline"))
}

func TestWRatio(t *testing.T) {
	tests := []struct {
		name  string
		s1    string
		s2    string
		want  float64
		delta float64
	}{
		{"Одинаковые строки", "shagal", "shagal", 100, 0},
		{"Пустая строка", "", "shagal", 0, 0},
		{"Опечатка", "abc", "abd", 66.667, 0.01},
		{"Перестановка слов", "park prime", "prime park", 95, 0.001},
		{"Частичное совпадение", "canal", "canal front residences 3", 90, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WRatio(tt.s1, tt.s2), tt.delta)
		})
	}
}

func TestWRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"slava", "slova"},
		{"sidney city", "sydney city"},
		{"knightsbridge private park", "knightsbridge"},
	}
	for _, p := range pairs {
		assert.InDelta(t, WRatio(p[0], p[1]), WRatio(p[1], p[0]), 0.0001, "%q / %q", p[0], p[1])
	}
}

func TestWRatio_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"lucky", "lacky"},
		{"pinnacle", "panoramic"},
		{"a", "knightsbridge private park"},
	}
	for _, p := range pairs {
		score := WRatio(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestExtractOne(t *testing.T) {
	choices := []string{"marina", "shagal", "shagal"}

	match, ok := ExtractOne("shagal", choices, WRatio, 75)
	require.True(t, ok)
	assert.Equal(t, 1, match.Index, "при равных оценках выигрывает первый вариант")
	assert.Equal(t, "shagal", match.Choice)
	assert.Equal(t, 100.0, match.Score)

	_, ok = ExtractOne("xyz", choices, WRatio, 75)
	assert.False(t, ok)

	_, ok = ExtractOne("shagal", nil, WRatio, 0)
	assert.False(t, ok)
}

func TestExtractOne_CutoffIsInclusive(t *testing.T) {
	scorer := func(_, choice string) float64 {
		if choice == "b" {
			return 75
		}
		return 74
	}

	match, ok := ExtractOne("q", []string{"a", "b"}, scorer, 75)
	require.True(t, ok)
	assert.Equal(t, "b", match.Choice)

	_, ok = ExtractOne("q", []string{"a"}, scorer, 75)
	assert.False(t, ok)
}

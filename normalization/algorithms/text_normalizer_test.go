package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Пустая строка", "", ""},
		{"Только пробелы", "   \t  ", ""},
		{"Схлопывание пробелов", "A    b", "a b"},
		{"Обрезка и регистр", "  Прайм   Парк  ", "прайм парк"},
		{"Табуляция и переводы строк", "Canal\tFront\nResidences", "canal front residences"},
		{"Неразрывный пробел", "Поклонная\u00a09", "поклонная 9"},
		{"Разложенная й", "Никола\u0438\u0306", "николай"},
		{"Латиница и цифры", "Level 3", "level 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"  Башня   Федерация  вторичка ",
		"SIDNEY city",
		"Ёлки  Палки",
		"Ёжик",
		"Поклонная, 9",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "Normalize должен быть идемпотентным для %q", s)
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"шагал", "shagal"},
		{"щука", "schuka"},
		{"объект", "obekt"},
		{"мальчик", "malchik"},
		{"ёлка", "elka"},
		{"хамовники", "hamovniki"},
		{"цюрих", "tsyurih"},
		{"эра", "era"},
		{"prime park 9!", "prime park 9!"},
		{"прайм park", "praym park"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Transliterate(tt.input))
		})
	}
}

func TestTransliterate_CoversAlphabet(t *testing.T) {
	for r := 'а'; r <= 'я'; r++ {
		_, ok := cyrillicToLatin[r]
		assert.True(t, ok, "буква %q должна быть в таблице", r)
	}
	_, ok := cyrillicToLatin['ё']
	assert.True(t, ok)
}

func TestTransliterate_UppercasePassesThrough(t *testing.T) {
	// Заглавные буквы в таблицу не входят: транслитерация ожидает нормализованный ввод
	assert.Equal(t, "Ш", Transliterate("Ш"))
}

func TestNormalizeForSearch(t *testing.T) {
	assert.Equal(t, "shagal", NormalizeForSearch("  Шагал "))
	assert.Equal(t, "praym park", NormalizeForSearch("Прайм   Парк"))
	assert.Equal(t, NormalizeForSearch("Shagal"), NormalizeForSearch("ШАГАЛ"))
}

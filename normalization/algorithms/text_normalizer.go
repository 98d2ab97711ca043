package algorithms

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cyrillicToLatin таблица фонетической транслитерации строчной кириллицы.
// Твердый и мягкий знаки удаляются, ё совпадает с е.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Normalize приводит строку к каноническому виду для сравнения названий:
// NFC-композиция, нижний регистр, обрезка и схлопывание пробелов.
// Пустой ввод дает пустую строку. Функция идемпотентна.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Excel и мессенджеры отдают й/ё как в составной, так и в разложенной форме
	text = norm.NFC.String(text)
	text = strings.ToLower(text)

	// strings.Fields схлопывает любые пробельные символы, включая NBSP
	return strings.Join(strings.Fields(text), " ")
}

// Transliterate заменяет строчные кириллические буквы латинскими последовательностями.
// Остальные символы (латиница, цифры, пунктуация, заглавные буквы) не меняются,
// поэтому на вход ожидается уже нормализованная строка.
func Transliterate(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if translit, ok := cyrillicToLatin[r]; ok {
			builder.WriteString(translit)
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// NormalizeForSearch нормализация для межалфавитного сравнения
func NormalizeForSearch(text string) string {
	return Transliterate(Normalize(text))
}

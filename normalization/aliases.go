package normalization

import (
	"strings"

	"brokersearch/normalization/algorithms"
)

// Alias подстановка: если Trigger встречается в запросе, он заменяется на Replacement
type Alias struct {
	Trigger     string `json:"trigger"`
	Replacement string `json:"replacement"`
}

// AliasTable упорядоченный словарь алиасов. После создания не изменяется,
// поэтому безопасен для одновременного чтения.
type AliasTable struct {
	entries []Alias
}

// NewAliasTable создает словарь алиасов. Триггеры нормализуются; пустые триггеры
// отбрасываются. Повторный триггер заменяет подстановку, сохраняя позицию первого.
func NewAliasTable(aliases []Alias) *AliasTable {
	table := &AliasTable{entries: make([]Alias, 0, len(aliases))}
	positions := make(map[string]int, len(aliases))

	for _, a := range aliases {
		trigger := algorithms.Normalize(a.Trigger)
		if trigger == "" {
			continue
		}
		if pos, ok := positions[trigger]; ok {
			table.entries[pos].Replacement = a.Replacement
			continue
		}
		positions[trigger] = len(table.entries)
		table.entries = append(table.entries, Alias{Trigger: trigger, Replacement: a.Replacement})
	}

	return table
}

// Len количество алиасов
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries копия алиасов в порядке применения
func (t *AliasTable) Entries() []Alias {
	if t == nil {
		return nil
	}
	return append([]Alias(nil), t.entries...)
}

// Expand возвращает варианты запроса в порядке проверки матчером.
// Первый вариант всегда нормализованный запрос, затем полная замена по
// точному совпадению с триггером, затем замены подстрок в порядке словаря.
// Дубликаты не добавляются.
func (t *AliasTable) Expand(query string) []string {
	queryNorm := algorithms.Normalize(query)
	variants := []string{queryNorm}
	if t == nil {
		return variants
	}

	seen := map[string]bool{queryNorm: true}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	for _, a := range t.entries {
		if a.Trigger == queryNorm {
			add(algorithms.Normalize(a.Replacement))
			break
		}
	}

	for _, a := range t.entries {
		if a.Trigger != queryNorm && strings.Contains(queryNorm, a.Trigger) {
			add(strings.ReplaceAll(queryNorm, a.Trigger, a.Replacement))
		}
	}

	return variants
}

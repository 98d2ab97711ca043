package districts

import (
	"fmt"
	"sort"
	"strings"

	"brokersearch/normalization/algorithms"
)

// Record привязка объекта к району
type Record struct {
	Object   string `json:"object"`
	District string `json:"district"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Area отображаемое название района вида "<район> (<город>)"
func (r Record) Area() string {
	return fmt.Sprintf("%s (%s)", r.District, r.City)
}

type indexedRecord struct {
	Record
	districtNorm string
	cityNorm     string
}

// Index справочник районов. Порядок записей совпадает с порядком в файле.
// После создания не изменяется.
type Index struct {
	records []indexedRecord
}

// NewIndex создает справочник из записей
func NewIndex(records []Record) *Index {
	idx := &Index{records: make([]indexedRecord, 0, len(records))}
	for _, r := range records {
		idx.records = append(idx.records, indexedRecord{
			Record:       r,
			districtNorm: algorithms.Normalize(r.District),
			cityNorm:     algorithms.Normalize(r.City),
		})
	}
	return idx
}

// Len количество записей
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Records копия записей
func (idx *Index) Records() []Record {
	if idx == nil {
		return nil
	}
	result := make([]Record, len(idx.records))
	for i, r := range idx.records {
		result[i] = r.Record
	}
	return result
}

// LookupByArea все объекты, район или город которых совпадает с запросом.
// Сравнение по взаимному вхождению нормализованных строк: короткий город
// может найтись внутри названия несвязанного района, это допустимо.
// Пустые поля записи не участвуют в сравнении.
func (idx *Index) LookupByArea(query string) []Record {
	queryNorm := algorithms.Normalize(query)
	if idx == nil || queryNorm == "" {
		return nil
	}

	var result []Record
	for _, r := range idx.records {
		if mutualContains(queryNorm, r.districtNorm) ||
			mutualContains(queryNorm, r.cityNorm) ||
			(r.cityNorm != "" && r.cityNorm == queryNorm) {
			result = append(result, r.Record)
		}
	}
	return result
}

func mutualContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// AllKnownAreas уникальные районы вида "<район> (<город>)" в лексикографическом порядке.
// Записи без района или города пропускаются.
func (idx *Index) AllKnownAreas() []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]bool)
	areas := make([]string, 0)
	for _, r := range idx.records {
		if r.District == "" || r.City == "" {
			continue
		}
		area := r.Area()
		if !seen[area] {
			seen[area] = true
			areas = append(areas, area)
		}
	}
	sort.Strings(areas)
	return areas
}

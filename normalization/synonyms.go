package normalization

import "brokersearch/normalization/algorithms"

// SynonymGroups группы названий, обозначающих один объект
// (разные алфавиты, первичка/вторичка, опечатки в выгрузке).
// Группы должны быть непересекающимися; при пересечении выигрывает первая.
type SynonymGroups struct {
	groups     [][]string
	normalized []map[string]bool
}

// NewSynonymGroups создает неизменяемый набор групп синонимов
func NewSynonymGroups(groups [][]string) *SynonymGroups {
	sg := &SynonymGroups{
		groups:     make([][]string, 0, len(groups)),
		normalized: make([]map[string]bool, 0, len(groups)),
	}
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		members := make(map[string]bool, len(group))
		for _, name := range group {
			members[algorithms.Normalize(name)] = true
		}
		sg.groups = append(sg.groups, append([]string(nil), group...))
		sg.normalized = append(sg.normalized, members)
	}
	return sg
}

// Len количество групп
func (sg *SynonymGroups) Len() int {
	if sg == nil {
		return 0
	}
	return len(sg.groups)
}

// Groups копия всех групп
func (sg *SynonymGroups) Groups() [][]string {
	if sg == nil {
		return nil
	}
	result := make([][]string, len(sg.groups))
	for i, g := range sg.groups {
		result[i] = append([]string(nil), g...)
	}
	return result
}

// GroupOf возвращает всю группу, в которую входит название (с исходным написанием
// участников), либо срез из одного исходного названия.
func (sg *SynonymGroups) GroupOf(name string) []string {
	if sg != nil {
		nameNorm := algorithms.Normalize(name)
		for i, members := range sg.normalized {
			if members[nameNorm] {
				return append([]string(nil), sg.groups[i]...)
			}
		}
	}
	return []string{name}
}

package services

import (
	"context"
	"strings"
	"unicode/utf8"

	apperrors "brokersearch/server/errors"
)

// Виды запросов
const (
	QueryKindObject   = "object"
	QueryKindDistrict = "district"
)

const districtPrefix = "район"

// RoutedResult результат поиска по тексту сообщения; заполнено ровно одно поле результата
type RoutedResult struct {
	Kind     string               `json:"kind"`
	Query    string               `json:"query"`
	Object   BrokerSearchResult   `json:"object,omitempty"`
	District DistrictSearchResult `json:"district,omitempty"`
}

// ParseQuery определяет вид запроса. Текст, начинающийся с «район » или «район:»
// (без учета регистра), ищется по району; если после префикса ничего нет,
// весь текст ищется как объект.
func ParseQuery(text string) (kind, query string) {
	text = strings.TrimSpace(text)
	prefixLen := utf8.RuneCountInString(districtPrefix)

	runes := []rune(text)
	if len(runes) > prefixLen {
		head := strings.ToLower(string(runes[:prefixLen]))
		next := runes[prefixLen]
		if head == districtPrefix && (next == ' ' || next == ':') {
			rest := strings.TrimSpace(string(runes[prefixLen+1:]))
			rest = strings.TrimSpace(strings.TrimLeft(rest, ":"))
			if rest != "" {
				return QueryKindDistrict, rest
			}
		}
	}
	return QueryKindObject, text
}

// Route выполняет поиск по тексту сообщения
func (s *SearchService) Route(ctx context.Context, text string) (*RoutedResult, error) {
	kind, query := ParseQuery(text)
	if query == "" {
		return nil, apperrors.NewValidationError("пустой запрос", nil)
	}

	result := &RoutedResult{Kind: kind, Query: query}
	var err error
	if kind == QueryKindDistrict {
		result.District, err = s.SearchByDistrict(ctx, query)
	} else {
		result.Object, err = s.SearchBrokers(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

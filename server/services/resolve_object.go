package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brokersearch/internal/domain/models"
	"brokersearch/normalization/algorithms"
	apperrors "brokersearch/server/errors"
)

// MatchMode режим простого поиска объекта
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchContains MatchMode = "contains"
)

// ParseMatchMode разбирает режим; пустая строка означает contains
func ParseMatchMode(value string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", MatchContains:
		return MatchContains, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("unknown match mode %q: expected exact or contains", value)
}

// ResolveObjectRequest параметры простого поиска
type ResolveObjectRequest struct {
	Object        string
	Days          int
	Mode          MatchMode
	ExcludeStatus string
}

// ResolveObjectResult брокеры по объекту без каскада и синонимов
type ResolveObjectResult struct {
	Object  string    `json:"object"`
	Days    int       `json:"days"`
	Match   MatchMode `json:"match"`
	Brokers []string  `json:"brokers"`
}

// ResolveObject воспроизводимый поиск: нормализованное название объекта совпадает
// с запросом (exact) или содержит его (contains). Без алиасов, транслитерации и синонимов.
func ResolveObject(set *models.ShowingSet, req ResolveObjectRequest, now time.Time) (*ResolveObjectResult, error) {
	queryNorm := algorithms.Normalize(req.Object)
	if queryNorm == "" {
		return nil, apperrors.NewValidationError("не указано название объекта", nil)
	}
	if req.Days < 0 {
		return nil, apperrors.NewValidationError("период не может быть отрицательным", nil)
	}
	if req.Mode == "" {
		req.Mode = MatchContains
	}
	if req.Mode != MatchExact && req.Mode != MatchContains {
		return nil, apperrors.NewValidationError(fmt.Sprintf("неизвестный режим поиска: %s", req.Mode), nil)
	}

	// Статус исключается только если колонка есть в выгрузке
	excludeStatus := ""
	if set.HasStatus {
		excludeStatus = req.ExcludeStatus
	}

	var group []string
	seen := make(map[string]bool)
	for _, row := range set.Rows {
		objNorm := algorithms.Normalize(row.Object)
		if seen[objNorm] || objNorm == "" {
			continue
		}
		if objNorm == queryNorm || (req.Mode == MatchContains && strings.Contains(objNorm, queryNorm)) {
			seen[objNorm] = true
			group = append(group, row.Object)
		}
	}

	agg := Aggregate(set.Rows, group, models.DayCutoff(now, req.Days), excludeStatus)
	return &ResolveObjectResult{
		Object:  req.Object,
		Days:    req.Days,
		Match:   req.Mode,
		Brokers: agg.Brokers,
	}, nil
}

// ResolveObject загружает показы и выполняет простой поиск
func (s *SearchService) ResolveObject(ctx context.Context, req ResolveObjectRequest) (*ResolveObjectResult, error) {
	if err := ValidateContext(ctx); err != nil {
		return nil, err
	}
	set, err := s.showings.Load(ctx)
	if err != nil {
		return nil, apperrors.FromLoadError(err)
	}
	return ResolveObject(set, req, s.now())
}

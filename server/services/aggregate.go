package services

import (
	"sort"
	"strings"
	"time"

	"brokersearch/internal/domain/models"
	"brokersearch/normalization/algorithms"
)

// AggregateResult брокеры по группе объектов
type AggregateResult struct {
	// Objects названия объектов группы, реально встретившиеся в данных, в порядке первого появления
	Objects []string `json:"objects"`
	Brokers []string `json:"brokers"`
}

// Aggregate отбирает показы не раньше cutoff по любому названию из группы
// (сравнение нормализованных названий), опционально исключая статус,
// и собирает уникальных брокеров в лексикографическом порядке.
func Aggregate(rows []models.Showing, group []string, cutoff time.Time, excludeStatus string) AggregateResult {
	names := make(map[string]bool, len(group))
	for _, name := range group {
		if n := algorithms.Normalize(name); n != "" {
			names[n] = true
		}
	}
	excludeStatus = strings.TrimSpace(excludeStatus)

	result := AggregateResult{Objects: []string{}, Brokers: []string{}}
	seenObjects := make(map[string]bool)
	seenBrokers := make(map[string]bool)

	for _, row := range rows {
		if row.Date.Before(cutoff) {
			continue
		}
		if !names[algorithms.Normalize(row.Object)] {
			continue
		}
		if excludeStatus != "" && strings.TrimSpace(row.Status) == excludeStatus {
			continue
		}

		if !seenObjects[row.Object] {
			seenObjects[row.Object] = true
			result.Objects = append(result.Objects, row.Object)
		}

		broker := strings.TrimSpace(row.Broker)
		if broker != "" && !seenBrokers[broker] {
			seenBrokers[broker] = true
			result.Brokers = append(result.Brokers, broker)
		}
	}

	sort.Strings(result.Brokers)
	return result
}

package models

import (
	"strings"
	"time"
)

// Колонки выгрузки показов
const (
	ColumnBroker = "Брокер"
	ColumnDate   = "Дата"
	ColumnObject = "Объект"
	ColumnStatus = "Статус"
)

// DateLayout формат даты показа в выгрузке (DD.MM.YYYY)
const DateLayout = "02.01.2006"

// RequiredColumns обязательные колонки в порядке проверки
var RequiredColumns = []string{ColumnBroker, ColumnDate, ColumnObject}

// Showing одна строка журнала показов
type Showing struct {
	Broker string    `json:"broker"`
	Date   time.Time `json:"date"`
	Object string    `json:"object"`
	Status string    `json:"status,omitempty"`
}

// ShowingSet загруженный снимок журнала показов. После загрузки не изменяется.
type ShowingSet struct {
	Rows      []Showing `json:"rows"`
	HasStatus bool      `json:"has_status"`
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Len количество строк
func (s *ShowingSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Since строки с датой не раньше cutoff
func (s *ShowingSet) Since(cutoff time.Time) []Showing {
	if s == nil {
		return nil
	}
	result := make([]Showing, 0, len(s.Rows))
	for _, row := range s.Rows {
		if !row.Date.Before(cutoff) {
			result = append(result, row)
		}
	}
	return result
}

// ObjectNames уникальные непустые названия объектов в порядке первого появления
func ObjectNames(rows []Showing) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, row := range rows {
		if strings.TrimSpace(row.Object) == "" || seen[row.Object] {
			continue
		}
		seen[row.Object] = true
		names = append(names, row.Object)
	}
	return names
}

// DayCutoff начало дня, отстоящего от now на days дней, в часовом поясе now.
// Показ, датированный ровно этим днем, попадает в окно.
func DayCutoff(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-days, 0, 0, 0, 0, now.Location())
}

package errors

import (
	"net/http"
	"sync"
	"time"
)

// ErrorRecord запись об ошибке запроса
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Kind        string    `json:"kind"`
	Code        int       `json:"code"`
	Endpoint    string    `json:"endpoint"`
	RequestID   string    `json:"request_id,omitempty"`
	UserMessage string    `json:"user_message"`
}

// ErrorStatsSnapshot копия счетчиков на момент запроса
type ErrorStatsSnapshot struct {
	TotalErrors      int64            `json:"total_errors"`
	ErrorsByKind     map[string]int64 `json:"errors_by_kind"`
	ErrorsByCode     map[int]int64    `json:"errors_by_code"`
	ErrorsByEndpoint map[string]int64 `json:"errors_by_endpoint"`
	LastErrors       []ErrorRecord    `json:"last_errors"`
	UptimeSeconds    float64          `json:"uptime_seconds"`
}

// ErrorStats счетчики ошибок API
type ErrorStats struct {
	mu sync.RWMutex

	total      int64
	byKind     map[string]int64
	byCode     map[int]int64
	byEndpoint map[string]int64
	last       []ErrorRecord
	maxLast    int
	startTime  time.Time
}

// NewErrorStats создает счетчики; хранится не больше maxLast последних ошибок
func NewErrorStats(maxLast int) *ErrorStats {
	if maxLast <= 0 {
		maxLast = 50
	}
	return &ErrorStats{
		byKind:     make(map[string]int64),
		byCode:     make(map[int]int64),
		byEndpoint: make(map[string]int64),
		maxLast:    maxLast,
		startTime:  time.Now(),
	}
}

// Record учитывает ошибку
func (s *ErrorStats) Record(err *AppError, endpoint, requestID string) {
	if err == nil {
		return
	}
	kind := Kind(err.Code)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byKind[kind]++
	s.byCode[err.Code]++
	if endpoint != "" {
		s.byEndpoint[endpoint]++
	}

	s.last = append(s.last, ErrorRecord{
		Timestamp:   time.Now(),
		Kind:        kind,
		Code:        err.Code,
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	})
	if len(s.last) > s.maxLast {
		s.last = s.last[len(s.last)-s.maxLast:]
	}
}

// Snapshot копия счетчиков; последние ошибки идут от новых к старым
func (s *ErrorStats) Snapshot() ErrorStatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ErrorStatsSnapshot{
		TotalErrors:      s.total,
		ErrorsByKind:     make(map[string]int64, len(s.byKind)),
		ErrorsByCode:     make(map[int]int64, len(s.byCode)),
		ErrorsByEndpoint: make(map[string]int64, len(s.byEndpoint)),
		LastErrors:       make([]ErrorRecord, 0, len(s.last)),
		UptimeSeconds:    time.Since(s.startTime).Seconds(),
	}
	for k, v := range s.byKind {
		snap.ErrorsByKind[k] = v
	}
	for k, v := range s.byCode {
		snap.ErrorsByCode[k] = v
	}
	for k, v := range s.byEndpoint {
		snap.ErrorsByEndpoint[k] = v
	}
	for i := len(s.last) - 1; i >= 0; i-- {
		snap.LastErrors = append(snap.LastErrors, s.last[i])
	}
	return snap
}

// Reset обнуляет счетчики
func (s *ErrorStats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total = 0
	s.byKind = make(map[string]int64)
	s.byCode = make(map[int]int64)
	s.byEndpoint = make(map[string]int64)
	s.last = nil
	s.startTime = time.Now()
}

// Kind название вида ошибки по HTTP статусу
func Kind(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "ValidationError"
	case http.StatusNotFound:
		return "NotFoundError"
	case http.StatusUnprocessableEntity:
		return "DataError"
	case http.StatusTooManyRequests:
		return "RateLimitError"
	case http.StatusInternalServerError:
		return "InternalError"
	case http.StatusServiceUnavailable:
		return "ServiceUnavailableError"
	default:
		return "UnknownError"
	}
}

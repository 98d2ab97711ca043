package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"brokersearch/districts"
	"brokersearch/internal/domain/models"
	"brokersearch/normalization"
	"brokersearch/normalization/algorithms"
	apperrors "brokersearch/server/errors"
)

// DefaultSearchDays окно поиска по умолчанию
const DefaultSearchDays = 60

// DatasetSource источник журнала показов
type DatasetSource interface {
	Load(ctx context.Context) (*models.ShowingSet, error)
}

// DistrictSource источник справочника районов
type DistrictSource interface {
	Load() (*districts.Index, error)
}

// SearchService поиск брокеров по объекту и по району.
// Справочники неизменяемы, поэтому сервис можно вызывать из нескольких горутин.
type SearchService struct {
	showings       DatasetSource
	districts      DistrictSource
	matcher        *normalization.Matcher
	synonyms       *normalization.SynonymGroups
	days           int
	districtCutoff float64
	now            func() time.Time
}

// SearchOption настройка сервиса поиска
type SearchOption func(*SearchService)

// WithDays задает окно поиска в днях
func WithDays(days int) SearchOption {
	return func(s *SearchService) {
		if days > 0 {
			s.days = days
		}
	}
}

// WithDistrictCutoff задает порог подсказки района
func WithDistrictCutoff(cutoff float64) SearchOption {
	return func(s *SearchService) {
		s.districtCutoff = cutoff
	}
}

// WithMatcher заменяет матчер объектов
func WithMatcher(m *normalization.Matcher) SearchOption {
	return func(s *SearchService) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithClock задает источник текущего времени
func WithClock(now func() time.Time) SearchOption {
	return func(s *SearchService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSearchService создает сервис поиска. tables == nil означает встроенные справочники.
func NewSearchService(showings DatasetSource, districtSource DistrictSource, tables *normalization.ReferenceTables, opts ...SearchOption) *SearchService {
	if tables == nil {
		tables = normalization.DefaultReferenceTables()
	}
	s := &SearchService{
		showings:       showings,
		districts:      districtSource,
		matcher:        normalization.NewMatcher(tables.Aliases),
		synonyms:       tables.Synonyms,
		days:           DefaultSearchDays,
		districtCutoff: normalization.DefaultDistrictCutoff,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Days окно поиска в днях
func (s *SearchService) Days() int {
	return s.days
}

// recentRows загружает показы и отбирает попавшие в окно поиска
func (s *SearchService) recentRows(ctx context.Context) ([]models.Showing, time.Time, error) {
	if err := ValidateContext(ctx); err != nil {
		return nil, time.Time{}, err
	}
	set, err := s.showings.Load(ctx)
	if err != nil {
		slog.Warn("failed to load showings", "error", err)
		return nil, time.Time{}, apperrors.FromLoadError(err)
	}
	cutoff := models.DayCutoff(s.now(), s.days)
	return set.Since(cutoff), cutoff, nil
}

// SearchBrokers ищет объект по свободному запросу и собирает брокеров по группе синонимов.
// Нечеткое совпадение возвращается только как подсказка, без брокеров.
func (s *SearchService) SearchBrokers(ctx context.Context, query string) (BrokerSearchResult, error) {
	rows, cutoff, err := s.recentRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NoDataInPeriod{Query: query, Days: s.days}, nil
	}

	match := s.matcher.Resolve(query, models.ObjectNames(rows))
	slog.Debug("object resolved",
		"query", query,
		"candidate", match.Candidate,
		"tier", match.Tier.String(),
		"score", match.Score,
	)

	if !match.Found() {
		return ObjectNotFound{Query: query, Days: s.days}, nil
	}
	if !match.Exact {
		return ObjectSuggested{Query: query, Object: match.Candidate, Days: s.days, Score: match.Score}, nil
	}

	agg := Aggregate(rows, s.synonyms.GroupOf(match.Candidate), cutoff, "")
	return BrokersFound{
		Query:   query,
		Object:  match.Candidate,
		Objects: agg.Objects,
		Days:    s.days,
		Brokers: agg.Brokers,
		Score:   match.Score,
		Tier:    match.Tier.String(),
	}, nil
}

// SearchByDistrict собирает брокеров по всем объектам района из справочника.
// Если район не найден, предлагает похожий из списка известных.
func (s *SearchService) SearchByDistrict(ctx context.Context, query string) (DistrictSearchResult, error) {
	rows, _, err := s.recentRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NoDataInPeriod{Query: query, Days: s.days}, nil
	}

	index, err := s.loadDistricts()
	if err != nil {
		return nil, err
	}

	records := index.LookupByArea(query)
	if len(records) == 0 {
		result := DistrictNotFound{Query: query, Days: s.days}
		if suggestion, score, ok := normalization.Suggest(query, index.AllKnownAreas(), nil, s.districtCutoff); ok {
			slog.Debug("district suggested", "query", query, "suggestion", suggestion, "score", score)
			result.Suggestion = suggestion
		}
		return result, nil
	}

	// Нормализованное название → название из справочника; при повторе выигрывает последняя запись
	objectsNorm := make(map[string]string, len(records))
	objectsInDistrict := make([]string, 0, len(records))
	for _, r := range records {
		objectsNorm[algorithms.Normalize(r.Object)] = r.Object
		objectsInDistrict = append(objectsInDistrict, r.Object)
	}

	byObject := make(map[string]map[string]bool)
	var order []string
	matched := false
	for _, row := range rows {
		name, ok := objectsNorm[algorithms.Normalize(row.Object)]
		if !ok {
			continue
		}
		matched = true
		broker := strings.TrimSpace(row.Broker)
		if broker == "" {
			continue
		}
		if byObject[name] == nil {
			byObject[name] = make(map[string]bool)
			order = append(order, name)
		}
		byObject[name][broker] = true
	}

	first := records[0]
	if !matched {
		return DistrictWithoutShowings{
			Query:             query,
			District:          first.District,
			City:              first.City,
			Days:              s.days,
			ObjectsInDistrict: objectsInDistrict,
		}, nil
	}

	result := DistrictBrokers{
		Query:    query,
		District: first.District,
		City:     first.City,
		Days:     s.days,
		ByObject: make([]ObjectBrokers, 0, len(order)),
	}
	total := make(map[string]bool)
	for _, name := range order {
		brokers := make([]string, 0, len(byObject[name]))
		for b := range byObject[name] {
			brokers = append(brokers, b)
			total[b] = true
		}
		sort.Strings(brokers)
		result.ByObject = append(result.ByObject, ObjectBrokers{Object: name, Brokers: brokers})
	}
	result.TotalBrokers = len(total)

	return result, nil
}

// ListAreas все известные районы вида "<район> (<город>)"
func (s *SearchService) ListAreas(ctx context.Context) ([]string, error) {
	if err := ValidateContext(ctx); err != nil {
		return nil, err
	}
	index, err := s.loadDistricts()
	if err != nil {
		return nil, err
	}
	return index.AllKnownAreas(), nil
}

func (s *SearchService) loadDistricts() (*districts.Index, error) {
	if s.districts == nil {
		return districts.NewIndex(nil), nil
	}
	index, err := s.districts.Load()
	if err != nil {
		slog.Warn("failed to load districts", "error", err)
		return nil, apperrors.NewInternalError("не удалось загрузить справочник районов", err)
	}
	return index, nil
}

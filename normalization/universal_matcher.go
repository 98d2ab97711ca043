package normalization

import (
	"math"
	"strings"

	"brokersearch/normalization/algorithms"
)

// Оценки детерминированных уровней каскада
const (
	ScoreExact           = 100
	ScoreContains        = 95
	ScoreReverseContains = 90
)

// Пороги нечеткого поиска
const (
	DefaultObjectCutoff   = 75.0
	DefaultDistrictCutoff = 70.0
)

// MatchTier уровень каскада, на котором найдено совпадение
type MatchTier int

const (
	TierNone MatchTier = iota
	TierExact
	TierContains
	TierReverseContains
	TierFuzzy
)

// String название уровня для логов и API
func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierContains:
		return "contains"
	case TierReverseContains:
		return "reverse_contains"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// MatchResult результат разрешения запроса в название из пула кандидатов
type MatchResult struct {
	Query     string
	Candidate string
	Score     int
	// Exact истинно для детерминированных уровней. Нечеткое совпадение служит только подсказкой,
	// агрегировать данные по нему нельзя.
	Exact bool
	Tier  MatchTier
}

// Found найдено ли совпадение
func (r MatchResult) Found() bool {
	return r.Tier != TierNone
}

// Matcher каскадный поиск лучшего кандидата: точное совпадение, вхождение запроса
// в кандидата, вхождение кандидата в запрос, затем нечеткий поиск.
// Не хранит изменяемого состояния и безопасен для одновременного использования.
type Matcher struct {
	aliases *AliasTable
	scorer  algorithms.Scorer
	cutoff  float64
}

// MatcherOption настройка матчера
type MatcherOption func(*Matcher)

// WithScorer задает функцию нечеткой схожести
func WithScorer(scorer algorithms.Scorer) MatcherOption {
	return func(m *Matcher) {
		if scorer != nil {
			m.scorer = scorer
		}
	}
}

// WithFuzzyCutoff задает минимальную оценку нечеткого совпадения
func WithFuzzyCutoff(cutoff float64) MatcherOption {
	return func(m *Matcher) {
		m.cutoff = cutoff
	}
}

// NewMatcher создает матчер. aliases может быть nil.
func NewMatcher(aliases *AliasTable, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		aliases: aliases,
		scorer:  algorithms.WRatio,
		cutoff:  DefaultObjectCutoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cutoff порог нечеткого поиска
func (m *Matcher) Cutoff() float64 {
	return m.cutoff
}

// candidatePool нормализованные формы кандидатов
type candidatePool struct {
	names    []string
	plain    []string
	translit []string
}

func newCandidatePool(candidates []string) candidatePool {
	pool := candidatePool{
		names:    candidates,
		plain:    make([]string, len(candidates)),
		translit: make([]string, len(candidates)),
	}
	for i, c := range candidates {
		pool.plain[i] = algorithms.Normalize(c)
		pool.translit[i] = algorithms.Transliterate(pool.plain[i])
	}
	return pool
}

// Resolve находит лучший кандидат для запроса.
// Каждый вариант запроса после алиасов проходит уровни 1–3 целиком, прежде чем
// проверяется следующий; внутри уровня побеждает первый кандидат пула.
// Нечеткий уровень запускается один раз по всем вариантам, только если
// детерминированные уровни ничего не нашли.
func (m *Matcher) Resolve(query string, candidates []string) MatchResult {
	result := MatchResult{Query: query}
	if len(candidates) == 0 {
		return result
	}

	variants := m.aliases.Expand(query)
	pool := newCandidatePool(candidates)

	for _, variant := range variants {
		if variant == "" {
			continue
		}
		if idx, tier, ok := pool.deterministicMatch(variant, algorithms.NormalizeForSearch(variant)); ok {
			result.Candidate = pool.names[idx]
			result.Tier = tier
			result.Exact = true
			result.Score = tierScore(tier)
			return result
		}
	}

	return m.fuzzyMatch(result, variants, pool)
}

func tierScore(tier MatchTier) int {
	switch tier {
	case TierExact:
		return ScoreExact
	case TierContains:
		return ScoreContains
	case TierReverseContains:
		return ScoreReverseContains
	}
	return 0
}

// deterministicMatch уровни 1–3 для одного варианта запроса.
// Пустые нормализованные формы не участвуют: пустая строка входит в любую.
func (p candidatePool) deterministicMatch(variant, variantTranslit string) (int, MatchTier, bool) {
	for i := range p.names {
		if p.plain[i] == "" {
			continue
		}
		if variant == p.plain[i] || (variantTranslit != "" && variantTranslit == p.translit[i]) {
			return i, TierExact, true
		}
	}

	for i := range p.names {
		if p.plain[i] == "" {
			continue
		}
		if strings.Contains(p.plain[i], variant) ||
			(variantTranslit != "" && p.translit[i] != "" && strings.Contains(p.translit[i], variantTranslit)) {
			return i, TierContains, true
		}
	}

	for i := range p.names {
		if p.plain[i] == "" {
			continue
		}
		if strings.Contains(variant, p.plain[i]) ||
			(variantTranslit != "" && p.translit[i] != "" && strings.Contains(variantTranslit, p.translit[i])) {
			return i, TierReverseContains, true
		}
	}

	return -1, TierNone, false
}

// fuzzyMatch уровень 4: лучшая пара (вариант, кандидат) по транслитерированным формам.
// При равенстве оценок остается пара, найденная раньше.
func (m *Matcher) fuzzyMatch(result MatchResult, variants []string, pool candidatePool) MatchResult {
	choices := make([]string, 0, len(pool.names))
	indices := make([]int, 0, len(pool.names))
	for i, t := range pool.translit {
		if t != "" {
			choices = append(choices, t)
			indices = append(indices, i)
		}
	}
	if len(choices) == 0 {
		return result
	}

	var best algorithms.ScoredChoice
	found := false
	for _, variant := range variants {
		variantTranslit := algorithms.NormalizeForSearch(variant)
		if variantTranslit == "" {
			continue
		}
		match, ok := algorithms.ExtractOne(variantTranslit, choices, m.scorer, m.cutoff)
		if ok && (!found || match.Score > best.Score) {
			best = match
			found = true
		}
	}
	if !found {
		return result
	}

	result.Candidate = pool.names[indices[best.Index]]
	result.Tier = TierFuzzy
	result.Exact = false
	result.Score = fuzzyScore(best.Score)
	return result
}

// fuzzyScore целая оценка нечеткого совпадения; всегда меньше 100,
// чтобы не выдать подсказку за точное совпадение
func fuzzyScore(score float64) int {
	s := floorScore(score)
	if s >= ScoreExact {
		s = ScoreExact - 1
	}
	return s
}

func floorScore(score float64) int {
	if score < 0 {
		return 0
	}
	return int(math.Floor(score))
}

// Suggest нечеткий поиск ближайшего варианта без транслитерации и алиасов.
// Используется для подсказки района.
func Suggest(query string, choices []string, scorer algorithms.Scorer, cutoff float64) (string, int, bool) {
	if scorer == nil {
		scorer = algorithms.WRatio
	}
	queryNorm := algorithms.Normalize(query)
	if queryNorm == "" || len(choices) == 0 {
		return "", 0, false
	}

	normalized := make([]string, len(choices))
	for i, c := range choices {
		normalized[i] = algorithms.Normalize(c)
	}

	match, ok := algorithms.ExtractOne(queryNorm, normalized, scorer, cutoff)
	if !ok {
		return "", 0, false
	}
	return choices[match.Index], floorScore(match.Score), true
}

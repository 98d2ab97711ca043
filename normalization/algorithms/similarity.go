package algorithms

import (
	"sort"
	"strings"
)

// Scorer оценивает схожесть двух строк в диапазоне [0, 100]
type Scorer func(s1, s2 string) float64

const (
	// unbaseScale понижающий коэффициент для токенных метрик
	unbaseScale = 0.95
)

// lcsLength вычисляет длину наибольшей общей подпоследовательности (по рунам)
func lcsLength(r1, r2 []rune) int {
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}

	// Оптимизированный алгоритм с двумя строками матрицы
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = maxInt(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// indelDistance расстояние, допускающее только вставки и удаления
func indelDistance(r1, r2 []rune) int {
	return len(r1) + len(r2) - 2*lcsLength(r1, r2)
}

// normalizedSimilarity переводит расстояние в схожесть [0, 100]
func normalizedSimilarity(dist, lensum int) float64 {
	if lensum == 0 {
		return 100
	}
	return 100 * (1 - float64(dist)/float64(lensum))
}

func ratioRunes(r1, r2 []rune) float64 {
	return normalizedSimilarity(indelDistance(r1, r2), len(r1)+len(r2))
}

// Ratio нормализованная Indel-схожесть двух строк
func Ratio(s1, s2 string) float64 {
	return ratioRunes([]rune(s1), []rune(s2))
}

// PartialRatio схожесть короткой строки с лучшим по выравниванию фрагментом длинной
func PartialRatio(s1, s2 string) float64 {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		if len(r1) == 0 && len(r2) == 0 {
			return 100
		}
		return 0
	}
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}

	score := partialRatioShort(r1, r2)
	if score != 100 && len(r1) == len(r2) {
		if swapped := partialRatioShort(r2, r1); swapped > score {
			score = swapped
		}
	}
	return score
}

// partialRatioShort перебирает окна длинной строки r2 длиной len(r1),
// а также усеченные окна в начале и в конце. Окна, чей крайний символ
// не встречается в r1, пропускаются.
func partialRatioShort(r1, r2 []rune) float64 {
	len1, len2 := len(r1), len(r2)
	charSet := make(map[rune]struct{}, len1)
	for _, r := range r1 {
		charSet[r] = struct{}{}
	}

	best := 0.0
	for i := 1; i < len1; i++ {
		if _, ok := charSet[r2[i-1]]; !ok {
			continue
		}
		if score := ratioRunes(r1, r2[:i]); score > best {
			best = score
			if best == 100 {
				return best
			}
		}
	}

	for i := 0; i < len2-len1; i++ {
		if _, ok := charSet[r2[i]]; !ok {
			continue
		}
		if score := ratioRunes(r1, r2[i:i+len1]); score > best {
			best = score
			if best == 100 {
				return best
			}
		}
	}

	for i := len2 - len1; i < len2; i++ {
		if _, ok := charSet[r2[i]]; !ok {
			continue
		}
		if score := ratioRunes(r1, r2[i:]); score > best {
			best = score
			if best == 100 {
				return best
			}
		}
	}

	return best
}

// tokenSets разбивает строки на токены и раскладывает их множества
type tokenSets struct {
	sortedA, sortedB []string // все токены, отсортированные
	intersection     []string
	diffAB, diffBA   []string
}

func splitTokens(s1, s2 string) tokenSets {
	tokensA := strings.Fields(s1)
	tokensB := strings.Fields(s2)

	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
	}
	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}

	var ts tokenSets
	for t := range setA {
		if setB[t] {
			ts.intersection = append(ts.intersection, t)
		} else {
			ts.diffAB = append(ts.diffAB, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			ts.diffBA = append(ts.diffBA, t)
		}
	}
	sort.Strings(ts.intersection)
	sort.Strings(ts.diffAB)
	sort.Strings(ts.diffBA)

	ts.sortedA = append([]string(nil), tokensA...)
	ts.sortedB = append([]string(nil), tokensB...)
	sort.Strings(ts.sortedA)
	sort.Strings(ts.sortedB)
	return ts
}

// TokenSortRatio Ratio от строк с отсортированными токенами
func TokenSortRatio(s1, s2 string) float64 {
	ts := splitTokens(s1, s2)
	return Ratio(strings.Join(ts.sortedA, " "), strings.Join(ts.sortedB, " "))
}

// TokenSetRatio сравнивает пересечение и разности множеств токенов
func TokenSetRatio(s1, s2 string) float64 {
	ts := splitTokens(s1, s2)
	if len(ts.intersection) > 0 && (len(ts.diffAB) == 0 || len(ts.diffBA) == 0) {
		return 100
	}
	return tokenSetScore(ts)
}

func tokenSetScore(ts tokenSets) float64 {
	diffAB := []rune(strings.Join(ts.diffAB, " "))
	diffBA := []rune(strings.Join(ts.diffBA, " "))
	sectLen := len([]rune(strings.Join(ts.intersection, " ")))

	sep := 0
	if sectLen != 0 {
		sep = 1
	}
	sectABLen := sectLen + sep + len(diffAB)
	sectBALen := sectLen + sep + len(diffBA)

	result := normalizedSimilarity(indelDistance(diffAB, diffBA), sectABLen+sectBALen)
	if sectLen == 0 {
		return result
	}

	// Пересечение совпадает полностью, расстояние складывается из разделителя и разности
	sectABRatio := normalizedSimilarity(sep+len(diffAB), sectLen+sectABLen)
	sectBARatio := normalizedSimilarity(sep+len(diffBA), sectLen+sectBALen)
	return maxFloat(result, sectABRatio, sectBARatio)
}

// tokenRatio максимум из TokenSortRatio и TokenSetRatio за один разбор
func tokenRatio(s1, s2 string) float64 {
	ts := splitTokens(s1, s2)
	if len(ts.intersection) > 0 && (len(ts.diffAB) == 0 || len(ts.diffBA) == 0) {
		return 100
	}
	sortScore := Ratio(strings.Join(ts.sortedA, " "), strings.Join(ts.sortedB, " "))
	return maxFloat(sortScore, tokenSetScore(ts))
}

// PartialTokenRatio PartialRatio по отсортированным токенам
func PartialTokenRatio(s1, s2 string) float64 {
	ts := splitTokens(s1, s2)
	// Есть общее слово: частичное совпадение полное
	if len(ts.intersection) > 0 {
		return 100
	}

	result := PartialRatio(strings.Join(ts.sortedA, " "), strings.Join(ts.sortedB, " "))
	if len(ts.sortedA) == len(ts.diffAB) && len(ts.sortedB) == len(ts.diffBA) {
		return result
	}
	return maxFloat(result, PartialRatio(strings.Join(ts.diffAB, " "), strings.Join(ts.diffBA, " ")))
}

// WRatio взвешенная схожесть: выбирает между полным, частичным и токенным
// сравнением в зависимости от соотношения длин строк.
func WRatio(s1, s2 string) float64 {
	len1 := len([]rune(s1))
	len2 := len([]rune(s2))
	if len1 == 0 || len2 == 0 {
		return 0
	}

	lenRatio := float64(len1) / float64(len2)
	if len1 < len2 {
		lenRatio = float64(len2) / float64(len1)
	}

	endRatio := Ratio(s1, s2)
	if lenRatio < 1.5 {
		return maxFloat(endRatio, tokenRatio(s1, s2)*unbaseScale)
	}

	partialScale := 0.9
	if lenRatio >= 8.0 {
		partialScale = 0.6
	}

	endRatio = maxFloat(endRatio, PartialRatio(s1, s2)*partialScale)
	return maxFloat(endRatio, PartialTokenRatio(s1, s2)*unbaseScale*partialScale)
}

// ScoredChoice лучший найденный вариант из списка
type ScoredChoice struct {
	Choice string
	Index  int
	Score  float64
}

// ExtractOne возвращает первый вариант с максимальной оценкой не ниже cutoff.
// При равенстве оценок побеждает вариант, встретившийся раньше.
func ExtractOne(query string, choices []string, scorer Scorer, cutoff float64) (ScoredChoice, bool) {
	best := ScoredChoice{Index: -1}
	found := false
	for i, choice := range choices {
		score := scorer(query, choice)
		if score < cutoff {
			continue
		}
		if !found || score > best.Score {
			best = ScoredChoice{Choice: choice, Index: i, Score: score}
			found = true
			if score == 100 {
				break
			}
		}
	}
	return best, found
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// maxFloat возвращает максимальное из чисел
func maxFloat(first float64, rest ...float64) float64 {
	m := first
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}

// Package fuzzy scores the similarity of two short strings on a 0-100 scale
// using the weighted-ratio family of edit-distance heuristics.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const (
	unbaseScale       = 0.95
	partialScale      = 0.90
	longPartialScale  = 0.60
	partialRatioLimit = 1.5
	longRatioLimit    = 8.0
)

// Process prepares a string for scoring: runes that are not letters, digits
// or underscores become spaces, the result is case-folded and trimmed.
func Process(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, s)
	return strings.TrimSpace(cases.Fold().String(s))
}

// WRatio returns the weighted similarity of a and b. Both inputs are run
// through Process first.
func WRatio(a, b string) int {
	return weightedRatio(Process(a), Process(b))
}

// weightedRatio expects already processed input.
func weightedRatio(p1, p2 string) int {
	if p1 == "" || p2 == "" {
		return 0
	}

	base := float64(Ratio(p1, p2))

	l1, l2 := runeLen(p1), runeLen(p2)
	lenRatio := float64(max(l1, l2)) / float64(min(l1, l2))

	if lenRatio < partialRatioLimit {
		tsor := float64(TokenSortRatio(p1, p2)) * unbaseScale
		tser := float64(TokenSetRatio(p1, p2)) * unbaseScale
		return round(max(base, tsor, tser))
	}

	scale := partialScale
	if lenRatio > longRatioLimit {
		scale = longPartialScale
	}

	partial := float64(PartialRatio(p1, p2)) * scale
	ptsor := float64(partialTokenSortRatio(p1, p2)) * unbaseScale * scale
	ptser := float64(partialTokenSetRatio(p1, p2)) * unbaseScale * scale
	return round(max(base, partial, ptsor, ptser))
}

// Ratio is the insert/delete edit similarity of a and b, as a percentage.
func Ratio(a, b string) int {
	return round(100 * similarity([]rune(a), []rune(b)))
}

// PartialRatio scores the shorter string against the best-matching window of
// the longer one.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		r := similarity(short, long[start:start+len(short)])
		if r > 0.995 {
			return 100
		}
		if r > best {
			best = r
		}
	}
	return round(100 * best)
}

// TokenSortRatio compares the two strings after sorting their tokens.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the shared tokens of a and b against each side's
// remainder, ignoring duplicates and order.
func TokenSetRatio(a, b string) int {
	return tokenSet(a, b, Ratio)
}

func partialTokenSortRatio(a, b string) int {
	return PartialRatio(sortedTokens(a), sortedTokens(b))
}

func partialTokenSetRatio(a, b string) int {
	return tokenSet(a, b, PartialRatio)
}

func tokenSet(a, b string, score func(string, string) int) int {
	set1, set2 := tokenSetOf(a), tokenSetOf(b)

	var inter, diff12, diff21 []string
	for t := range set1 {
		if _, ok := set2[t]; ok {
			inter = append(inter, t)
		} else {
			diff12 = append(diff12, t)
		}
	}
	for t := range set2 {
		if _, ok := set1[t]; !ok {
			diff21 = append(diff21, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(diff12)
	sort.Strings(diff21)

	sect := strings.Join(inter, " ")
	combined12 := strings.TrimSpace(sect + " " + strings.Join(diff12, " "))
	combined21 := strings.TrimSpace(sect + " " + strings.Join(diff21, " "))

	return max(
		score(sect, combined12),
		score(sect, combined21),
		score(combined12, combined21),
	)
}

func tokenSetOf(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// similarity returns 2*LCS/(len(a)+len(b)), or 0 if either side is empty.
func similarity(a, b []rune) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(lcs(a, b)) / float64(len(a)+len(b))
}

// lcs computes the longest common subsequence length with two rolling rows.
func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func runeLen(s string) int {
	return len([]rune(s))
}

// round rounds half to even, so 66.5 scores 66.
func round(f float64) int {
	return int(math.RoundToEven(f))
}

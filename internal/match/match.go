package match

import (
	"slices"
	"strings"
	"unicode"

	"MovieSync/internal/domain"
)

// Normalize lowercases a title for comparison.
func Normalize(title string) string {
	return strings.ToLower(title)
}

// Tokenize splits a title into lowercased word tokens. Splitting is
// locale-agnostic: any run of non-letter, non-digit runes is a boundary, so
// "Terminator 2: Judgment Day" becomes [terminator 2 judgment day].
func Tokenize(title string) []string {
	return strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Movies narrows a candidate list to the best-tier non-empty match set for the
// query and optional year (0 = unconstrained).
//
// Three tiers are computed independently and the first non-empty one wins:
//
//  1. Exact: normalized title equals the normalized query.
//  2. Token run: the query token sequence appears as a contiguous run inside
//     the title token sequence.
//  3. Substring: the normalized query is a literal substring of the title.
//
// Every tier also requires the year to match when one is given. The tier that
// produced the result is not exposed; callers needing the distinction re-test
// membership in the exact set.
func Movies(candidates []domain.Candidate, query string, year int) []domain.Candidate {
	var exact, tokenRun, substring []domain.Candidate

	queryNorm := Normalize(query)
	queryTokens := Tokenize(query)

	for _, c := range candidates {
		if year != 0 && c.Year != year {
			continue
		}

		titleNorm := Normalize(c.Title)
		if titleNorm == queryNorm {
			exact = append(exact, c)
		}
		if containsRun(Tokenize(c.Title), queryTokens) {
			tokenRun = append(tokenRun, c)
		}
		if strings.Contains(titleNorm, queryNorm) {
			substring = append(substring, c)
		}
	}

	if len(exact) > 0 {
		return exact
	}
	if len(tokenRun) > 0 {
		return tokenRun
	}
	return substring
}

// containsRun reports whether sub occurs as a contiguous run inside full.
// A sub longer than full can never match and is rejected up front; the offset
// loop is bounded, so arbitrarily long titles cost no stack depth.
func containsRun(full, sub []string) bool {
	if len(sub) > len(full) {
		return false
	}
	for offset := 0; offset+len(sub) <= len(full); offset++ {
		if slices.Equal(full[offset:offset+len(sub)], sub) {
			return true
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "strings"

// subscriptDigits maps Unicode subscript digits to their ASCII equivalents.
// Chemistry titles write formulas like MoS₂; folding the subscripts lets
// the keyword "MoS2" match them.
var subscriptDigits = map[rune]rune{
	'₀': '0', '₁': '1', '₂': '2', '₃': '3', '₄': '4',
	'₅': '5', '₆': '6', '₇': '7', '₈': '8', '₉': '9',
}

// Normalize canonicalizes text for matching: lowercase, subscript digits
// folded to ASCII. No other transformation is applied.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if d, ok := subscriptDigits[r]; ok {
			return d
		}
		return r
	}, strings.ToLower(text))
}

// Matches reports whether keyword occurs in title, tolerating simple
// plural variants. Both arguments must already be normalized.
//
// The plural handling is a deliberate heuristic, not stemming: a keyword
// ending in "s" also matches its singular in the title ("graphenes"
// matches "graphene"), and a keyword without a trailing "s" also matches
// its plural ("layer" matches "layers"). The reverse directions do not
// apply and irregular plurals are not handled.
func Matches(keyword, title string) bool {
	if strings.Contains(title, keyword) {
		return true
	}
	if strings.HasSuffix(keyword, "s") {
		return strings.Contains(title, strings.TrimSuffix(keyword, "s"))
	}
	return strings.Contains(title, keyword+"s")
}

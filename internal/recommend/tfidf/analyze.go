// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package tfidf

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s\s+`)

func wordNGrams(tokens []string, minN, maxN int) []string {
	if maxN == 1 {
		return tokens
	}

	var out []string
	if minN == 1 {
		out = append(out, tokens...)
		minN = 2
	}
	for n := minN; n <= maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func charNGrams(text string, minN, maxN int) []string {
	runes := []rune(whitespaceRun.ReplaceAllString(text, " "))

	var out []string
	for n := minN; n <= maxN && n <= len(runes); n++ {
		for i := 0; i+n <= len(runes); i++ {
			out = append(out, string(runes[i:i+n]))
		}
	}
	return out
}

// charWBNGrams pads every word with one space on each side and emits
// n-grams that stay inside the padded word. A word shorter than the
// smallest n-gram contributes the padded word once.
func charWBNGrams(text string, minN, maxN int) []string {
	var out []string
	for _, word := range strings.Fields(whitespaceRun.ReplaceAllString(text, " ")) {
		w := []rune(" " + word + " ")
		for n := minN; n <= maxN; n++ {
			offset := 0
			out = append(out, string(w[:min(n, len(w))]))
			for offset+n < len(w) {
				offset++
				out = append(out, string(w[offset:offset+n]))
			}
			if offset == 0 {
				break
			}
		}
	}
	return out
}

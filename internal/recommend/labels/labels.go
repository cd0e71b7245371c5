// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package labels canonicalizes the free-form strings that flow into the
// recommendation engine: clothing types, categories, attribute text and
// garment identities.
//
// All text is folded with Unicode NFKC before comparison so that full-width
// and half-width variants of the same character (common in Japanese product
// data) compare equal.
package labels

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// IdentitySeparator joins the parts of a garment identity.
const IdentitySeparator = "_"

// GarmentID is the canonical identity of a garment: "{type}_{category}_{attribute}".
type GarmentID string

// String implements fmt.Stringer.
func (id GarmentID) String() string {
	return string(id)
}

// NormalizeText folds s with NFKC, collapses whitespace runs into a single
// space, trims and lowercases the result.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// NormalizeKey is NormalizeText with every whitespace character removed.
func NormalizeKey(s string) string {
	s = NormalizeText(s)
	if !strings.ContainsFunc(s, unicode.IsSpace) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// cleanPart prepares one identity component. Case is preserved; the
// separator is stripped so components can never collide across boundaries.
func cleanPart(s string) string {
	s = strings.TrimSpace(norm.NFKC.String(s))
	return strings.ReplaceAll(s, IdentitySeparator, "")
}

// MakeIdentity builds the canonical garment identity for a type, category
// and attribute. The type is rendered with its corpus label.
func MakeIdentity(t ClothingType, category, attribute string) GarmentID {
	parts := [3]string{cleanPart(t.Label()), cleanPart(category), cleanPart(attribute)}
	return GarmentID(strings.Join(parts[:], IdentitySeparator))
}

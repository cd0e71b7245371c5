// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package labels

// ClothingType is one of the five garment slots an outfit is made of.
type ClothingType int

// Clothing types in canonical order. Every per-type output of the engine is
// emitted in this order.
const (
	Outerwear ClothingType = iota + 1
	Tops
	Bottoms
	Shoes
	Accessories
)

var allTypes = []ClothingType{Outerwear, Tops, Bottoms, Shoes, Accessories}

// typeInfo holds the two spellings of a type: the ASCII key used in JSON
// output and the label used by the garment corpus.
var typeInfo = map[ClothingType]struct {
	key   string
	label string
}{
	Outerwear:   {key: "outerwear", label: "アウター"},
	Tops:        {key: "tops", label: "トップス"},
	Bottoms:     {key: "bottoms", label: "ボトムス"},
	Shoes:       {key: "shoes", label: "シューズ"},
	Accessories: {key: "accessories", label: "アクセサリー"},
}

// AllTypes returns the clothing types in canonical order.
// The returned slice is a copy.
func AllTypes() []ClothingType {
	out := make([]ClothingType, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t is one of the five clothing types.
func (t ClothingType) Valid() bool {
	_, ok := typeInfo[t]
	return ok
}

// String returns the ASCII key of the type ("outerwear", "tops", ...).
func (t ClothingType) String() string {
	if info, ok := typeInfo[t]; ok {
		return info.key
	}
	return "unknown"
}

// Label returns the corpus label of the type ("アウター", "トップス", ...).
func (t ClothingType) Label() string {
	if info, ok := typeInfo[t]; ok {
		return info.label
	}
	return ""
}

// ParseLabel maps a corpus label back to its type. Unlike CanonType it
// accepts only the exact label, as found in model artifacts.
func ParseLabel(label string) (ClothingType, bool) {
	for _, t := range allTypes {
		if typeInfo[t].label == label {
			return t, true
		}
	}
	return 0, false
}

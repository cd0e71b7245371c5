// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package recommend

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/hamadayuuki/irodori-api/internal/recommend/algorithms"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

func TestResponse_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{
			name: "empty",
			resp: &Response{},
			want: `{"outfits":[]}`,
		},
		{
			name: "canonical key order",
			resp: &Response{
				Outfits: []algorithms.OutfitView{
					{
						OutfitID:  "o1",
						ImageName: "o1.jpg",
						Slots: map[labels.ClothingType]string{
							labels.Shoes:     "",
							labels.Outerwear: "",
							labels.Tops:      "t1",
						},
					},
				},
				Candidates: map[labels.ClothingType][]labels.GarmentID{
					labels.Accessories: nil,
					labels.Shoes:       {"s1", "s2"},
					labels.Outerwear:   {},
					labels.Tops:        {"t1"},
				},
				Metadata: ResponseMetadata{RequestID: "not serialized"},
			},
			want: `{"outfits":[{"image_name":"o1.jpg","outerwear":"","tops":"t1","shoes":""}],` +
				`"outerwear_candidates":[],"tops_candidates":["t1"],` +
				`"shoes_candidates":["s1","s2"],"accessories_candidates":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCandidateKey(t *testing.T) {
	tests := []struct {
		typ  labels.ClothingType
		want string
	}{
		{labels.Outerwear, "outerwear_candidates"},
		{labels.Tops, "tops_candidates"},
		{labels.Bottoms, "bottoms_candidates"},
		{labels.Shoes, "shoes_candidates"},
		{labels.Accessories, "accessories_candidates"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := CandidateKey(tt.typ); got != tt.want {
				t.Errorf("CandidateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponse_clone(t *testing.T) {
	orig := &Response{
		Outfits: []algorithms.OutfitView{
			{OutfitID: "o1", Slots: map[labels.ClothingType]string{labels.Tops: "t1"}},
		},
		Candidates: map[labels.ClothingType][]labels.GarmentID{labels.Tops: {"t1"}},
	}

	c := orig.clone()
	c.Outfits[0].Slots[labels.Tops] = "changed"
	c.Candidates[labels.Tops][0] = "changed"

	if orig.Outfits[0].Slots[labels.Tops] != "t1" {
		t.Error("clone shares outfit slots")
	}
	if orig.Candidates[labels.Tops][0] != "t1" {
		t.Error("clone shares candidate lists")
	}
}

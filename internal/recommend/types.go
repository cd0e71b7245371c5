// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package recommend

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"

	"github.com/hamadayuuki/irodori-api/internal/recommend/algorithms"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

// Request represents a recommendation request for one described garment.
type Request struct {
	// Segment selects the garment index, e.g. "men" or "women". Empty and
	// unknown segments resolve through the registry policy.
	Segment string `json:"segment" validate:"max=64"`

	// Type is the clothing type in any known spelling ("ボトムス", "pants").
	// Whitespace of any kind is ignored when the type is canonicalized.
	Type string `json:"type" validate:"max=64"`

	// Category is the garment category, e.g. "ワイドパンツ".
	Category string `json:"category" validate:"max=4096"`

	// Text is the free-form description, e.g. "ブラックのワイドパンツ".
	Text string `json:"text" validate:"max=16384"`

	// NumOutfits bounds the outfits returned.
	// Defaults to Config.Limits.DefaultOutfits if zero.
	NumOutfits int `json:"num_outfits,omitempty" validate:"min=0"`

	// NumCandidates bounds each per-type candidate list.
	// Defaults to Config.Limits.DefaultCandidates if zero.
	NumCandidates int `json:"num_candidates,omitempty" validate:"min=0"`

	// MinSimilarity overrides Config.Search.MinSimilarity when set.
	MinSimilarity *float64 `json:"min_similarity,omitempty" validate:"omitempty,gte=0,lte=1"`

	// RequestID is a unique identifier for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty" validate:"max=128,printable"`
}

// Response holds the assembled outfits and the per-type candidate lists.
// Values returned by Engine.Recommend are owned by the caller.
type Response struct {
	// Outfits are ordered by the rank of the similar garment that led to them.
	Outfits []algorithms.OutfitView

	// Candidates holds one list for every clothing type except the query type.
	Candidates map[labels.ClothingType][]labels.GarmentID

	// Metadata is diagnostic only and never serialized.
	Metadata ResponseMetadata `json:"-"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Segment is the segment the request resolved to.
	Segment string `json:"segment"`

	// QueryType is the canonical clothing type of the query.
	QueryType labels.ClothingType `json:"query_type"`

	// ExactMatch is set when the query identity exists in the index.
	ExactMatch bool `json:"exact_match"`

	// SimilarCount is the number of similar garments found.
	SimilarCount int `json:"similar_count"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// CandidateKey is the JSON key of the candidate list for t.
func CandidateKey(t labels.ClothingType) string {
	return t.String() + "_candidates"
}

// MarshalJSON writes
//
//	{"outfits":[{"image_name":"...","<type>":"..."}],"<type>_candidates":[...]}
//
// with type keys in canonical order, so equal responses encode to equal bytes.
func (r *Response) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"outfits":[`)
	for i := range r.Outfits {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeOutfit(&buf, &r.Outfits[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')

	for _, t := range labels.AllTypes() {
		list, ok := r.Candidates[t]
		if !ok {
			continue
		}
		if list == nil {
			list = []labels.GarmentID{}
		}
		buf.WriteByte(',')
		if err := writeField(&buf, CandidateKey(t), list); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeOutfit(buf *bytes.Buffer, v *algorithms.OutfitView) error {
	buf.WriteByte('{')
	if err := writeField(buf, "image_name", v.ImageName); err != nil {
		return err
	}
	for _, t := range v.Types() {
		buf.WriteByte(',')
		if err := writeField(buf, t.String(), v.Slots[t]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeField(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// clone copies everything the caller could mutate.
func (r *Response) clone() *Response {
	out := &Response{
		Outfits:    make([]algorithms.OutfitView, len(r.Outfits)),
		Candidates: make(map[labels.ClothingType][]labels.GarmentID, len(r.Candidates)),
		Metadata:   r.Metadata,
	}
	for i, v := range r.Outfits {
		slots := make(map[labels.ClothingType]string, len(v.Slots))
		for t, s := range v.Slots {
			slots[t] = s
		}
		out.Outfits[i] = algorithms.OutfitView{OutfitID: v.OutfitID, ImageName: v.ImageName, Slots: slots}
	}
	for t, list := range r.Candidates {
		out.Candidates[t] = append([]labels.GarmentID{}, list...)
	}
	return out
}

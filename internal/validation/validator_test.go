// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package validation

import (
	"reflect"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

type queryStruct struct {
	Segment  string `json:"segment" validate:"max=32,printable"`
	Type     string `json:"type" validate:"required,max=64,printable"`
	Text     string `json:"text,omitempty" validate:"max=512"`
	Outfits  int    `json:"num_outfits" validate:"min=0,max=100"`
	Format   string `json:"format" validate:"omitempty,oneof=json text"`
	Internal string `json:"-" validate:"max=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      queryStruct
		wantFields []string
		wantMsg    string
	}{
		{
			name:  "valid",
			input: queryStruct{Segment: "men", Type: "ボトムス", Text: "ブラックのワイドパンツ", Outfits: 3},
		},
		{
			name:       "missing type",
			input:      queryStruct{Segment: "men"},
			wantFields: []string{"type"},
			wantMsg:    "type is required",
		},
		{
			name:       "string too long",
			input:      queryStruct{Type: strings.Repeat("x", 65)},
			wantFields: []string{"type"},
			wantMsg:    "type must be at most 64 characters",
		},
		{
			name:       "numeric bound",
			input:      queryStruct{Type: "tops", Outfits: 101},
			wantFields: []string{"num_outfits"},
			wantMsg:    "num_outfits must be at most 100",
		},
		{
			name:       "control characters",
			input:      queryStruct{Type: "tops\x00"},
			wantFields: []string{"type"},
			wantMsg:    "type must not contain control characters",
		},
		{
			name:       "oneof",
			input:      queryStruct{Type: "tops", Format: "xml"},
			wantFields: []string{"format"},
			wantMsg:    "format must be one of: json text",
		},
		{
			name:       "json dash falls back to go name",
			input:      queryStruct{Type: "tops", Internal: "ab"},
			wantFields: []string{"Internal"},
		},
		{
			name:       "multiple fields in struct order",
			input:      queryStruct{Segment: strings.Repeat("s", 33), Outfits: -1},
			wantFields: []string{"segment", "type", "num_outfits"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Fields(); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got, tt.wantFields)
			}
			if tt.wantMsg != "" && !strings.Contains(verr.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want to contain %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidationError_Accessors(t *testing.T) {
	verr := ValidateStruct(&queryStruct{Type: "tops", Outfits: 500})
	if verr == nil || len(verr.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", verr)
	}
	fe := verr.Errors()[0]
	if fe.Field() != "num_outfits" || fe.Tag() != "max" || fe.Param() != "100" {
		t.Errorf("got field=%s tag=%s param=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	if fe.Value() != 500 {
		t.Errorf("Value() = %v, want 500", fe.Value())
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	var verr RequestValidationError
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
}

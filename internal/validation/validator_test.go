// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package validation

import (
	"strings"
	"testing"
)

type presetBody struct {
	Preset string `json:"preset" validate:"required,oneof=last_12h last_24h last_7d last_30d custom"`
}

type sceneQuery struct {
	Zoom   int `json:"zoom" validate:"mapzoom"`
	Width  int `json:"width" validate:"min=0,max=8192"`
	Height int `json:"height" validate:"min=0,max=8192"`
}

type interactionBody struct {
	Kind string `json:"kind" validate:"required,oneof=dragstart"`
}

type settingsBody struct {
	ServerURL string `json:"server_url" validate:"max=2048"`
	Username  string `json:"username" validate:"max=256"`
	Internal  string `json:"-" validate:"max=1"`
	NoTag     string `validate:"max=2"`
}

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

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"preset", &presetBody{Preset: "last_7d"}},
		{"custom preset", &presetBody{Preset: "custom"}},
		{"scene defaults", &sceneQuery{}},
		{"scene max zoom", &sceneQuery{Zoom: 22, Width: 800, Height: 600}},
		{"interaction", &interactionBody{Kind: "dragstart"}},
		{"settings empty url", &settingsBody{}},
		{"settings url", &settingsBody{ServerURL: "not a url, not checked"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing preset", &presetBody{}, "preset", "required", "preset is required"},
		{"unknown preset", &presetBody{Preset: "last_year"}, "preset", "oneof", "preset must be one of: last_12h last_24h last_7d last_30d custom"},
		{"zoom too high", &sceneQuery{Zoom: 23}, "zoom", "mapzoom", "zoom must be a zoom level between 0 and 22"},
		{"negative zoom", &sceneQuery{Zoom: -1}, "zoom", "mapzoom", "zoom must be a zoom level between 0 and 22"},
		{"width too large", &sceneQuery{Width: 10000}, "width", "max", "width must be at most 8192"},
		{"interaction kind", &interactionBody{Kind: "zoom"}, "kind", "oneof", "kind must be one of: dragstart"},
		{"negative width", &sceneQuery{Width: -1}, "width", "min", "width must be at least 0"},
		{"string max", &settingsBody{Username: strings.Repeat("u", 257)}, "username", "max", "username must be at most 256 characters"},
		{"untagged field", &settingsBody{NoTag: "abc"}, "NoTag", "max", "NoTag must be at most 2 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if len(err) != 1 {
				t.Fatalf("errors = %d, want 1: %v", len(err), err)
			}
			fe := err[0]
			if fe.Field != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field, tt.wantField)
			}
			if fe.Tag != tt.wantTag {
				t.Errorf("tag = %q, want %q", fe.Tag, tt.wantTag)
			}
			if fe.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_JSONDashFieldUsesGoName(t *testing.T) {
	err := ValidateStruct(&settingsBody{Internal: "xx"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err[0].Field; got != "Internal" {
		t.Errorf("field = %q, want Go field name for json:\"-\"", got)
	}
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	err := ValidateStruct(42)
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if got := err[0].Field; got != "unknown" {
		t.Errorf("field = %q, want unknown", got)
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&presetBody{})
	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_FAILED" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if apiErr.Message != "preset is required" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "preset" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&sceneQuery{Zoom: 30, Width: -1, Height: 9000})
	if err == nil {
		t.Fatal("expected validation error")
	}
	apiErr := err.ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("details fields has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("fields = %d, want 3", len(fields))
	}
	for _, name := range []string{"zoom:", "width:", "height:"} {
		if !strings.Contains(apiErr.Message, name) {
			t.Errorf("message %q missing %s", apiErr.Message, name)
		}
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := Errors{}.ToAPIError()
	if apiErr.Code != ErrorCode || apiErr.Message != "Validation failed" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if (Errors{}).Error() != "validation failed" {
		t.Error("empty error message mismatch")
	}
}

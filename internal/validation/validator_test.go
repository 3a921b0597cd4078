// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

type titleRequest struct {
	Title string `validate:"required,notblank,max=20"`
	Count int    `validate:"min=1,max=50"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     titleRequest
		wantField string
		wantMsg   string
	}{
		{name: "valid", input: titleRequest{Title: "Heat", Count: 10}},
		{name: "missing title", input: titleRequest{Count: 10}, wantField: "Title", wantMsg: "Title is required"},
		{name: "blank title", input: titleRequest{Title: "   ", Count: 10}, wantField: "Title", wantMsg: "Title must not be blank"},
		{name: "title too long", input: titleRequest{Title: strings.Repeat("x", 21), Count: 10}, wantField: "Title", wantMsg: "Title must be at most 20 characters"},
		{name: "count too small", input: titleRequest{Title: "Heat", Count: 0}, wantField: "Count", wantMsg: "Count must be at least 1"},
		{name: "count too large", input: titleRequest{Title: "Heat", Count: 51}, wantField: "Count", wantMsg: "Count must be at most 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	t.Parallel()

	if err := ValidateVar("count", 10, "min=5,max=20"); err != nil {
		t.Errorf("ValidateVar(10) = %v, want nil", err)
	}

	err := ValidateVar("count", 4, "min=5,max=20")
	if err == nil {
		t.Fatal("ValidateVar(4) = nil, want error")
	}
	if got := err.Errors()[0].Field(); got != "count" {
		t.Errorf("Field() = %q, want count", got)
	}
	if got := err.Error(); got != "count must be at least 5" {
		t.Errorf("Error() = %q", got)
	}

	if err := ValidateVar("count", 21, "min=5,max=20"); err == nil || err.Errors()[0].Param() != "20" {
		t.Errorf("ValidateVar(21) = %v, want max=20 failure", err)
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&titleRequest{Title: "Heat", Count: 0}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", single.Code)
	}
	if single.Details["field"] != "Count" {
		t.Errorf("Details = %v", single.Details)
	}

	multi := ValidateStruct(&titleRequest{}).ToAPIError()
	if !strings.Contains(multi.Message, "Title: Title is required") || !strings.Contains(multi.Message, "Count: Count must be at least 1") {
		t.Errorf("Message = %q", multi.Message)
	}
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v", multi.Details["fields"])
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}

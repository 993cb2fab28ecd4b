// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package validation

import (
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	// Test that GetValidator returns the same instance
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// registerInput mirrors the member registration payload constraints.
type registerInput struct {
	Name     string `validate:"required,min=2,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=128"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input registerInput
	}{
		{
			name: "all valid fields",
			input: registerInput{
				Name:     "Ada Lovelace",
				Email:    "ada@example.com",
				Password: "correct-horse",
			},
		},
		{
			name: "minimum lengths",
			input: registerInput{
				Name:     "Al",
				Email:    "a@b.co",
				Password: "123456",
			},
		},
		{
			name: "maximum name length",
			input: registerInput{
				Name:     stringOfLen(120),
				Email:    "long@example.com",
				Password: "123456",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     registerInput
		wantField string
		wantTag   string
	}{
		{
			name: "missing required name",
			input: registerInput{
				Name:     "",
				Email:    "ada@example.com",
				Password: "123456",
			},
			wantField: "Name",
			wantTag:   "required",
		},
		{
			name: "name too short",
			input: registerInput{
				Name:     "A",
				Email:    "ada@example.com",
				Password: "123456",
			},
			wantField: "Name",
			wantTag:   "min",
		},
		{
			name: "name too long",
			input: registerInput{
				Name:     stringOfLen(121),
				Email:    "ada@example.com",
				Password: "123456",
			},
			wantField: "Name",
			wantTag:   "max",
		},
		{
			name: "invalid email",
			input: registerInput{
				Name:     "Ada Lovelace",
				Email:    "not-an-email",
				Password: "123456",
			},
			wantField: "Email",
			wantTag:   "email",
		},
		{
			name: "password too short",
			input: registerInput{
				Name:     "Ada Lovelace",
				Email:    "ada@example.com",
				Password: "12345",
			},
			wantField: "Password",
			wantTag:   "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("ValidationErrors should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := registerInput{
		Name:     "", // required field missing
		Email:    "ada@example.com",
		Password: "123456",
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	if apiErr.Message == "" {
		t.Error("Expected non-empty message")
	}

	// Should contain field name in details
	if apiErr.Details == nil {
		t.Error("Expected details to be set")
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := registerInput{
		Name:     "", // required field missing
		Email:    "bad",
		Password: "1",
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	// Details should contain field information
	if apiErr.Details == nil {
		t.Error("Expected details to contain field information")
	}

	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected details to contain 'fields' key")
	}
}

// ===================================================================================================
// Book Payload Validation Tests
// ===================================================================================================

type bookInput struct {
	Title  string  `validate:"required,min=1,max=512"`
	Price  float64 `validate:"gte=0"`
	Stock  int     `validate:"gte=0"`
	Rating int     `validate:"gte=0,lte=5"`
}

func TestBookValidation_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input bookInput
	}{
		{"typical book", bookInput{Title: "A Light in the Attic", Price: 51.77, Stock: 22, Rating: 3}},
		{"free book", bookInput{Title: "Public Domain", Price: 0, Stock: 0, Rating: 0}},
		{"max rating", bookInput{Title: "Five Stars", Price: 9.99, Stock: 1, Rating: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestBookValidation_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     bookInput
		wantField string
	}{
		{"empty title", bookInput{Title: "", Price: 1, Stock: 1, Rating: 1}, "Title"},
		{"negative price", bookInput{Title: "Book", Price: -0.01, Stock: 1, Rating: 1}, "Price"},
		{"negative stock", bookInput{Title: "Book", Price: 1, Stock: -1, Rating: 1}, "Stock"},
		{"rating too high", bookInput{Title: "Book", Price: 1, Stock: 1, Rating: 6}, "Rating"},
		{"rating negative", bookInput{Title: "Book", Price: 1, Stock: 1, Rating: -1}, "Rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatalf("ValidateStruct() should have returned an error for %+v", tt.input)
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected error on field %s, got: %v", tt.wantField, err.Errors())
			}
		})
	}
}

// ===================================================================================================
// Oneof Validation Tests
// ===================================================================================================

type roleStruct struct {
	Role string `validate:"omitempty,oneof=member admin"`
}

func TestOneofValidation_Valid(t *testing.T) {
	tests := []struct {
		name string
		role string
	}{
		{"empty", ""},
		{"member", "member"},
		{"admin", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := roleStruct{Role: tt.role}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for role %q: %v", tt.role, err)
			}
		})
	}
}

func TestOneofValidation_Invalid(t *testing.T) {
	tests := []struct {
		name string
		role string
	}{
		{"invalid role", "superuser"},
		{"partial match", "adminx"},
		{"case sensitive", "Admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := roleStruct{Role: tt.role}
			err := ValidateStruct(&input)
			if err == nil {
				t.Errorf("ValidateStruct() should have returned error for role %q", tt.role)
			}
		})
	}
}

// ===================================================================================================
// WithRequiredStructEnabled Tests
// ===================================================================================================

type NestedStruct struct {
	Inner InnerStruct `validate:"required"`
}

type InnerStruct struct {
	Value string `validate:"required"`
}

func TestNestedStructValidation(t *testing.T) {
	// Valid nested struct
	valid := NestedStruct{
		Inner: InnerStruct{Value: "test"},
	}

	err := ValidateStruct(&valid)
	if err != nil {
		t.Errorf("ValidateStruct() returned unexpected error for valid nested struct: %v", err)
	}

	// Invalid - missing inner value
	invalid := NestedStruct{
		Inner: InnerStruct{Value: ""},
	}

	err = ValidateStruct(&invalid)
	if err == nil {
		t.Error("ValidateStruct() should have returned error for invalid nested struct")
	}
}

// ===================================================================================================
// Integer Range Validation Tests
// ===================================================================================================

type rangeStruct struct {
	TopK     int `validate:"omitempty,gte=1,lte=50"`
	PageSize int `validate:"omitempty,gte=1,lte=100"`
}

func TestRangeValidation_Valid(t *testing.T) {
	tests := []struct {
		name     string
		topK     int
		pageSize int
	}{
		{"zero values skipped", 0, 0},
		{"typical values", 5, 20},
		{"max values", 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := rangeStruct{TopK: tt.topK, PageSize: tt.pageSize}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestRangeValidation_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		topK      int
		pageSize  int
		wantField string
	}{
		{"top_k too high", 51, 20, "TopK"},
		{"top_k negative", -1, 20, "TopK"},
		{"page_size too high", 5, 101, "PageSize"},
		{"page_size negative", 5, -1, "PageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := rangeStruct{TopK: tt.topK, PageSize: tt.pageSize}
			err := ValidateStruct(&input)
			if err == nil {
				t.Errorf("ValidateStruct() should have returned error for top_k=%d, page_size=%d", tt.topK, tt.pageSize)
			}
		})
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	input := registerInput{
		Name:     "",
		Email:    "ada@example.com",
		Password: "1",
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	// Error message should be human-readable
	msg := err.Error()
	if msg == "" {
		t.Error("Error message should not be empty")
	}

	// Should contain field name
	if !containsSubstring(msg, "Name") && !containsSubstring(msg, "Password") {
		t.Errorf("Error message should reference failed field: %s", msg)
	}
}

// helper functions

func stringOfLen(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = 'a'
	}
	return string(buf)
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsSubstringHelper(s, substr))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMemberPasswordHashNeverSerializes(t *testing.T) {
	m := Member{
		ID:           1,
		Name:         "Raihana",
		Email:        "raihana@example.com",
		PasswordHash: "$2a$12$secrethash",
		Role:         RoleAdmin,
		IsActive:     true,
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "secrethash") {
		t.Errorf("password hash leaked into JSON: %s", data)
	}
	if !strings.Contains(string(data), `"email":"raihana@example.com"`) {
		t.Errorf("expected email in JSON, got %s", data)
	}
}

func TestMemberIsAdmin(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{RoleMember, false},
		{"", false},
	}

	for _, tt := range tests {
		m := Member{Role: tt.role}
		if got := m.IsAdmin(); got != tt.want {
			t.Errorf("IsAdmin() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestBookInStock(t *testing.T) {
	tests := []struct {
		stock int
		want  bool
	}{
		{0, false},
		{1, true},
		{19, true},
	}

	for _, tt := range tests {
		b := Book{Stock: tt.stock}
		if got := b.InStock(); got != tt.want {
			t.Errorf("InStock() with stock %d = %v, want %v", tt.stock, got, tt.want)
		}
	}
}

func TestAPIResponseShape(t *testing.T) {
	t.Run("error response omits data", func(t *testing.T) {
		resp := APIResponse{
			Success: false,
			Error:   &APIError{Code: "NOT_FOUND", Message: "book 99 not found"},
		}
		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if strings.Contains(string(data), `"data"`) {
			t.Errorf("error response should omit data field: %s", data)
		}
		if !strings.Contains(string(data), `"code":"NOT_FOUND"`) {
			t.Errorf("expected error code in JSON, got %s", data)
		}
	})

	t.Run("success response omits error", func(t *testing.T) {
		resp := APIResponse{Success: true, Data: map[string]int{"count": 3}}
		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if strings.Contains(string(data), `"error"`) {
			t.Errorf("success response should omit error field: %s", data)
		}
	})
}

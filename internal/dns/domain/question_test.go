package domain

import (
	"testing"
)

func TestNewQuestion(t *testing.T) {
	tests := []struct {
		name        string
		queryName   string
		rrtype      RRType
		class       RRClass
		expectError bool
	}{
		{
			name:      "valid A record query",
			queryName: "example.com.",
			rrtype:    RRTypeA,
			class:     RRClassIN,
		},
		{
			name:      "valid MX record query",
			queryName: "Mail.Example.com.",
			rrtype:    RRTypeMX,
			class:     RRClassIN,
		},
		{
			name:        "empty name",
			queryName:   "",
			rrtype:      RRTypeA,
			class:       RRClassIN,
			expectError: true,
		},
		{
			name:        "unknown type",
			queryName:   "example.com.",
			rrtype:      28,
			class:       RRClassIN,
			expectError: true,
		},
		{
			name:        "unknown class",
			queryName:   "example.com.",
			rrtype:      RRTypeA,
			class:       255,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuestion(tt.queryName, tt.rrtype, tt.class)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Name != tt.queryName {
				t.Errorf("Name = %q, want %q (case must be preserved)", q.Name, tt.queryName)
			}
			if q.Type != tt.rrtype || q.Class != tt.class {
				t.Errorf("got %v/%v, want %v/%v", q.Type, q.Class, tt.rrtype, tt.class)
			}
		})
	}
}

func TestQuestion_String(t *testing.T) {
	q := Question{Name: "example.com.", Type: RRTypeA, Class: RRClassIN}
	if got := q.String(); got != "example.com. IN A" {
		t.Errorf("String() = %q", got)
	}
}

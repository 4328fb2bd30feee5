package domain

import (
	"testing"
)

func TestNewResourceRecord(t *testing.T) {
	tests := []struct {
		name        string
		recordName  string
		data        []byte
		expectError bool
	}{
		{
			name:       "valid A record",
			recordName: "example.com.",
			data:       []byte{192, 0, 2, 1},
		},
		{
			name:       "empty rdata is allowed",
			recordName: "example.com.",
			data:       nil,
		},
		{
			name:        "empty name",
			recordName:  "",
			data:        []byte{1, 2, 3, 4},
			expectError: true,
		},
		{
			name:        "oversized rdata",
			recordName:  "example.com.",
			data:        make([]byte, 0x10000),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, err := NewResourceRecord(tt.recordName, RRTypeA, RRClassIN, 300, tt.data)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rr.Name != tt.recordName || rr.TTL != 300 {
				t.Errorf("unexpected record: %+v", rr)
			}
		})
	}
}

package wire

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr error
	}{
		{
			name:  "fully qualified",
			input: "example.com.",
			want:  []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0},
		},
		{
			name:  "without trailing dot",
			input: "example.com",
			want:  []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0},
		},
		{
			name:  "case preserved",
			input: "WwW.Example.",
			want:  []byte{3, 'W', 'w', 'W', 7, 'E', 'x', 'a', 'm', 'p', 'l', 'e', 0},
		},
		{name: "root", input: ".", want: []byte{0}},
		{name: "empty", input: "", want: []byte{0}},
		{
			name:  "63 byte label",
			input: strings.Repeat("a", 63) + ".com.",
			want:  append(append([]byte{63}, []byte(strings.Repeat("a", 63))...), 3, 'c', 'o', 'm', 0),
		},
		{name: "64 byte label", input: strings.Repeat("a", 64) + ".com.", wantErr: ErrLabelTooLong},
		{name: "empty interior label", input: "a..com.", wantErr: ErrEmptyLabel},
		{name: "double trailing dot", input: "a.com..", wantErr: ErrEmptyLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeName(tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got error %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeName(t *testing.T) {
	data := []byte{0xAA, 0xBB, 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0, 0xCC}

	name, n, err := DecodeName(data, 2)
	require.NoError(t, err)
	assert.Equal(t, "example.com.", name)
	assert.Equal(t, 13, n)

	name, n, err = DecodeName([]byte{0}, 0)
	require.NoError(t, err)
	assert.Equal(t, ".", name)
	assert.Equal(t, 1, n)
}

func TestDecodeName_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		offset int
	}{
		{name: "offset at end", data: []byte{3, 'c', 'o', 'm', 0}, offset: 5},
		{name: "empty buffer", data: []byte{}, offset: 0},
		{name: "label overruns buffer", data: []byte{7, 'e', 'x', 'a'}, offset: 0},
		{name: "missing terminator", data: []byte{3, 'c', 'o', 'm'}, offset: 0},
		{name: "compression pointer", data: []byte{0xC0, 0x0C}, offset: 0},
		{name: "label length above 63", data: append([]byte{64}, make([]byte, 65)...), offset: 0},
		{name: "negative offset", data: []byte{0}, offset: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeName(tt.data, tt.offset)
			assert.True(t, errors.Is(err, ErrMalformedName), "got error %v", err)
		})
	}
}

func TestName_RoundTrip(t *testing.T) {
	for _, input := range []string{"example.com.", "example.com", "a.b.c.d.e.", "Mixed.CASE.org.", "."} {
		encoded, err := EncodeName(input)
		require.NoError(t, err)

		decoded, n, err := DecodeName(encoded, 0)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), n)

		want := input
		if !strings.HasSuffix(want, ".") {
			want += "."
		}
		assert.Equal(t, want, decoded)
	}
}

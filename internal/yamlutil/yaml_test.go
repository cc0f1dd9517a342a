package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Input validation and parsing
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	var s sample
	if err := Unmarshal([]byte("name: a\ncount: 2\n"), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Name != "a" || s.Count != 2 {
		t.Errorf("decoded = %+v", s)
	}
}

func TestUnmarshal_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "empty data", data: nil, dest: &sample{}, wantErr: ErrNilData},
		{name: "nil destination", data: []byte("a: 1"), dest: nil, wantErr: ErrNilDestination},
		{
			name:    "oversized input",
			data:    []byte("name: " + strings.Repeat("x", MaxInputSize)),
			dest:    &sample{},
			wantErr: ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Unmarshal(tt.data, tt.dest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown field rejection
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: a\n"), &s); err != nil {
		t.Errorf("UnmarshalStrict() on known fields error = %v", err)
	}

	if err := UnmarshalStrict([]byte("unknown: 1\n"), &s); err == nil {
		t.Error("UnmarshalStrict() accepted unknown field")
	}
}

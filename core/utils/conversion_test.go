package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "abc", "abc"},
		{"Bytes", []byte("xyz"), "xyz"},
		{"Int", 42, "42"},
		{"Int64", int64(-7), "-7"},
		{"Float Whole", 1.0, "1"},
		{"Float", 9.5, "9.5"},
		{"Float Large", 1e21, "1000000000000000000000"},
		{"Float32", float32(0.25), "0.25"},
		{"Bool", true, "true"},
		{"Time", ts, "2024-03-01T12:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

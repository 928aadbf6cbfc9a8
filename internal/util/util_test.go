package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"hello"`, "hello"},
		{`hello`, "hello"},
		{`""`, ""},
		{`"a"b"`, `a"b`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimQuotes(tt.in))
	}
}

func TestFixEscapeQuotes(t *testing.T) {
	assert.Equal(t, `say "hi"`, FixEscapeQuotes(`say ""hi""`))
	assert.Equal(t, "plain", FixEscapeQuotes("plain"))
}

func TestCleanArg(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanArg(`"{""a"":1}"`))
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"already normal", "46EEK572", "46EEK572"},
		{"lowercase", "46eek572", "46EEK572"},
		{"inner and outer spaces", "  46 EEK 572 ", "46EEK572"},
		{"tabs", "\tFPV\t01", "FPV01"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePlate(tt.in))
		})
	}
}

func TestJoaat(t *testing.T) {
	tests := []struct {
		name string
		want uint32
	}{
		{"adder", 0xB779A091},
		{"ADDER", 0xB779A091},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Joaat(tt.name))
		})
	}
}

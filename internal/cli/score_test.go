package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecometer/ecometer/internal/engine/material"
)

func TestParseComposition(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []material.CompositionEntry
		wantErr bool
	}{
		{
			name: "empty",
			in:   "",
		},
		{
			name: "fractions",
			in:   "cotton:0.59,polyester:0.41",
			want: []material.CompositionEntry{
				{Material: "cotton", Fraction: 0.59},
				{Material: "polyester", Fraction: 0.41},
			},
		},
		{
			name: "no fractions",
			in:   "wool,leather",
			want: []material.CompositionEntry{
				{Material: "wool"},
				{Material: "leather"},
			},
		},
		{
			name: "mixed and padded",
			in:   " cotton : 0.8 , elastane ",
			want: []material.CompositionEntry{
				{Material: "cotton", Fraction: 0.8},
				{Material: "elastane"},
			},
		},
		{
			name:    "fraction not a number",
			in:      "cotton:lots",
			wantErr: true,
		},
		{
			name:    "fraction above one",
			in:      "cotton:1.2",
			wantErr: true,
		},
		{
			name:    "negative fraction",
			in:      "cotton:-0.1",
			wantErr: true,
		},
		{
			name:    "missing name",
			in:      ":0.5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseComposition(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

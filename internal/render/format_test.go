package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "0", FormatNumber(0))
}

func TestFormatCO2(t *testing.T) {
	tests := []struct {
		kg   float64
		want string
	}{
		{kg: 0.042, want: "42 g CO2e"},
		{kg: 0.9995, want: "1000 g CO2e"},
		{kg: 1, want: "1.0 kg CO2e"},
		{kg: 17.96, want: "18.0 kg CO2e"},
		{kg: 999.94, want: "999.9 kg CO2e"},
		{kg: 1500, want: "1,500 kg CO2e"},
		{kg: 1234567, want: "1,234,567 kg CO2e"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCO2(tt.kg), "kg %v", tt.kg)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{km: 0, want: "0.0 km"},
		{km: 344.3, want: "344.3 km"},
		{km: 999.9, want: "999.9 km"},
		{km: 9528.4, want: "9,528 km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.km), "km %v", tt.km)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{v: 0, want: "0%"},
		{v: 0.305, want: "31%"},
		{v: 0.8, want: "80%"},
		{v: 1, want: "100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPercent(tt.v), "v %v", tt.v)
	}
}

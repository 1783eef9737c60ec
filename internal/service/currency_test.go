package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Luciferhub44/clean-emp/internal/service"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"1", "$1.00"},
		{"123.4", "$123.40"},
		{"1234.56", "$1,234.56"},
		{"12345.678", "$12,345.68"},
		{"1000000", "$1,000,000.00"},
		{"-1234.56", "-$1,234.56"},
		{"-0.5", "-$0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := service.FormatCurrency(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

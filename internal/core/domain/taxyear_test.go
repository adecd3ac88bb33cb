package domain_test

import (
	"testing"

	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func bracket(lower float64, upper *float64, rate float64) domain.TaxBracket {
	b := domain.TaxBracket{
		Lower: decimal.NewFromFloat(lower),
		Rate:  decimal.NewFromFloat(rate),
	}
	if upper != nil {
		b.Upper = decimalPtr(decimal.NewFromFloat(*upper))
	}
	return b
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []domain.TaxBracket
		wantErr  error
	}{
		{
			name:     "empty schedule is valid",
			brackets: nil,
			wantErr:  nil,
		},
		{
			name: "single unbounded bracket",
			brackets: []domain.TaxBracket{
				bracket(0, nil, 0.10),
			},
			wantErr: nil,
		},
		{
			name: "contiguous three-band schedule",
			brackets: []domain.TaxBracket{
				bracket(0, floatPtr(10000), 0.10),
				bracket(10000, floatPtr(40000), 0.12),
				bracket(40000, nil, 0.22),
			},
			wantErr: nil,
		},
		{
			name: "gap between brackets",
			brackets: []domain.TaxBracket{
				bracket(0, floatPtr(10000), 0.10),
				bracket(15000, nil, 0.12),
			},
			wantErr: domain.ErrBracketGap,
		},
		{
			name: "bounded top bracket",
			brackets: []domain.TaxBracket{
				bracket(0, floatPtr(10000), 0.10),
				bracket(10000, floatPtr(40000), 0.12),
			},
			wantErr: domain.ErrUnboundedTopBracket,
		},
		{
			name: "unbounded middle bracket",
			brackets: []domain.TaxBracket{
				bracket(0, nil, 0.10),
				bracket(10000, nil, 0.12),
			},
			wantErr: domain.ErrUnboundedTopBracket,
		},
		{
			name: "inverted bracket bounds",
			brackets: []domain.TaxBracket{
				bracket(10000, floatPtr(10000), 0.10),
				bracket(10000, nil, 0.12),
			},
			wantErr: domain.ErrBracketGap,
		},
		{
			name: "negative rate",
			brackets: []domain.TaxBracket{
				bracket(0, nil, -0.10),
			},
			wantErr: domain.ErrNegativeBracketRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateBrackets(tt.brackets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPayFrequency_PeriodsPerYear(t *testing.T) {
	assert.Equal(t, 52, domain.FrequencyWeekly.PeriodsPerYear())
	assert.Equal(t, 26, domain.FrequencyBiweekly.PeriodsPerYear())
	assert.Equal(t, 12, domain.FrequencyMonthly.PeriodsPerYear())
	assert.Equal(t, 4, domain.FrequencyQuarterly.PeriodsPerYear())
	assert.Equal(t, 0, domain.PayFrequency("DAILY").PeriodsPerYear())
}

package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Currency
		wantErr bool
	}{
		{name: "upper", in: "EUR", want: CurrencyEUR},
		{name: "lower with spaces", in: " ron ", want: CurrencyRON},
		{name: "unknown", in: "BTC", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecurrence(t *testing.T) {
	r, err := ParseRecurrence("monthly")
	assert.NoError(t, err)
	assert.Equal(t, RecurrenceMonthly, r)

	_, err = ParseRecurrence("DAILY")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseStage(t *testing.T) {
	for _, s := range []string{"TO_DO", "IN_PROGRESS", "DONE", "done"} {
		_, err := ParseStage(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"", "BLOCKED", "TODO"} {
		_, err := ParseStage(s)
		assert.ErrorIs(t, err, ErrValidation, s)
	}
}

func TestBalance(t *testing.T) {
	value := decimal.NewFromInt(1200)
	got := Balance(value, []decimal.Decimal{decimal.NewFromInt(400), decimal.RequireFromString("150.50")})
	assert.True(t, got.Equal(decimal.RequireFromString("649.50")), got.String())

	assert.True(t, Balance(value, nil).Equal(value))
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("claim: %w", Forbiddenf("not a member of group %d", 5))

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, "not a member of group 5", MessageOf(err))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "internal server error", MessageOf(errors.New("boom")))
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "0.01"},
		{in: "1200"},
		{in: "45.9"},
		{in: "9999999999.99"},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "0.001", wantErr: true},
		{in: "10.005", wantErr: true},
		{in: "10000000000", wantErr: true},
		{in: "123456789012345.678", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := CheckAmount("value", decimal.RequireFromString(tt.in))
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

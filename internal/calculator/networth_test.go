package calculator

import (
	"testing"

	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate_AllBoundaries(t *testing.T) {
	tests := []struct {
		value string
		label string
	}{
		{"2000000", RatingWizard},
		{"1000000", RatingWizard},
		{"999999.99", RatingSecure},
		{"500000", RatingSecure},
		{"100000", RatingStable},
		{"99999.99", RatingBreaking},
		{"0", RatingBreaking},
		{"-0.01", RatingInDebt},
		{"-50000", RatingInDebt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, Rate(d(tt.value)), "value %s", tt.value)
	}
}

func TestCalculateNetWorth_AllLedgers(t *testing.T) {
	p := model.NewPlayer("Alex", 30, d("500"), 650)
	p.BankAccount = model.NewBankAccount(model.Checking)
	require.NoError(t, p.BankAccount.Deposit(d("2000"), 0))
	p.CreditCard = model.NewCreditCard(d("5000"))
	require.NoError(t, p.CreditCard.Charge(d("300"), 0))
	loan, err := NewLoan(model.AutoLoan, d("10000"), d("0.05"), 5)
	require.NoError(t, err)
	p.Loans = append(p.Loans, loan)
	p.Assets = append(p.Assets, model.NewAsset(model.Car, "Car", d("15000")))

	nw := CalculateNetWorth(p)

	assert.True(t, nw.Value.Equal(d("7200")), "got %s", nw.Value)
	assert.Equal(t, RatingBreaking, nw.Rating)
}

func TestCalculateNetWorth_EmptyPlayerBreaksEven(t *testing.T) {
	p := model.NewPlayer("Alex", 16, decimal.Zero, 650)
	nw := CalculateNetWorth(p)
	assert.True(t, nw.Value.IsZero())
	assert.Equal(t, RatingBreaking, nw.Rating)
}

func TestCalculateNetWorth_Idempotent(t *testing.T) {
	p := model.NewPlayer("Alex", 40, d("123.45"), 700)
	p.Assets = append(p.Assets, model.NewAsset(model.House, "Condo", d("200000")))
	first := CalculateNetWorth(p)
	second := CalculateNetWorth(p)
	assert.True(t, first.Value.Equal(second.Value))
	assert.Equal(t, first.Rating, second.Rating)
}

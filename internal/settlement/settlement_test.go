package settlement_test

import (
	"moveout/internal/settlement"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func cents(euros float64) domain.Money {
	return domain.MoneyFromFloat(euros)
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name string
		in   settlement.Input
		want domain.Settlement
	}{
		{
			name: "no deductions returns full deposit",
			in:   settlement.Input{Deposit: cents(1500)},
			want: domain.Settlement{
				TotalDeductions: 0,
				AmountToReturn:  cents(1500),
				AmountToPay:     0,
			},
		},
		{
			name: "deductions exceed deposit",
			in: settlement.Input{
				Deposit:         cents(1000),
				UnpaidRent:      cents(800),
				RepairCosts:     cents(500),
				CleaningCosts:   cents(200),
				OtherDeductions: cents(100),
			},
			want: domain.Settlement{
				TotalDeductions: cents(1600),
				AmountToReturn:  0,
				AmountToPay:     cents(600),
			},
		},
		{
			name: "deductions exactly equal deposit",
			in: settlement.Input{
				Deposit:       cents(1000),
				UnpaidRent:    cents(700),
				CleaningCosts: cents(300),
			},
			want: domain.Settlement{
				TotalDeductions: cents(1000),
				AmountToReturn:  0,
				AmountToPay:     0,
			},
		},
		{
			name: "partial deduction",
			in: settlement.Input{
				Deposit:     cents(1200),
				RepairCosts: cents(450.50),
			},
			want: domain.Settlement{
				TotalDeductions: cents(450.50),
				AmountToReturn:  cents(749.50),
				AmountToPay:     0,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := settlement.Compute(tc.in)
			require.Equal(t, tc.want, got)

			// conservation: return - pay == deposit - total, never both positive
			require.Equal(t, tc.in.Deposit-got.TotalDeductions, got.AmountToReturn-got.AmountToPay)
			require.True(t, got.AmountToReturn == 0 || got.AmountToPay == 0)
		})
	}
}

func TestValidateRejectsNegativeAmounts(t *testing.T) {
	in := settlement.Input{Deposit: cents(1000), UnpaidRent: -1}
	err := in.Validate()
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	require.NoError(t, settlement.Input{Deposit: cents(1000)}.Validate())
}

package notice_test

import (
	"moveout/internal/notice"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	cases := []struct {
		name      string
		reason    domain.TerminationReason
		tightZone bool
		want      int
	}{
		{name: "standard outside tight zone", reason: domain.ReasonStandard, want: 3},
		{name: "standard inside tight zone", reason: domain.ReasonStandard, tightZone: true, want: 1},
		{name: "job loss", reason: domain.ReasonJobLoss, want: 1},
		{name: "job transfer", reason: domain.ReasonJobTransfer, want: 1},
		{name: "new job", reason: domain.ReasonNewJob, want: 1},
		{name: "health", reason: domain.ReasonHealth, want: 1},
		{name: "RSA recipient", reason: domain.ReasonBenefitRSA, want: 1},
		{name: "AAH recipient", reason: domain.ReasonBenefitAAH, want: 1},
		{name: "first rental", reason: domain.ReasonFirstRental, want: 1},
		{name: "reduced reason inside tight zone", reason: domain.ReasonJobLoss, tightZone: true, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, notice.Period(tc.reason, tc.tightZone))
		})
	}
}

func TestParseReason(t *testing.T) {
	r, err := notice.ParseReason("job_loss")
	require.NoError(t, err)
	require.Equal(t, domain.ReasonJobLoss, r)

	r, err = notice.ParseReason("standard")
	require.NoError(t, err)
	require.Equal(t, domain.ReasonStandard, r)

	_, err = notice.ParseReason("because")
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = notice.ParseReason("")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestLegalDeadline(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		departure  time.Time
		conformant bool
		want       time.Time
	}{
		{name: "conformant adds one month", departure: day(2024, time.June, 15), conformant: true, want: day(2024, time.July, 15)},
		{name: "non-conformant adds two months", departure: day(2024, time.June, 15), want: day(2024, time.August, 15)},
		{name: "year rollover", departure: day(2024, time.November, 15), want: day(2025, time.January, 15)},
		{name: "day overflow normalizes", departure: day(2025, time.January, 31), conformant: true, want: day(2025, time.March, 3)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, notice.LegalDeadline(tc.departure, tc.conformant))
		})
	}
}

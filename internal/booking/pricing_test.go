package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestRentalDaysInclusive(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int64
	}{
		{"single day", "2024-06-01", "2024-06-01", 1},
		{"three days", "2024-06-01", "2024-06-03", 3},
		{"full week", "2024-06-01", "2024-06-07", 7},
		{"across month boundary", "2024-06-29", "2024-07-02", 4},
		{"across year boundary", "2024-12-30", "2025-01-02", 4},
		{"leap february", "2024-02-28", "2024-03-01", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RentalDays(date(t, tc.start), date(t, tc.end))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRentalDaysInvertedRange(t *testing.T) {
	_, err := RentalDays(date(t, "2024-06-03"), date(t, "2024-06-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2024-6-1", "01-06-2024", "2024-13-01", "not a date"} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDateRange, "input %q", s)
	}
}

func TestRentalDaysStr(t *testing.T) {
	got, err := rentalDaysStr("2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	_, err = rentalDaysStr("2024-06-03", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = rentalDaysStr("junk", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	cases := []struct {
		year      int
		month     time.Month
		day       int
		expectUtc time.Time
	}{
		// CEST, UTC+2
		{2024, time.September, 5, time.Date(2024, time.September, 4, 22, 0, 0, 0, time.UTC)},
		// CET, UTC+1
		{2024, time.December, 2, time.Date(2024, time.December, 1, 23, 0, 0, 0, time.UTC)},
	}

	for _, test := range cases {
		d := Date(test.year, test.month, test.day)
		require.Equal(t, test.expectUtc, d.UTC())
		require.Equal(t, Location, d.Location())
	}
}

func TestNow(t *testing.T) {
	require.Equal(t, "Europe/Berlin", Now().Location().String())
}

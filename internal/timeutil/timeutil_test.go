package timeutil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationOrDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOrDefault("", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOrDefault("  ", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOrDefault("later", time.Minute))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 30*time.Second, Seconds(30))
	assert.Equal(t, time.Duration(0), Seconds(0))
	assert.Equal(t, -2*time.Second, Seconds(-2))
}

func TestSeconds_Saturates(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int cannot hold counts beyond the duration range")
	}
	var limit int64 = math.MaxInt64 / int64(time.Second)
	cases := []struct {
		n    int64
		want time.Duration
	}{
		{n: limit, want: time.Duration(limit) * time.Second},
		{n: limit + 1, want: time.Duration(math.MaxInt64)},
		{n: 10000000000, want: time.Duration(math.MaxInt64)},
		{n: 18446744074, want: time.Duration(math.MaxInt64)},
		{n: math.MaxInt64, want: time.Duration(math.MaxInt64)},
		{n: -limit - 1, want: time.Duration(math.MinInt64)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Seconds(int(tc.n)), "n=%d", tc.n)
	}
}

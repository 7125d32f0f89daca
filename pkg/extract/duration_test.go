package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	d := ParseISODuration("PT30M")
	require.NotNil(t, d)
	assert.Equal(t, 30*time.Minute, *d)

	d = ParseISODuration("PT1H30M")
	require.NotNil(t, d)
	assert.Equal(t, 90*time.Minute, *d)

	d = ParseISODuration("PT0M")
	require.NotNil(t, d)
	assert.Equal(t, time.Duration(0), *d)
}

func TestParseISODuration_YearPrefixCollapsed(t *testing.T) {
	// Some sites pad totalTime with year/month fields; the prefix collapses
	// onto the day component instead of failing.
	d := ParseISODuration("P1Y2M3DT0H0M")
	require.NotNil(t, d)
	assert.Equal(t, 24*time.Hour, *d)
}

func TestParseISODuration_Invalid(t *testing.T) {
	assert.Nil(t, ParseISODuration("30 minuter"))
	assert.Nil(t, ParseISODuration(""))
}

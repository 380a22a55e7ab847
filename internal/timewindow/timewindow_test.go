package timewindow

import (
	"testing"

	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	w, err := Parse("LU 08:00-10:00")
	require.NoError(t, err)
	assert.Equal(t, sectionset.Mon, w.Day)
	assert.Equal(t, 480, w.StartMinute)
	assert.Equal(t, 600, w.EndMinute)
}

func TestAllWithin(t *testing.T) {
	windows, malformed := ParseAll([]string{"LU 08:00-12:00"})
	assert.Empty(t, malformed)
	meetings := []sectionset.Meeting{{Day: sectionset.Mon, StartMinute: 480, EndMinute: 570}}
	assert.True(t, AllWithin(meetings, windows))

	outside := []sectionset.Meeting{{Day: sectionset.Mon, StartMinute: 700, EndMinute: 800}}
	assert.False(t, AllWithin(outside, windows))
}

func TestParseAllSkipsMalformed(t *testing.T) {
	windows, malformed := ParseAll([]string{"LU 08:00-10:00", "garbage"})
	assert.Len(t, windows, 1)
	assert.Equal(t, []string{"garbage"}, malformed)
}

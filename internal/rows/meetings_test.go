package rows

import (
	"testing"

	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/stretchr/testify/assert"
)

func TestParseMeetingsSingleDay(t *testing.T) {
	m, err := ParseMeetings("LU 08:00 - 09:30")
	assert.NoError(t, err)
	assert.Equal(t, []sectionset.Meeting{{Day: sectionset.Mon, StartMinute: 480, EndMinute: 570}}, m)
}

func TestParseMeetingsCartesianProduct(t *testing.T) {
	m, err := ParseMeetings("LU MI 08:00 - 09:30")
	assert.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, sectionset.Mon, m[0].Day)
	assert.Equal(t, sectionset.Wed, m[1].Day)
	assert.Equal(t, 480, m[0].StartMinute)
	assert.Equal(t, 570, m[0].EndMinute)
}

func TestParseMeetingsMultiplePatterns(t *testing.T) {
	m, err := ParseMeetings("LU MI 08:00 - 09:30 VI 10:00 - 11:00")
	assert.NoError(t, err)
	assert.Len(t, m, 3)
}

func TestParseMeetingsRejectsUnknownDay(t *testing.T) {
	_, err := ParseMeetings("XX 08:00 - 09:30")
	assert.Error(t, err)
}

func TestParseMeetingsRejectsBadOrder(t *testing.T) {
	_, err := ParseMeetings("LU 09:30 - 08:00")
	assert.Error(t, err)
}

package rows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseApprovalPercentFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"78%", 78},
		{"78,5", 78.5},
		{"78.5", 78.5},
		{" 100% ", 100},
	}
	for _, c := range cases {
		v, ok := ParseApprovalPercent(c.raw)
		assert.True(t, ok, c.raw)
		assert.InDelta(t, c.want, v, 0.0001, c.raw)
	}
}

func TestParseApprovalPercentUnknown(t *testing.T) {
	_, ok := ParseApprovalPercent("")
	assert.False(t, ok)
	_, ok = ParseApprovalPercent("n/a")
	assert.False(t, ok)
}

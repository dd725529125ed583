package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeBuckets(t *testing.T) {
	testCases := []struct {
		name     string
		score    float64
		max      float64
		expected string
	}{
		{"full score", 100, 100, "A"},
		{"exactly 80 percent", 80, 100, "A"},
		{"just under 80 percent", 79.9999, 100, "B"},
		{"exactly 60 percent", 60, 100, "B"},
		{"just under 60 percent", 59.9999, 100, "C"},
		{"exactly 40 percent", 40, 100, "C"},
		{"just under 40 percent", 39.9999, 100, "D"},
		{"zero", 0, 100, "D"},
		{"non-100 max", 24, 30, "A"},
		{"boundary on non-100 max", 18, 30, "B"},
		{"zero max", 10, 0, "D"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Grade(tc.score, tc.max))
		})
	}
}

func TestGradeBoundaryRatios(t *testing.T) {
	// 0.60 exactly is a B, a hair below is a C.
	assert.Equal(t, "B", Grade(0.60, 1))
	assert.Equal(t, "C", Grade(0.599999, 1))
}

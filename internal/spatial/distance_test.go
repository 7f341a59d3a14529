package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// 1 度经线约 111.19 公里
	d := HaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 100)

	assert.Zero(t, HaversineDistance(30, 120, 30, 120))

	// 距离对称
	assert.InDelta(t,
		HaversineDistance(39.9, 116.4, 31.2, 121.5),
		HaversineDistance(31.2, 121.5, 39.9, 116.4),
		0.001)
}

func TestSpanKm(t *testing.T) {
	span := SpanKm(0, 0, 1, 1)
	assert.InDelta(t, 157.2, span, 0.5)

	// 跨半球的范围远超任何合理查询
	assert.Greater(t, SpanKm(-50, -100, 50, 100), 2000.0)
}

package spatial

import "fmt"

// 时间轴的分裂阈值（与平台八叉树的构建参数一致）
const (
	timeSplit     = 108000.0
	timeSplitHigh = 162000.0
	timeSplitLow  = 54000.0
)

// MortonParts encodes a (lat, lon, time) point into the platform's
// two-level Morton code. Each axis contributes one bit per level and the
// bits interleave lat-lon-time, giving two octal digits; the first is
// shifted down by one to match the platform's node numbering.
func MortonParts(lat, lon, t float64) (int, int) {
	latBit1 := boolBit(lat >= 0)
	midLat := -45.0
	if latBit1 == 1 {
		midLat = 45.0
	}
	latBit2 := boolBit(lat >= midLat)

	lonBit1 := boolBit(lon >= 0)
	midLon := -90.0
	if lonBit1 == 1 {
		midLon = 90.0
	}
	lonBit2 := boolBit(lon >= midLon)

	timeBit1 := boolBit(t >= timeSplit)
	midTime := timeSplitLow
	if timeBit1 == 1 {
		midTime = timeSplitHigh
	}
	timeBit2 := boolBit(t >= midTime)

	part1 := latBit1<<2 | lonBit1<<1 | timeBit1
	part2 := latBit2<<2 | lonBit2<<1 | timeBit2

	return part1 - 1, part2
}

// MortonCode renders the code in the platform's node-id form "p1,p2"
func MortonCode(lat, lon, t float64) string {
	p1, p2 := MortonParts(lat, lon, t)
	return fmt.Sprintf("%d,%d", p1, p2)
}

// MortonRange derives a Morton filter from a point range by encoding its
// two corners
func MortonRange(latMin, lonMin, timeMin, latMax, lonMax, timeMax float64) (string, string) {
	return MortonCode(latMin, lonMin, timeMin), MortonCode(latMax, lonMax, timeMax)
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

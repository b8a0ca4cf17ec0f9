package spatial

import "strings"

// Base32 alphabet used by geohash
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// Approximate cell widths at the equator in meters, indexed by precision
var geohashCellSizes = [...]float64{
	0, 5000000, 625000, 123000, 19500, 3900, 610, 120, 19, 3.7, 0.6, 0.12, 0.019,
}

// clampPrecision bounds a geohash precision to 1-12
func clampPrecision(precision int) int {
	if precision < 1 {
		return 1
	}
	if precision > 12 {
		return 12
	}
	return precision
}

// EncodeGeohash encodes latitude and longitude into a geohash string
// precision: number of characters in the geohash (1-12)
func EncodeGeohash(lat, lon float64, precision int) string {
	precision = clampPrecision(precision)

	latRange := [2]float64{-90.0, 90.0}
	lonRange := [2]float64{-180.0, 180.0}

	var sb strings.Builder
	sb.Grow(precision)

	bits, ch := 0, 0
	even := true
	for sb.Len() < precision {
		if even {
			mid := (lonRange[0] + lonRange[1]) / 2
			if lon > mid {
				ch |= 1 << (4 - bits)
				lonRange[0] = mid
			} else {
				lonRange[1] = mid
			}
		} else {
			mid := (latRange[0] + latRange[1]) / 2
			if lat > mid {
				ch |= 1 << (4 - bits)
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}
		even = !even

		bits++
		if bits == 5 {
			sb.WriteByte(base32[ch])
			bits, ch = 0, 0
		}
	}

	return sb.String()
}

// DecodeGeohash decodes a geohash string into the center point of its cell.
// Characters outside the alphabet are skipped.
func DecodeGeohash(geohash string) (lat, lon float64) {
	latRange := [2]float64{-90.0, 90.0}
	lonRange := [2]float64{-180.0, 180.0}

	isLon := true
	for i := 0; i < len(geohash); i++ {
		idx := strings.IndexByte(base32, geohash[i])
		if idx == -1 {
			continue
		}

		for mask := 16; mask > 0; mask >>= 1 {
			r := &latRange
			if isLon {
				r = &lonRange
			}
			mid := (r[0] + r[1]) / 2
			if idx&mask != 0 {
				r[0] = mid
			} else {
				r[1] = mid
			}
			isLon = !isLon
		}
	}

	return (latRange[0] + latRange[1]) / 2, (lonRange[0] + lonRange[1]) / 2
}

// GeohashCellSize returns the approximate cell size in meters for a given precision
func GeohashCellSize(precision int) float64 {
	return geohashCellSizes[clampPrecision(precision)]
}

// GeohashPrecisionForDistance returns the coarsest precision whose cells are no wider than distanceMeters
func GeohashPrecisionForDistance(distanceMeters float64) int {
	for precision := 1; precision <= 12; precision++ {
		if GeohashCellSize(precision) <= distanceMeters {
			return precision
		}
	}
	return 12
}

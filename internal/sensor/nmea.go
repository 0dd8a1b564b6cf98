package sensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCoordinate converts a raw NMEA coordinate ("degrees + decimal
// minutes" form, e.g. "4916.45") and a hemisphere flag into signed decimal
// degrees rounded to 6 places.
//
// The integer minutes are always the two digits immediately before the
// decimal point; the digits preceding them are whole degrees. That covers
// both ddmm.mmmm latitudes and dddmm.mmmm longitudes without guessing from
// the digit count.
func ParseCoordinate(raw, hemisphere string) (float64, error) {
	dot := strings.Index(raw, ".")
	if dot < 3 {
		return 0, fmt.Errorf("%w: coordinate %q too short", ErrMalformed, raw)
	}

	degDigits := raw[:dot-2]
	minDigits := raw[dot-2:]

	deg, err := strconv.Atoi(degDigits)
	if err != nil {
		return 0, fmt.Errorf("%w: bad degrees in %q: %v", ErrMalformed, raw, err)
	}
	minutes, err := strconv.ParseFloat(minDigits, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad minutes in %q: %v", ErrMalformed, raw, err)
	}
	if minutes >= 60 {
		return 0, fmt.Errorf("%w: minutes %.4f out of range in %q", ErrMalformed, minutes, raw)
	}

	decimal := float64(deg) + minutes/60.0
	switch hemisphere {
	case "N", "E":
	case "S", "W":
		decimal = -decimal
	default:
		return 0, fmt.Errorf("%w: unknown hemisphere %q", ErrMalformed, hemisphere)
	}

	return math.Round(decimal*1e6) / 1e6, nil
}

// parseRMC extracts latitude and longitude from an RMC sentence. It returns
// ErrNoReading when the fix fields are empty (no satellite lock yet).
func parseRMC(line string) (lat, lon float64, err error) {
	parts := strings.Split(line, ",")
	if len(parts) < 7 {
		return 0, 0, fmt.Errorf("%w: RMC sentence has %d fields", ErrMalformed, len(parts))
	}
	if parts[3] == "" || parts[5] == "" {
		return 0, 0, fmt.Errorf("%w: RMC sentence has no fix", ErrNoReading)
	}

	lat, err = ParseCoordinate(parts[3], parts[4])
	if err != nil {
		return 0, 0, err
	}
	lon, err = ParseCoordinate(parts[5], parts[6])
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// isRMC reports whether an NMEA sentence is a recommended-minimum fix from
// any talker (GPRMC, GNRMC, ...).
func isRMC(line string) bool {
	if !strings.HasPrefix(line, "$") || !strings.Contains(line, ",") {
		return false
	}
	header := line[1:strings.Index(line, ",")]
	return strings.HasSuffix(header, "RMC")
}

package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/swmx/pkg/dsp/gain"
	"github.com/justyntemme/swmx/pkg/framework/bus"
)

// Common parameter formatters and parsers

// VolumeFormatter formats a raw 0..106 volume as dB.
func VolumeFormatter(raw int) string {
	if raw <= gain.VolumeMute {
		return "-∞ dB"
	}
	db := gain.VolumeDb(raw)
	if db > 0 {
		return fmt.Sprintf("+%.1f dB", db)
	}
	return fmt.Sprintf("%.1f dB", db)
}

// VolumeParser accepts a dB string or a raw volume. A value with a dB suffix
// is converted to the nearest raw step.
func VolumeParser(str string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	if strings.Contains(s, "∞") || strings.Contains(s, "inf") {
		return gain.VolumeMute, nil
	}
	if !strings.HasSuffix(s, "db") {
		return strconv.Atoi(s)
	}
	db, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "db")), 64)
	if err != nil {
		return 0, err
	}
	// Inverse of gain.VolumeDb on either side of unity.
	if db >= 0 {
		return gain.VolumeUnity + int(math.Round(db)), nil
	}
	return gain.VolumeUnity + int(math.Round(db/0.6)), nil
}

// PanFormatter formats -100..100 as "12% L", "Center", "40% R".
func PanFormatter(v int) string {
	switch {
	case v == 0:
		return "Center"
	case v < 0:
		return fmt.Sprintf("%d%% L", -v)
	default:
		return fmt.Sprintf("%d%% R", v)
	}
}

// PanParser parses the strings produced by PanFormatter or a plain number.
func PanParser(str string) (int, error) {
	s := strings.TrimSpace(strings.ToLower(str))
	if s == "center" || s == "c" {
		return 0, nil
	}
	sign := 1
	switch {
	case strings.HasSuffix(s, "left"), strings.HasSuffix(s, "l"):
		sign = -1
		s = strings.TrimSuffix(strings.TrimSuffix(s, "left"), "l")
	case strings.HasSuffix(s, "right"), strings.HasSuffix(s, "r"):
		s = strings.TrimSuffix(strings.TrimSuffix(s, "right"), "r")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

// BusFormatter names a 1-based bus number.
func BusFormatter(n int) string {
	return bus.Name(n)
}

// BusParser parses the strings produced by BusFormatter or a plain bus number.
func BusParser(str string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	if s == "none" {
		return 0, nil
	}
	base := 0
	for prefix, offset := range map[string]int{"input": 0, "output": bus.InputCount, "aux": bus.FirstAux - 1} {
		if strings.HasPrefix(s, prefix) {
			base = offset
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return base + v, nil
}

// OnOffParser accepts on/off, true/false, yes/no and 1/0.
func OnOffParser(str string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "true", "yes", "1":
		return 1, nil
	case "off", "false", "no", "0":
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidValue, str)
}

// SecondsFormatter returns a formatter that scales the raw value by
// secondsPerStep.
func SecondsFormatter(secondsPerStep float64) func(int) string {
	return func(v int) string {
		return fmt.Sprintf("%.1f s", float64(v)*secondsPerStep)
	}
}

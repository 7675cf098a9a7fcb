package domain

import "math"

// The dial maps a full revolution to two hours: 3 degrees per minute.
const (
	DialMinutes      = 120
	DegreesPerMinute = 3.0
)

// NormalizeAngle wraps an angle into [0, 360).
func NormalizeAngle(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// MinutesForAngle converts a normalized dial angle to whole minutes,
// rounding to the nearest minute mark.
func MinutesForAngle(degrees float64) int {
	minutes := int(math.Round(degrees / DegreesPerMinute))
	if minutes < 0 {
		return 0
	}
	if minutes > DialMinutes {
		return DialMinutes
	}
	return minutes
}

// AngleForSeconds returns the dial position for a remaining duration in
// seconds. Used to keep the selection indicator in lockstep with the
// countdown value while the timer is idle.
func AngleForSeconds(seconds int) float64 {
	angle := float64(seconds) / 60 * DegreesPerMinute
	if angle > 360 {
		return 360
	}
	return angle
}

package domain

import "testing"

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
		want    float64
	}{
		{"zero", 0, 0},
		{"in range", 75, 75},
		{"full turn", 360, 0},
		{"over full turn", 450, 90},
		{"negative", -90, 270},
		{"large negative", -720, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngle(tt.degrees); got != tt.want {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.degrees, got, tt.want)
			}
		})
	}
}

func TestMinutesForAngle(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
		want    int
	}{
		{"zero", 0, 0},
		{"one minute", 3, 1},
		{"quarter turn", 90, 30},
		{"twenty five minutes", 75, 25},
		{"rounds down", 4.4, 1},
		{"rounds up", 4.6, 2},
		{"just under full", 359.9, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesForAngle(tt.degrees); got != tt.want {
				t.Errorf("MinutesForAngle(%v) = %v, want %v", tt.degrees, got, tt.want)
			}
		})
	}
}

func TestAngleForSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    float64
	}{
		{"zero", 0, 0},
		{"one minute", 60, 3},
		{"twenty five minutes", 25 * 60, 75},
		{"two hours", 120 * 60, 360},
		{"beyond dial caps at full", 200 * 60, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleForSeconds(tt.seconds); got != tt.want {
				t.Errorf("AngleForSeconds(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

// A whole-minute angle converted to minutes and back must land on the
// same angle, so turning the dial never drifts the selection.
func TestAngleMinuteRoundTrip(t *testing.T) {
	for m := 0; m <= DialMinutes; m++ {
		angle := float64(m) * DegreesPerMinute
		got := MinutesForAngle(NormalizeAngle(angle))
		if angle >= 360 {
			// 360 normalizes to 0
			if got != 0 {
				t.Errorf("minutes(%v°) = %d, want 0", angle, got)
			}
			continue
		}
		if got != m {
			t.Errorf("minutes(%v°) = %d, want %d", angle, got, m)
		}
	}
}

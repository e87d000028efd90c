package joystick

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCPSIFormat(t *testing.T) {
	telemetry := NewTelemetry(42)

	// fields after "+CPSI: " per technology
	fieldCount := map[string]int{"LTE": 11, "GSM": 9, "WCDMA": 9}
	seen := map[string]bool{}

	for n := 0; n < 200; n++ {
		line := telemetry.CPSI()
		assert.True(t, strings.HasPrefix(line, "+CPSI: "), line)

		fields := strings.Split(strings.TrimPrefix(line, "+CPSI: "), ",")
		tech := fields[0]
		seen[tech] = true

		assert.Equal(t, "Online", fields[1])
		assert.True(t, strings.HasPrefix(fields[2], "Operator"))
		assert.Len(t, fields, fieldCount[tech], line)
	}
	assert.Len(t, seen, 3, "every technology should come up")
}

func TestBatteryRanges(t *testing.T) {
	telemetry := NewTelemetry(7)

	for n := 0; n < 100; n++ {
		b := telemetry.Battery()
		assert.GreaterOrEqual(t, b.Voltage, 3200.0)
		assert.LessOrEqual(t, b.Voltage, 4500.0)
		assert.GreaterOrEqual(t, b.Current, 50.0)
		assert.LessOrEqual(t, b.Current, 500.0)
		assert.GreaterOrEqual(t, b.Consumption, 0.0)
		assert.LessOrEqual(t, b.Consumption, 1400.0)
		// power comes from the unrounded readings: 0.005*500 + 0.005*4500 + rounding
		assert.InDelta(t, b.Voltage*b.Current, b.Power, 25.1)
	}
}

func TestGPSNearBase(t *testing.T) {
	telemetry := NewTelemetry(7)

	for n := 0; n < 100; n++ {
		g := telemetry.GPS()
		assert.InDelta(t, gpsBaseLatitude, g.Latitude, gpsVariation+1e-6)
		assert.InDelta(t, gpsBaseLongitude, g.Longitude, gpsVariation+1e-6)
		assert.GreaterOrEqual(t, g.Altitude, 10.0)
		assert.LessOrEqual(t, g.Altitude, 110.0)
	}
}

func TestIMUFollowsClock(t *testing.T) {
	telemetry := NewTelemetry(7)
	telemetry.now = func() time.Time { return time.UnixMilli(0) }

	imu := telemetry.IMU()
	assert.InDelta(t, 0, imu.X, imuNoise)
	assert.InDelta(t, 0, imu.Y, imuNoise)
	assert.InDelta(t, 1, imu.Z, imuNoise)
}

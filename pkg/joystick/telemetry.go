package joystick

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

type BatteryReading struct {
	Voltage     float64 `json:"voltage"`
	Current     float64 `json:"current"`
	Power       float64 `json:"power"`
	Consumption float64 `json:"consumption"`
}

type GPSReading struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

type IMUReading struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

const (
	gpsBaseLatitude  = 37.7749
	gpsBaseLongitude = -122.4194
	gpsVariation     = 0.01
	imuNoise         = 0.05
)

var (
	cpsiTechnologies = []string{"LTE", "GSM", "WCDMA"}
	cpsiMccMnc       = []string{"460-01", "460-02", "310-260", "234-15"}
	cpsiLTEBands     = []string{"B1", "B2", "B3", "B4", "B5", "B7", "B8", "B12", "B13", "B20", "B28"}
	cpsiGSMBands     = []string{"900", "1800"}
	cpsiWCDMABands   = []string{"850", "900", "1900", "2100"}
)

// Telemetry produces simulated modem and sensor readings for devices that have
// no live feed.
type Telemetry struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewTelemetry(seed int64) *Telemetry {
	return &Telemetry{rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func (t *Telemetry) pick(values []string) string {
	return values[t.rnd.Intn(len(values))]
}

// CPSI returns an AT+CPSI style line for a random LTE, GSM or WCDMA cell.
func (t *Telemetry) CPSI() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	tech := t.pick(cpsiTechnologies)
	operator := fmt.Sprintf("Operator%d", t.rnd.Intn(99)+1)
	mccMnc := t.pick(cpsiMccMnc)
	rssi := -(t.rnd.Intn(51) + 50)

	prefix := fmt.Sprintf("+CPSI: %s,Online,%s,%s", tech, operator, mccMnc)
	switch tech {
	case "LTE":
		band := t.pick(cpsiLTEBands)
		arfcn := t.rnd.Intn(3001)
		rx := t.rnd.Intn(201)
		rsrp := -(t.rnd.Intn(41) + 80)
		sinr := t.rnd.Intn(31)
		rsrq := -t.rnd.Intn(21)
		return fmt.Sprintf("%s,%s,%d,%d,%d,%d,%d,%d", prefix, band, arfcn, rx, rssi, rsrp, sinr, rsrq)
	case "GSM":
		band := t.pick(cpsiGSMBands)
		arfcn := t.rnd.Intn(125)
		bsic := t.rnd.Intn(8)
		ta := t.rnd.Intn(64)
		return fmt.Sprintf("%s,%s,%d,%d,%d,%d", prefix, band, arfcn, bsic, rssi, ta)
	default:
		band := t.pick(cpsiWCDMABands)
		arfcn := t.rnd.Intn(20001)
		rx := t.rnd.Intn(201)
		rsrq := -t.rnd.Intn(21)
		return fmt.Sprintf("%s,%s,%d,%d,%d,%d", prefix, band, arfcn, rx, rssi, rsrq)
	}
}

// Battery voltage is in mV, current in mA and consumption in mAh.
func (t *Telemetry) Battery() BatteryReading {
	t.mu.Lock()
	defer t.mu.Unlock()

	voltage := 3200 + t.rnd.Float64()*1300
	current := 50 + t.rnd.Float64()*450
	consumption := t.rnd.Float64() * 1400
	return BatteryReading{
		Voltage:     round(voltage, 2),
		Current:     round(current, 2),
		Power:       round(voltage*current, 2),
		Consumption: round(consumption, 2),
	}
}

func (t *Telemetry) GPS() GPSReading {
	t.mu.Lock()
	defer t.mu.Unlock()

	jitter := func() float64 { return t.rnd.Float64()*gpsVariation*2 - gpsVariation }
	return GPSReading{
		Latitude:  round(gpsBaseLatitude+jitter(), 6),
		Longitude: round(gpsBaseLongitude+jitter(), 6),
		Altitude:  round(10+t.rnd.Float64()*100, 2),
	}
}

// IMU follows slow sine waves on each axis with z offset by gravity.
func (t *Telemetry) IMU() IMUReading {
	t.mu.Lock()
	defer t.mu.Unlock()

	ms := float64(t.now().UnixMilli())
	noise := func() float64 { return t.rnd.Float64()*imuNoise*2 - imuNoise }
	return IMUReading{
		X: round(math.Sin(ms/2000)*0.8+noise(), 3),
		Y: round(math.Sin(ms/1500)*0.6+noise(), 3),
		Z: round(math.Sin(ms/1000)*0.4+1+noise(), 3),
	}
}

package gps

import (
	"fmt"

	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// Fix represents a single navigation solution suitable for JSON and MQTT.
type Fix struct {
	ITOW      uint32  `json:"itow"`       // GPS time of week, ms
	Time      string  `json:"time"`       // e.g. "12:34:56"
	Date      string  `json:"date"`       // e.g. "2025-12-06"
	FixType   string  `json:"fix_type"`   // e.g. "3D-fix"
	FixOK     bool    `json:"fix_ok"`     // gnssFixOK flag
	NumSV     int     `json:"num_sv"`     // satellites used
	Latitude  float64 `json:"lat"`        // decimal degrees
	Longitude float64 `json:"lon"`        // decimal degrees
	HeightMSL float64 `json:"height_msl"` // metres
	HAccM     float64 `json:"h_acc_m"`    // horizontal accuracy, metres
	SpeedMS   float64 `json:"speed_ms"`   // ground speed
	CourseDeg float64 `json:"course_deg"` // heading of motion
	PDOP      float64 `json:"pdop"`       // position DOP
	Validity  string  `json:"validity"`   // "A" (valid) / "V" (void)
}

// FromPVT converts a decoded NAV-PVT into a Fix.
func FromPVT(m ubx.NavPvt) Fix {
	validity := "V"
	if m.GNSSFixOK() && !m.InvalidLLH() {
		validity = "A"
	}
	return Fix{
		ITOW:      m.ITOW,
		Time:      fmt.Sprintf("%02d:%02d:%02d", m.Hour, m.Min, m.Sec),
		Date:      fmt.Sprintf("%04d-%02d-%02d", m.Year, m.Month, m.Day),
		FixType:   m.FixType.String(),
		FixOK:     m.GNSSFixOK(),
		NumSV:     int(m.NumSV),
		Latitude:  m.LatDeg(),
		Longitude: m.LonDeg(),
		HeightMSL: float64(m.HMSL) / 1000,
		HAccM:     float64(m.HAcc) / 1000,
		SpeedMS:   float64(m.GSpeed) / 1000,
		CourseDeg: m.HeadMotDeg(),
		PDOP:      ubx.DOP(m.PDOP),
		Validity:  validity,
	}
}

// DOP holds the dilution of precision values of one epoch.
type DOP struct {
	ITOW uint32  `json:"itow"`
	GDOP float64 `json:"gdop"`
	PDOP float64 `json:"pdop"`
	TDOP float64 `json:"tdop"`
	VDOP float64 `json:"vdop"`
	HDOP float64 `json:"hdop"`
	NDOP float64 `json:"ndop"`
	EDOP float64 `json:"edop"`
}

// FromDOP converts a decoded NAV-DOP.
func FromDOP(m ubx.NavDop) DOP {
	return DOP{
		ITOW: m.ITOW,
		GDOP: ubx.DOP(m.GDOP),
		PDOP: ubx.DOP(m.PDOP),
		TDOP: ubx.DOP(m.TDOP),
		VDOP: ubx.DOP(m.VDOP),
		HDOP: ubx.DOP(m.HDOP),
		NDOP: ubx.DOP(m.NDOP),
		EDOP: ubx.DOP(m.EDOP),
	}
}

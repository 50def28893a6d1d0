// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

// FixType is the GNSS fix type reported in NAV-PVT.
type FixType uint8

const (
	FixNone FixType = iota
	FixDeadReckoning
	Fix2D
	Fix3D
	FixGNSSDeadReckoning
	FixTimeOnly
)

func (f FixType) String() string {
	switch f {
	case FixNone:
		return "no fix"
	case FixDeadReckoning:
		return "dead reckoning only"
	case Fix2D:
		return "2D-fix"
	case Fix3D:
		return "3D-fix"
	case FixGNSSDeadReckoning:
		return "GNSS + dead reckoning combined"
	case FixTimeOnly:
		return "time only fix"
	default:
		return "error"
	}
}

// CorrectionAge is the lastCorrectionAge bucket from NAV-PVT flags3.
type CorrectionAge uint8

var correctionAgeLabels = [...]string{
	"Not available",
	"Age between 0 and 1 second",
	"Age between 1 (inclusive) and 2 seconds",
	"Age between 2 (inclusive) and 5 seconds",
	"Age between 5 (inclusive) and 10 seconds",
	"Age between 10 (inclusive) and 15 seconds",
	"Age between 15 (inclusive) and 20 seconds",
	"Age between 20 (inclusive) and 30 seconds",
	"Age between 30 (inclusive) and 45 seconds",
	"Age between 45 (inclusive) and 60 seconds",
	"Age between 60 (inclusive) and 90 seconds",
	"Age between 90 (inclusive) and 120 seconds",
}

func (a CorrectionAge) String() string {
	if int(a) < len(correctionAgeLabels) {
		return correctionAgeLabels[a]
	}
	return "Age greater or equal than 120 seconds"
}

// DOP scales a raw dilution of precision value (units of 0.01).
func DOP(v uint16) float64 { return float64(v) / 100 }

func (m NavPvt) LonDeg() float64     { return float64(m.Lon) / 1e7 }
func (m NavPvt) LatDeg() float64     { return float64(m.Lat) / 1e7 }
func (m NavPvt) HeadMotDeg() float64 { return float64(m.HeadMot) / 1e5 }
func (m NavPvt) HeadAccDeg() float64 { return float64(m.HeadAcc) / 1e5 }
func (m NavPvt) HeadVehDeg() float64 { return float64(m.HeadVeh) / 1e5 }
func (m NavPvt) MagDecDeg() float64  { return float64(m.MagDec) / 100 }
func (m NavPvt) MagAccDeg() float64  { return float64(m.MagAcc) / 100 }

// valid
func (m NavPvt) ValidDate() bool     { return m.Valid&0x01 != 0 }
func (m NavPvt) ValidTime() bool     { return m.Valid&0x02 != 0 }
func (m NavPvt) FullyResolved() bool { return m.Valid&0x04 != 0 }
func (m NavPvt) ValidMag() bool      { return m.Valid&0x08 != 0 }

// flags
func (m NavPvt) GNSSFixOK() bool    { return m.Flags&0x01 != 0 }
func (m NavPvt) DiffSoln() bool     { return m.Flags&0x02 != 0 }
func (m NavPvt) PSMState() uint8    { return (m.Flags >> 2) & 0x07 }
func (m NavPvt) HeadVehValid() bool { return m.Flags&0x20 != 0 }
func (m NavPvt) CarrSoln() uint8    { return (m.Flags >> 6) & 0x03 }

// flags2
func (m NavPvt) ConfirmedAvai() bool { return m.Flags2&0x20 != 0 }
func (m NavPvt) ConfirmedDate() bool { return m.Flags2&0x40 != 0 }
func (m NavPvt) ConfirmedTime() bool { return m.Flags2&0x80 != 0 }

// flags3
func (m NavPvt) InvalidLLH() bool { return m.Flags3&0x01 != 0 }
func (m NavPvt) LastCorrectionAge() CorrectionAge {
	return CorrectionAge((m.Flags3 >> 1) & 0x0F)
}

// TxReadyEnabled and the other TxReady methods unpack the CFG-PRT txReady
// bit field.
func (m CfgPrt) TxReadyEnabled() bool    { return m.TxReady&0x01 != 0 }
func (m CfgPrt) TxReadyActiveHigh() bool { return m.TxReady&0x02 != 0 }
func (m CfgPrt) TxReadyPin() uint8       { return uint8((m.TxReady >> 2) & 0x1F) }

// TxReadyThreshold is the txReady threshold in bytes.
func (m CfgPrt) TxReadyThreshold() int { return int(m.TxReady>>7) * 8 }

// CharLen is the UART character length in bits (mode bits 7:6).
func (m CfgPrt) CharLen() int { return int((m.Mode>>6)&0x03) + 5 }

// Parity is mode bits 11:9; 4 means no parity.
func (m CfgPrt) Parity() uint8 { return uint8((m.Mode >> 9) & 0x07) }

// StopBits is mode bits 13:12: 0 is 1 stop bit, 1 is 1.5, 2 is 2, 3 is 0.5.
func (m CfgPrt) StopBits() uint8 { return uint8((m.Mode >> 12) & 0x03) }

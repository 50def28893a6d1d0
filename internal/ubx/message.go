// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import "encoding/hex"

// Message is one interpreted UBX message. The concrete types are AckAck,
// AckNak, NavPvt, NavDop, CfgPrt and Unknown.
type Message interface {
	// Name returns the UBX name, e.g. "UBX-NAV-PVT".
	Name() string
}

// Payload sizes of the interpreted messages.
const (
	NavPvtLen = 92
	NavDopLen = 18
	CfgPrtLen = 20
)

// AckAck acknowledges a CFG message. Hex is the frame body for display.
type AckAck struct {
	Hex string
}

// AckNak rejects a CFG message. Hex is the frame body for display.
type AckNak struct {
	Hex string
}

// NavPvt is UBX-NAV-PVT (navigation position velocity time solution).
// Fields hold raw wire values; scaled values come from the methods.
type NavPvt struct {
	ITOW     uint32 // ms
	Year     uint16
	Month    uint8
	Day      uint8
	Hour     uint8
	Min      uint8
	Sec      uint8
	Valid    uint8
	TAcc     uint32 // ns
	Nano     int32  // ns
	FixType  FixType
	Flags    uint8
	Flags2   uint8
	NumSV    uint8
	Lon      int32  // 1e-7 deg
	Lat      int32  // 1e-7 deg
	Height   int32  // mm above ellipsoid
	HMSL     int32  // mm above mean sea level
	HAcc     uint32 // mm
	VAcc     uint32 // mm
	VelN     int32  // mm/s
	VelE     int32  // mm/s
	VelD     int32  // mm/s
	GSpeed   int32  // mm/s
	HeadMot  int32  // 1e-5 deg
	SAcc     uint32 // mm/s
	HeadAcc  uint32 // 1e-5 deg
	PDOP     uint16 // 0.01
	Flags3   uint16
	Reserved uint32
	HeadVeh  int32  // 1e-5 deg
	MagDec   int16  // 1e-2 deg
	MagAcc   uint16 // 1e-2 deg
}

// NavDop is UBX-NAV-DOP (dilution of precision). All DOP values are in
// units of 0.01, see DOP.
type NavDop struct {
	ITOW uint32
	GDOP uint16
	PDOP uint16
	TDOP uint16
	VDOP uint16
	HDOP uint16
	NDOP uint16
	EDOP uint16
}

// CfgPrt is UBX-CFG-PRT for a UART port.
type CfgPrt struct {
	PortID       uint8
	Reserved1    uint8
	TxReady      uint16
	Mode         uint32
	BaudRate     uint32
	InProtoMask  uint16
	OutProtoMask uint16
	Flags        uint16
	Reserved2    [2]uint8
}

// Unknown is any message this package does not interpret.
type Unknown struct {
	Class byte
	ID    byte
	Hex   string
}

func (AckAck) Name() string  { return "UBX-ACK-ACK" }
func (AckNak) Name() string  { return "UBX-ACK-NAK" }
func (NavPvt) Name() string  { return "UBX-NAV-PVT" }
func (NavDop) Name() string  { return "UBX-NAV-DOP" }
func (CfgPrt) Name() string  { return "UBX-CFG-PRT" }
func (Unknown) Name() string { return "UNKNOWN" }

// Decode interprets a checksum-valid packet. Messages with a known class
// and id but a short payload return a *LengthError.
func Decode(p Packet) (Message, error) {
	switch {
	case p.Is(ClassACK, IDAckAck):
		return AckAck{Hex: hex.EncodeToString(p.Body())}, nil
	case p.Is(ClassACK, IDAckNak):
		return AckNak{Hex: hex.EncodeToString(p.Body())}, nil
	case p.Is(ClassNAV, IDNavPVT):
		return decodeNavPvt(p.Payload)
	case p.Is(ClassNAV, IDNavDOP):
		return decodeNavDop(p.Payload)
	case p.Is(ClassCFG, IDCfgPRT):
		return decodeCfgPrt(p.Payload)
	default:
		return Unknown{Class: p.Class, ID: p.ID, Hex: hex.EncodeToString(p.Body())}, nil
	}
}

func decodeNavPvt(payload []byte) (Message, error) {
	if len(payload) < NavPvtLen {
		return nil, &LengthError{Name: NavPvt{}.Name(), Want: NavPvtLen, Got: len(payload)}
	}
	c := NewCursor(payload)
	var m NavPvt
	m.ITOW = c.U4()
	m.Year = c.U2()
	m.Month = c.U1()
	m.Day = c.U1()
	m.Hour = c.U1()
	m.Min = c.U1()
	m.Sec = c.U1()
	m.Valid = c.X1()
	m.TAcc = c.U4()
	m.Nano = c.I4()
	m.FixType = FixType(c.U1())
	m.Flags = c.X1()
	m.Flags2 = c.X1()
	m.NumSV = c.U1()
	m.Lon = c.I4()
	m.Lat = c.I4()
	m.Height = c.I4()
	m.HMSL = c.I4()
	m.HAcc = c.U4()
	m.VAcc = c.U4()
	m.VelN = c.I4()
	m.VelE = c.I4()
	m.VelD = c.I4()
	m.GSpeed = c.I4()
	m.HeadMot = c.I4()
	m.SAcc = c.U4()
	m.HeadAcc = c.U4()
	m.PDOP = c.U2()
	m.Flags3 = c.X2()
	m.Reserved = c.U4()
	m.HeadVeh = c.I4()
	m.MagDec = c.I2()
	m.MagAcc = c.U2()
	return m, nil
}

func decodeNavDop(payload []byte) (Message, error) {
	if len(payload) < NavDopLen {
		return nil, &LengthError{Name: NavDop{}.Name(), Want: NavDopLen, Got: len(payload)}
	}
	c := NewCursor(payload)
	return NavDop{
		ITOW: c.U4(),
		GDOP: c.U2(),
		PDOP: c.U2(),
		TDOP: c.U2(),
		VDOP: c.U2(),
		HDOP: c.U2(),
		NDOP: c.U2(),
		EDOP: c.U2(),
	}, nil
}

func decodeCfgPrt(payload []byte) (Message, error) {
	if len(payload) < CfgPrtLen {
		return nil, &LengthError{Name: CfgPrt{}.Name(), Want: CfgPrtLen, Got: len(payload)}
	}
	c := NewCursor(payload)
	var m CfgPrt
	m.PortID = c.U1()
	m.Reserved1 = c.U1()
	m.TxReady = c.X2()
	m.Mode = c.X4()
	m.BaudRate = c.U4()
	m.InProtoMask = c.X2()
	m.OutProtoMask = c.X2()
	m.Flags = c.X2()
	m.Reserved2 = [2]uint8{c.U1(), c.U1()}
	return m, nil
}

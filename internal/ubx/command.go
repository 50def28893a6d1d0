// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Encode builds a complete UBX frame: sync, class, id, little-endian
// length, payload and checksum.
func Encode(class, id byte, payload []byte) []byte {
	buf := make([]byte, 0, FrameOverhead+len(payload))
	buf = append(buf, Sync1, Sync2, class, id)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(payload)))
	buf = append(buf, payload...)
	a, b := Checksum(buf[2:])
	return append(buf, a, b)
}

// Command is one user-level request made of one or more frames. The frames
// are written to the receiver in a single write.
type Command struct {
	Name   string
	Frames [][]byte
}

// Bytes concatenates the frames of the command.
func (c Command) Bytes() []byte {
	var out []byte
	for _, f := range c.Frames {
		out = append(out, f...)
	}
	return out
}

func (c Command) String() string {
	return fmt.Sprintf("%s sent, %s", c.Name, hex.EncodeToString(c.Bytes()))
}

// PortUART1 is the CFG-PRT port id of the first UART.
const PortUART1 = 0x01

// Protocol mask bits for CFG-PRT inProtoMask and outProtoMask.
const (
	ProtoUBX   = 0x0001
	ProtoNMEA  = 0x0002
	ProtoRTCM  = 0x0004
	ProtoRTCM3 = 0x0020
)

// ModeUART8N1 is the CFG-PRT mode for 8 data bits, no parity, 1 stop bit.
const ModeUART8N1 = 0x000008C0

// PortConfig is the payload of a CFG-PRT set request for a UART port.
type PortConfig struct {
	PortID       uint8
	TxReady      uint16
	Mode         uint32
	BaudRate     uint32
	InProtoMask  uint16
	OutProtoMask uint16
	Flags        uint16
}

// OutputNone keeps UART1 accepting UBX, NMEA and RTCM input but silences
// all output.
var OutputNone = PortConfig{
	PortID:      PortUART1,
	Mode:        ModeUART8N1,
	BaudRate:    9600,
	InProtoMask: ProtoUBX | ProtoNMEA | ProtoRTCM,
}

// OutputUBX is OutputNone with UBX output enabled.
var OutputUBX = PortConfig{
	PortID:       PortUART1,
	Mode:         ModeUART8N1,
	BaudRate:     9600,
	InProtoMask:  ProtoUBX | ProtoNMEA | ProtoRTCM,
	OutProtoMask: ProtoUBX,
}

// Marshal returns the 20-byte CFG-PRT payload.
func (p PortConfig) Marshal() []byte {
	b := make([]byte, CfgPrtLen)
	b[0] = p.PortID
	binary.LittleEndian.PutUint16(b[2:], p.TxReady)
	binary.LittleEndian.PutUint32(b[4:], p.Mode)
	binary.LittleEndian.PutUint32(b[8:], p.BaudRate)
	binary.LittleEndian.PutUint16(b[12:], p.InProtoMask)
	binary.LittleEndian.PutUint16(b[14:], p.OutProtoMask)
	binary.LittleEndian.PutUint16(b[16:], p.Flags)
	return b
}

// PollPortConfig asks the receiver to report the configuration of a port.
func PollPortConfig(portID uint8) []byte {
	return Encode(ClassCFG, IDCfgPRT, []byte{portID})
}

// SetPortConfig reconfigures a port.
func SetPortConfig(p PortConfig) []byte {
	return Encode(ClassCFG, IDCfgPRT, p.Marshal())
}

// SetMessageRate sets the output rate of a message on UART1. The six
// per-port rates are I2C, UART1, UART2, USB, SPI and a reserved slot; only
// UART1 is set, all others are zero.
func SetMessageRate(class, id, rate byte) []byte {
	return Encode(ClassCFG, IDCfgMSG, []byte{class, id, 0, rate, 0, 0, 0, 0})
}

// DisableMessage turns a message off on every port.
func DisableMessage(class, id byte) []byte {
	return SetMessageRate(class, id, 0)
}

// DisableNMEA returns CFG-MSG frames that turn off the standard NMEA
// sentences GGA, GLL, GSA, GSV, RMC and VTG (ids 0x00 to 0x05).
func DisableNMEA() [][]byte {
	frames := make([][]byte, 0, 6)
	for id := byte(0x00); id <= 0x05; id++ {
		frames = append(frames, DisableMessage(ClassNMEA, id))
	}
	return frames
}

// PowerMode is the CFG-PMS power setup value. Values follow the receiver
// interface description. The earlier collector sent 0x05 for a bare "pms";
// here that command sends 0x03 (Aggressive1Hz) and 0x05 is Aggressive4Hz,
// so wire captures from the two differ.
type PowerMode uint8

const (
	PowerFull          PowerMode = 0x00
	PowerBalanced      PowerMode = 0x01
	PowerInterval      PowerMode = 0x02
	PowerAggressive1Hz PowerMode = 0x03
	PowerAggressive2Hz PowerMode = 0x04
	PowerAggressive4Hz PowerMode = 0x05
)

func (p PowerMode) String() string {
	switch p {
	case PowerFull:
		return "full power"
	case PowerBalanced:
		return "balanced"
	case PowerInterval:
		return "interval"
	case PowerAggressive1Hz:
		return "aggressive 1 Hz"
	case PowerAggressive2Hz:
		return "aggressive 2 Hz"
	case PowerAggressive4Hz:
		return "aggressive 4 Hz"
	default:
		return fmt.Sprintf("power mode 0x%02X", uint8(p))
	}
}

// SetPowerMode builds a CFG-PMS message (version 0). Period and on-time
// are only used by PowerInterval and are left zero.
func SetPowerMode(mode PowerMode) []byte {
	return Encode(ClassCFG, IDCfgPMS, []byte{0x00, byte(mode), 0, 0, 0, 0, 0, 0})
}

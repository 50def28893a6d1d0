// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Render returns the human-readable text for a decoded message. n is the
// payload length the frame announced, which may exceed the decoded part.
// Long messages continue on tab-indented lines.
func Render(m Message, n int) string {
	switch m := m.(type) {
	case AckAck:
		return fmt.Sprintf("UBX_ACK_ACK, %s", m.Hex)
	case AckNak:
		return fmt.Sprintf("UBX_ACK_NAK, %s", m.Hex)
	case NavPvt:
		return renderNavPvt(m, n)
	case NavDop:
		return renderNavDop(m, n)
	case CfgPrt:
		return renderCfgPrt(m, n)
	case Unknown:
		return fmt.Sprintf("UNKNOWN: %s", m.Hex)
	default:
		return fmt.Sprintf("%s: no renderer", m.Name())
	}
}

func yn(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func renderNavPvt(m NavPvt, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "UBX-NAV-PVT, len: %d", n)
	fmt.Fprintf(&sb, "\n\titow: %d, year: %d, month: %d, day: %d, hour: %d, min: %d, sec: %d,",
		m.ITOW, m.Year, m.Month, m.Day, m.Hour, m.Min, m.Sec)
	fmt.Fprintf(&sb, "\n\tvalid: date: %s, time: %s, fully resolved: %s, mag: %s, tAcc: %dns, nano: %dns,",
		yn(m.ValidDate()), yn(m.ValidTime()), yn(m.FullyResolved()), yn(m.ValidMag()), m.TAcc, m.Nano)
	fmt.Fprintf(&sb, "\n\tfixType: %s,", m.FixType)
	fmt.Fprintf(&sb, "\n\tflags: gnssFixOK: %s, diffSoln: %s, psmState: %d, headVehValid: %s, carrSoln: %d,",
		yn(m.GNSSFixOK()), yn(m.DiffSoln()), m.PSMState(), yn(m.HeadVehValid()), m.CarrSoln())
	fmt.Fprintf(&sb, "\n\tflags2: confirmedAvai: %s, confirmedDate: %s, confirmedTime: %s,",
		yn(m.ConfirmedAvai()), yn(m.ConfirmedDate()), yn(m.ConfirmedTime()))
	fmt.Fprintf(&sb, "\n\tnumSV: %d, lon: %v deg, lat: %v deg, height: %dmm, hMSL: %dmm, hAcc: %dmm, vAcc: %dmm,",
		m.NumSV, m.LonDeg(), m.LatDeg(), m.Height, m.HMSL, m.HAcc, m.VAcc)
	fmt.Fprintf(&sb, "\n\tvelN: %dmm/S, velE: %dmm/S, velD: %dmm/S, gSpeed: %dmm/S, headMot: %v deg, sAcc: %dmm/S, headAcc: %v deg, pDop: %v",
		m.VelN, m.VelE, m.VelD, m.GSpeed, m.HeadMotDeg(), m.SAcc, m.HeadAccDeg(), DOP(m.PDOP))
	fmt.Fprintf(&sb, "\n\tflags3: invalidLlh: %s, lastCorrectionAge: %s, headVeh: %v deg, magDec: %v deg, magAcc: %v deg",
		yn(m.InvalidLLH()), m.LastCorrectionAge(), m.HeadVehDeg(), m.MagDecDeg(), m.MagAccDeg())
	return sb.String()
}

func renderNavDop(m NavDop, n int) string {
	return fmt.Sprintf("UBX-NAV-DOP, len: %d,\n\titow: %d, gdop: %v, pdop: %v, tdop: %v, vdop: %v, hdop: %v, ndop: %v, edop: %v",
		n, m.ITOW, DOP(m.GDOP), DOP(m.PDOP), DOP(m.TDOP), DOP(m.VDOP), DOP(m.HDOP), DOP(m.NDOP), DOP(m.EDOP))
}

func renderCfgPrt(m CfgPrt, n int) string {
	polarity := "low active"
	if m.TxReadyActiveHigh() {
		polarity = "high active"
	}
	return fmt.Sprintf("UBX-CFG-PRT, len: %d,"+
		"\n\tportId: %d, txReady: enable: %s, polarity: %s, pin: %d, threshold: %d bytes,"+
		" mode: charlen: %d bits, parity: %d, nStopBits: %d,"+
		"\n\tbaudRate: %d bps, inProtoMask: %d, outProtoMask: %d, flags: %d",
		n, m.PortID, yn(m.TxReadyEnabled()), polarity, m.TxReadyPin(), m.TxReadyThreshold(),
		m.CharLen(), m.Parity(), m.StopBits(),
		m.BaudRate, m.InProtoMask, m.OutProtoMask, m.Flags)
}

// HexRows renders raw as hex, 16 bytes per row.
func HexRows(raw []byte) []string {
	rows := make([]string, 0, (len(raw)+15)/16)
	for len(raw) > 0 {
		n := min(16, len(raw))
		rows = append(rows, hex.EncodeToString(raw[:n]))
		raw = raw[n:]
	}
	return rows
}

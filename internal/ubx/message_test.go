// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package ubx

import (
	"strings"
	"testing"
)

func TestDecodeNavPvt(t *testing.T) {
	msg, err := Decode(Packet{Class: ClassNAV, ID: IDNavPVT, Payload: pvtPayload(1000)})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pvt, ok := msg.(NavPvt)
	if !ok {
		t.Fatalf("Decode returned %T, want NavPvt", msg)
	}

	if pvt.ITOW != 1000 {
		t.Errorf("ITOW = %d, want 1000", pvt.ITOW)
	}
	if pvt.Year != 2024 || pvt.Month != 5 || pvt.Day != 17 || pvt.Hour != 12 || pvt.Min != 34 || pvt.Sec != 56 {
		t.Errorf("date/time = %d-%d-%d %d:%d:%d", pvt.Year, pvt.Month, pvt.Day, pvt.Hour, pvt.Min, pvt.Sec)
	}
	if pvt.FixType != Fix3D {
		t.Errorf("FixType = %v, want 3D-fix", pvt.FixType)
	}
	if pvt.NumSV != 12 {
		t.Errorf("NumSV = %d, want 12", pvt.NumSV)
	}
	if pvt.LonDeg() != 0.1 {
		t.Errorf("LonDeg() = %v, want 0.1", pvt.LonDeg())
	}
	if pvt.LatDeg() != -0.5 {
		t.Errorf("LatDeg() = %v, want -0.5", pvt.LatDeg())
	}
	if pvt.Nano != -100 {
		t.Errorf("Nano = %d, want -100", pvt.Nano)
	}
	if pvt.HMSL != 545400 {
		t.Errorf("HMSL = %d, want 545400", pvt.HMSL)
	}
	if pvt.HeadMotDeg() != 90 {
		t.Errorf("HeadMotDeg() = %v, want 90", pvt.HeadMotDeg())
	}
	if DOP(pvt.PDOP) != 1.56 {
		t.Errorf("DOP(PDOP) = %v, want 1.56", DOP(pvt.PDOP))
	}
	if pvt.MagDecDeg() != -2.5 {
		t.Errorf("MagDecDeg() = %v, want -2.5", pvt.MagDecDeg())
	}
	if pvt.MagAccDeg() != 1.2 {
		t.Errorf("MagAccDeg() = %v, want 1.2", pvt.MagAccDeg())
	}
	if !pvt.ValidDate() || !pvt.ValidTime() || !pvt.FullyResolved() || pvt.ValidMag() {
		t.Errorf("valid flags decoded wrong: %#x", pvt.Valid)
	}
	if !pvt.GNSSFixOK() {
		t.Errorf("GNSSFixOK() = false")
	}
	if !pvt.InvalidLLH() {
		t.Errorf("InvalidLLH() = false")
	}
	if got := pvt.LastCorrectionAge().String(); got != "Age between 2 (inclusive) and 5 seconds" {
		t.Errorf("LastCorrectionAge() = %q", got)
	}
}

func TestDecodeNavDop(t *testing.T) {
	payload := []byte{
		0xE8, 0x03, 0x00, 0x00, // iTOW 1000
		0xC8, 0x00, // gDOP 2.00
		0x9C, 0x00, // pDOP 1.56
		0x64, 0x00, // tDOP 1.00
		0x78, 0x00, // vDOP 1.20
		0x5A, 0x00, // hDOP 0.90
		0x32, 0x00, // nDOP 0.50
		0x46, 0x00, // eDOP 0.70
	}
	msg, err := Decode(Packet{Class: ClassNAV, ID: IDNavDOP, Payload: payload})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	dop := msg.(NavDop)
	want := NavDop{ITOW: 1000, GDOP: 200, PDOP: 156, TDOP: 100, VDOP: 120, HDOP: 90, NDOP: 50, EDOP: 70}
	if dop != want {
		t.Fatalf("Decode() = %+v, want %+v", dop, want)
	}
	if DOP(dop.HDOP) != 0.9 {
		t.Errorf("DOP(HDOP) = %v, want 0.9", DOP(dop.HDOP))
	}
}

func TestDecodeCfgPrt(t *testing.T) {
	cfg := PortConfig{
		PortID:       PortUART1,
		TxReady:      0x0001 | 0x0002 | 6<<2 | 3<<7,
		Mode:         ModeUART8N1,
		BaudRate:     115200,
		InProtoMask:  ProtoUBX | ProtoNMEA,
		OutProtoMask: ProtoUBX,
	}
	msg, err := Decode(Packet{Class: ClassCFG, ID: IDCfgPRT, Payload: cfg.Marshal()})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	prt := msg.(CfgPrt)
	if prt.PortID != 1 || prt.BaudRate != 115200 || prt.InProtoMask != 3 || prt.OutProtoMask != 1 {
		t.Errorf("Decode() = %+v", prt)
	}
	if !prt.TxReadyEnabled() || !prt.TxReadyActiveHigh() {
		t.Errorf("txReady enable/polarity not decoded: %#x", prt.TxReady)
	}
	if prt.TxReadyPin() != 6 {
		t.Errorf("TxReadyPin() = %d, want 6", prt.TxReadyPin())
	}
	if prt.TxReadyThreshold() != 24 {
		t.Errorf("TxReadyThreshold() = %d, want 24", prt.TxReadyThreshold())
	}
	if prt.CharLen() != 8 || prt.Parity() != 4 || prt.StopBits() != 0 {
		t.Errorf("mode = charlen %d parity %d stop %d, want 8 4 0", prt.CharLen(), prt.Parity(), prt.StopBits())
	}
}

func TestDecodeAcks(t *testing.T) {
	msg, err := Decode(Packet{Class: ClassACK, ID: IDAckAck, Payload: []byte{0x06, 0x01}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := msg.(AckAck); !ok {
		t.Errorf("Decode(ACK-ACK) = %T", msg)
	}

	msg, err = Decode(Packet{Class: ClassACK, ID: IDAckNak, Payload: []byte{0x06, 0x01}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := msg.(AckNak); !ok {
		t.Errorf("Decode(ACK-NAK) = %T", msg)
	}
}

func TestDecodeUnknown(t *testing.T) {
	msg, err := Decode(Packet{Class: 0x0A, ID: 0x04, Payload: []byte{0xDE, 0xAD}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := msg.(Unknown)
	if !ok {
		t.Fatalf("Decode() = %T, want Unknown", msg)
	}
	if u.Class != 0x0A || u.ID != 0x04 || u.Hex != "0a040200dead" {
		t.Errorf("Unknown = %+v", u)
	}
	if got := Render(u, 2); got != "UNKNOWN: 0a040200dead" {
		t.Errorf("Render() = %q", got)
	}
}

func TestDecodeShortPayload(t *testing.T) {
	tests := []struct {
		name string
		p    Packet
	}{
		{name: "nav-pvt", p: Packet{Class: ClassNAV, ID: IDNavPVT, Payload: make([]byte, 84)}},
		{name: "nav-dop", p: Packet{Class: ClassNAV, ID: IDNavDOP, Payload: make([]byte, 4)}},
		{name: "cfg-prt poll echo", p: Packet{Class: ClassCFG, ID: IDCfgPRT, Payload: []byte{0x01}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.p)
			if !IsLengthError(err) {
				t.Fatalf("Decode() error = %v, want LengthError", err)
			}
		})
	}
}

func TestParsePacket(t *testing.T) {
	p, err := ParsePacket([]byte{0x01, 0x04, 0x02, 0x00, 0xAA, 0xBB})
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if p.Class != 0x01 || p.ID != 0x04 || len(p.Payload) != 2 {
		t.Errorf("ParsePacket() = %+v", p)
	}
	if got := p.Body(); string(got) != string([]byte{0x01, 0x04, 0x02, 0x00, 0xAA, 0xBB}) {
		t.Errorf("Body() = % x", got)
	}

	if _, err := ParsePacket([]byte{0x01, 0x04, 0x03, 0x00, 0xAA}); err == nil {
		t.Errorf("ParsePacket(length mismatch) = nil error")
	}
	if _, err := ParsePacket([]byte{0x01}); err == nil {
		t.Errorf("ParsePacket(short) = nil error")
	}
}

func TestRenderNavPvt(t *testing.T) {
	msg, _ := Decode(Packet{Class: ClassNAV, ID: IDNavPVT, Payload: pvtPayload(1000)})
	text := Render(msg, NavPvtLen)
	for _, want := range []string{
		"UBX-NAV-PVT, len: 92",
		"itow: 1000",
		"fixType: 3D-fix",
		"numSV: 12",
		"lon: 0.1 deg",
		"lat: -0.5 deg",
		"pDop: 1.56",
		"invalidLlh: y",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Render() missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "  ") {
		t.Errorf("Render() contains a run of spaces:\n%s", text)
	}
}

func TestFixTypeString(t *testing.T) {
	tests := []struct {
		f    FixType
		want string
	}{
		{FixNone, "no fix"},
		{FixDeadReckoning, "dead reckoning only"},
		{Fix2D, "2D-fix"},
		{Fix3D, "3D-fix"},
		{FixGNSSDeadReckoning, "GNSS + dead reckoning combined"},
		{FixTimeOnly, "time only fix"},
		{FixType(6), "error"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("FixType(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestCorrectionAgeString(t *testing.T) {
	if got := CorrectionAge(0).String(); got != "Not available" {
		t.Errorf("CorrectionAge(0) = %q", got)
	}
	if got := CorrectionAge(11).String(); got != "Age between 90 (inclusive) and 120 seconds" {
		t.Errorf("CorrectionAge(11) = %q", got)
	}
	for _, a := range []CorrectionAge{12, 15} {
		if got := a.String(); got != "Age greater or equal than 120 seconds" {
			t.Errorf("CorrectionAge(%d) = %q", a, got)
		}
	}
}

func TestHexRows(t *testing.T) {
	raw := make([]byte, 35)
	for i := range raw {
		raw[i] = byte(i)
	}
	rows := HexRows(raw)
	if len(rows) != 3 {
		t.Fatalf("HexRows() returned %d rows, want 3", len(rows))
	}
	if rows[0] != "000102030405060708090a0b0c0d0e0f" {
		t.Errorf("rows[0] = %q", rows[0])
	}
	if rows[2] != "202122" {
		t.Errorf("rows[2] = %q", rows[2])
	}
}

func TestRenderAnnouncedLength(t *testing.T) {
	tests := []struct {
		name    string
		p       Packet
		wantLen string
	}{
		{"nav-pvt", Packet{Class: ClassNAV, ID: IDNavPVT, Payload: pvtPayload(1000)}, "UBX-NAV-PVT, len: 92"},
		{"nav-pvt extended", Packet{Class: ClassNAV, ID: IDNavPVT, Payload: append(pvtPayload(1000), 0, 0, 0, 0, 0, 0, 0, 0)}, "UBX-NAV-PVT, len: 100"},
		{"nav-dop extended", Packet{Class: ClassNAV, ID: IDNavDOP, Payload: make([]byte, NavDopLen+2)}, "UBX-NAV-DOP, len: 20,"},
		{"cfg-prt", Packet{Class: ClassCFG, ID: IDCfgPRT, Payload: OutputUBX.Marshal()}, "UBX-CFG-PRT, len: 20,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(tt.p)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := Render(msg, len(tt.p.Payload)); !strings.HasPrefix(got, tt.wantLen) {
				t.Errorf("Render() = %q, want prefix %q", got, tt.wantLen)
			}
		})
	}
}

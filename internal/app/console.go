// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

// messageRate is the CFG-MSG rate used by "enable": one message every ten
// navigation solutions.
const messageRate = 10

const usage = "usage:" +
	"\n\tport - polls the configuration for uart port (UBX-CFG-PRT)" +
	"\n\toutput none - disable output on uart port (UBX-CFG-PRT)" +
	"\n\toutput ubx - enable ubx output on uart port (UBX-CFG-PRT)" +
	"\n\tenable pvt - (re)enable UBX-NAV-PVT message (UBX-CFG-MSG)" +
	"\n\tenable dop - (re)enable UBX-NAV-DOP message (UBX-CFG-MSG)" +
	"\n\tenable pvtdop - (re)enable both messages in single uart write" +
	"\n\tnmea - disable GGA, GLL, GSA, GSV, RMC and VTG (UBX-CFG-MSG)" +
	"\n\tpms [full|balanced|interval|aggressive1|aggressive2|aggressive4] - power mode (UBX-CFG-PMS)" +
	"\n\trecord on|off - start or stop recording PVT/DOP bundles" +
	"\n\texit, :q - quit"

var powerModes = map[string]ubx.PowerMode{
	"full":        ubx.PowerFull,
	"balanced":    ubx.PowerBalanced,
	"interval":    ubx.PowerInterval,
	"aggressive1": ubx.PowerAggressive1Hz,
	"aggressive2": ubx.PowerAggressive2Hz,
	"aggressive4": ubx.PowerAggressive4Hz,
}

// execute runs one console command. It returns true when the collector
// should stop.
func (c *Collector) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.Join(fields, " ") {
	case "help":
		c.logLine(usage)
	case "exit", ":q":
		return true
	case "port":
		c.send(ubx.Command{Name: "UBX-CFG-PRT", Frames: [][]byte{ubx.PollPortConfig(ubx.PortUART1)}})
	case "output none":
		c.send(ubx.Command{Name: "UBX-CFG-PRT", Frames: [][]byte{ubx.SetPortConfig(ubx.OutputNone)}})
	case "output ubx":
		c.send(ubx.Command{Name: "UBX-CFG-PRT", Frames: [][]byte{ubx.SetPortConfig(ubx.OutputUBX)}})
	case "enable pvt":
		c.send(ubx.Command{Name: "UBX-CFG-MSG", Frames: [][]byte{
			ubx.SetMessageRate(ubx.ClassNAV, ubx.IDNavPVT, messageRate),
		}})
	case "enable dop":
		c.send(ubx.Command{Name: "UBX-CFG-MSG", Frames: [][]byte{
			ubx.SetMessageRate(ubx.ClassNAV, ubx.IDNavDOP, messageRate),
		}})
	case "enable pvtdop":
		c.send(ubx.Command{Name: "UBX-CFG-MSG", Frames: [][]byte{
			ubx.SetMessageRate(ubx.ClassNAV, ubx.IDNavPVT, messageRate),
			ubx.SetMessageRate(ubx.ClassNAV, ubx.IDNavDOP, messageRate),
		}})
	case "nmea":
		// one write per sentence type
		for _, f := range ubx.DisableNMEA() {
			c.send(ubx.Command{Name: "UBX-CFG-MSG", Frames: [][]byte{f}})
		}
	case "record on":
		c.startRecording()
	case "record off":
		if c.rec == nil {
			c.logLine("not recording")
			return false
		}
		c.stopRecording()
	default:
		if fields[0] == "pms" && len(fields) <= 2 {
			c.powerMode(fields[1:])
			return false
		}
		c.logf("unknown command: %q", line)
	}
	return false
}

func (c *Collector) powerMode(args []string) {
	// 0x03 on the wire; see ubx.PowerMode for tools that sent 0x05
	mode := ubx.PowerAggressive1Hz
	if len(args) == 1 {
		m, ok := powerModes[args[0]]
		if !ok {
			c.logf("unknown power mode: %q", args[0])
			return
		}
		mode = m
	}
	c.send(ubx.Command{Name: fmt.Sprintf("UBX-CFG-PMS (%s)", mode), Frames: [][]byte{ubx.SetPowerMode(mode)}})
}

func (c *Collector) send(cmd ubx.Command) {
	if err := c.writer.Send(cmd); err != nil {
		c.logf("%v", err)
		c.metrics.CommandSent(err)
	}
}

func (c *Collector) startRecording() {
	if c.rec != nil {
		c.logLine("recording is already started")
		return
	}
	rec, err := openRecording(c.cfg.RecordPath)
	if err != nil {
		c.logf("%v", err)
		return
	}
	c.rec = rec
	c.session.Correlator().Attach(rec)
	c.logf("recording started, %s, next bundle %d", rec.path, c.session.Correlator().Seq())
}

func (c *Collector) stopRecording() {
	c.session.Correlator().Detach()
	if err := c.rec.Close(); err != nil {
		c.logf("%v", err)
	}
	c.logf("recording stopped, %s written to %s", humanize.Bytes(c.rec.Bytes()), c.rec.path)
	c.rec = nil
}

// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"io"
	"time"

	"go.uber.org/ratelimit"

	"github.com/relabs-tech/gnss_collector/internal/ubx"
)

const commandQueueLen = 32

// commandWriter owns the write side of the receiver port. Commands are
// written one at a time from a single goroutine, at most one per interval,
// so a burst from the console does not overrun the receiver's input buffer.
type commandWriter struct {
	w       io.Writer
	limiter ratelimit.Limiter
	queue   chan ubx.Command
	done    chan struct{}

	logf   func(format string, args ...any)
	result func(err error)
}

// newCommandWriter starts the writer goroutine. An interval of zero or less
// disables pacing. result is called after every write attempt.
func newCommandWriter(w io.Writer, interval time.Duration, logf func(string, ...any), result func(error)) *commandWriter {
	limiter := ratelimit.NewUnlimited()
	if interval > 0 {
		limiter = ratelimit.New(1, ratelimit.Per(interval), ratelimit.WithoutSlack)
	}
	cw := &commandWriter{
		w:       w,
		limiter: limiter,
		queue:   make(chan ubx.Command, commandQueueLen),
		done:    make(chan struct{}),
		logf:    logf,
		result:  result,
	}
	go cw.run()
	return cw
}

func (cw *commandWriter) run() {
	defer close(cw.done)
	for cmd := range cw.queue {
		cw.limiter.Take()
		err := cw.write(cmd)
		if err != nil {
			cw.logf("%v", err)
		} else {
			cw.logf("%s", cmd)
		}
		if cw.result != nil {
			cw.result(err)
		}
	}
}

func (cw *commandWriter) write(cmd ubx.Command) error {
	// all frames of a command go out in one write
	if _, err := cw.w.Write(cmd.Bytes()); err != nil {
		return &WriteError{Command: cmd.Name, Err: err}
	}
	return nil
}

// Send queues a command without blocking.
func (cw *commandWriter) Send(cmd ubx.Command) error {
	select {
	case cw.queue <- cmd:
		return nil
	default:
		return &WriteError{Command: cmd.Name, Err: errQueueFull}
	}
}

// Close writes any queued commands and stops the goroutine. Send must not
// be called after Close.
func (cw *commandWriter) Close() {
	close(cw.queue)
	<-cw.done
}

package slider

import "time"

type pendingClick struct {
	seq     int
	control string
	at      time.Time
	single  func()
}

// ClickDetector tells single clicks from double clicks. A press starts a
// pending single click; a second press on the same control within the delay
// cancels it and runs the double click instead. The host calls Resolve once
// the delay has elapsed.
type ClickDetector struct {
	delay   time.Duration
	seq     int
	pending *pendingClick
}

// NewClickDetector creates a detector with the given delay.
func NewClickDetector(delay time.Duration) *ClickDetector {
	return &ClickDetector{delay: delay}
}

// Delay returns the double click window.
func (d *ClickDetector) Delay() time.Duration {
	return d.delay
}

// Press registers a press on control at now. It returns the sequence number
// to pass to Resolve and whether a single click is pending. A pending click
// on another control is flushed first.
func (d *ClickDetector) Press(control string, now time.Time, single, double func()) (seq int, pending bool) {
	if p := d.pending; p != nil {
		if p.control == control && now.Sub(p.at) <= d.delay {
			d.pending = nil
			if double != nil {
				double()
			}
			return 0, false
		}
		d.pending = nil
		if p.single != nil {
			p.single()
		}
	}

	d.seq++
	d.pending = &pendingClick{seq: d.seq, control: control, at: now, single: single}
	return d.seq, true
}

// Resolve runs the pending single click if seq is still the latest press.
// Stale sequence numbers are ignored.
func (d *ClickDetector) Resolve(seq int) bool {
	p := d.pending
	if p == nil || p.seq != seq {
		return false
	}
	d.pending = nil
	if p.single != nil {
		p.single()
	}
	return true
}

// Pending reports whether a single click is waiting.
func (d *ClickDetector) Pending() bool {
	return d.pending != nil
}

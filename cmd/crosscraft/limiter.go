package main

import "time"

// frameLimiter paces the loop to a frame rate cap.
type frameLimiter struct {
	target time.Duration
	next   time.Time
}

// newFrameLimiter returns a limiter for fps frames per second; zero disables it.
func newFrameLimiter(fps int) *frameLimiter {
	l := &frameLimiter{}
	if fps > 0 {
		l.target = time.Second / time.Duration(fps)
	}
	return l
}

// Wait blocks until the next frame is due. It sleeps most of the interval and
// spins the last 200µs, which is far more precise at high caps.
func (l *frameLimiter) Wait() {
	if l.target == 0 {
		return
	}
	if l.next.IsZero() {
		l.next = time.Now().Add(l.target)
	} else {
		l.next = l.next.Add(l.target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// Resync after a hitch instead of racing to catch up.
	if late := -time.Until(l.next); late > l.target {
		l.next = time.Now().Add(l.target)
	}
}

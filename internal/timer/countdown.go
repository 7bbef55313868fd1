package timer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Countdown is a purely presentational ticking display for an attempt's
// remaining time. It never enforces expiry; the server stays the authority
// on whether a submission is late.
type Countdown struct {
	total   time.Duration
	started time.Time
	now     func() time.Time
}

// New parses an "HH:MM" session duration and starts the countdown.
func New(duration string) (*Countdown, error) {
	return newWithClock(duration, time.Now)
}

func newWithClock(duration string, now func() time.Time) (*Countdown, error) {
	total, err := ParseDuration(duration)
	if err != nil {
		return nil, err
	}
	return &Countdown{total: total, started: now(), now: now}, nil
}

// ParseDuration converts an "HH:MM" string into a time.Duration.
func ParseDuration(raw string) (time.Duration, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid duration %q, want HH:MM", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid duration %q, want HH:MM", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid duration %q, want HH:MM", raw)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

// Remaining returns the time left, floored at zero.
func (c *Countdown) Remaining() time.Duration {
	remaining := c.total - c.now().Sub(c.started)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the display has reached zero.
func (c *Countdown) Expired() bool {
	return c.Remaining() == 0
}

// Display renders the remaining time as HH:MM:SS.
func (c *Countdown) Display() string {
	seconds := int(c.Remaining().Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// Ticks emits the display string once per second until the countdown hits
// zero or ctx is canceled. The channel is closed on exit.
func (c *Countdown) Ticks(ctx context.Context) <-chan string {
	out := make(chan string, 1)
	out <- c.Display()

	go func() {
		defer close(out)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- c.Display():
				case <-ctx.Done():
					return
				}
				if c.Expired() {
					return
				}
			}
		}
	}()
	return out
}

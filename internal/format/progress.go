package format

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

const (
	// maxETA caps estimates so a stalled unit does not print absurd values.
	maxETA = 24 * time.Hour
	// rateSmoothing is the weight of the newest sample in the rate EMA.
	rateSmoothing = 0.3
)

// ProgressState tracks the completion fraction of a fixed set of units.
type ProgressState struct {
	progresses []float64
	numUnits   int
}

// NewProgressState returns a state tracking numUnits units, all at zero.
func NewProgressState(numUnits int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, max(numUnits, 0)),
		numUnits:   max(numUnits, 0),
	}
}

// Update records the fraction of unit index. Out-of-range indices are
// ignored and values are clamped to [0, 1].
func (s *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(s.progresses) {
		return
	}
	s.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean fraction across all units.
func (s *ProgressState) CalculateAverage() float64 {
	if s.numUnits == 0 {
		return 0
	}
	var total float64
	for _, p := range s.progresses {
		total += p
	}
	return total / float64(s.numUnits)
}

// ProgressWithETA extends ProgressState with a smoothed completion rate used
// to estimate the remaining time. It is safe for concurrent use.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	// progressRate is the smoothed fraction completed per second.
	progressRate float64
}

// NewProgressWithETA returns a tracker for numUnits units.
func NewProgressWithETA(numUnits int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numUnits),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a unit's fraction and returns the new average along
// with the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = rateSmoothing*rate + (1-rateSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.eta(avg)
}

// GetETA returns the current estimate without recording anything.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eta(p.CalculateAverage())
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

func (p *ProgressWithETA) eta(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1 {
		return 0
	}
	secs := (1 - avg) / p.progressRate
	if math.IsInf(secs, 0) || math.IsNaN(secs) || secs > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(secs * float64(time.Second))
}

// FormatETA renders an estimate compactly: "45s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders a bar of length runes for a fraction in [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  50.00% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

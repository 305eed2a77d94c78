package tui

// sparkRunes maps eight levels to block elements.
var sparkRunes = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer keeps the most recent samples up to a fixed capacity.
type RingBuffer struct {
	data  []float64
	next  int
	count int
}

// NewRingBuffer creates a buffer holding up to capacity samples (at least 1).
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(1, capacity))}
}

// Push appends v, evicting the oldest sample when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.next] = v
	r.next = (r.next + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of stored samples.
func (r *RingBuffer) Len() int { return r.count }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.next-1+len(r.data))%len(r.data)]
}

// Values returns the samples oldest first.
func (r *RingBuffer) Values() []float64 {
	out := make([]float64, r.count)
	first := (r.next - r.count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(first+i)%len(r.data)]
	}
	return out
}

// Sparkline renders percentages (0..100) as one block rune each, keeping the
// newest width values.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		level := int(min(100, max(0, v)) / 100 * 7)
		runes[i] = sparkRunes[level]
	}
	return string(runes)
}

package progress

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/agbru/headergen/internal/partition"
)

// Kind tags a Message.
type Kind int

const (
	// KindProgress reports files written so far in the unit's range.
	KindProgress Kind = iota
	// KindDone reports that the whole range was written.
	KindDone
	// KindError reports that the unit stopped on a failure.
	KindError
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindDone:
		return "done"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Message is one worker-to-coordinator message.
type Message struct {
	Kind Kind
	// JobIndex is the coordinator's index of the emitting job. It is filled
	// in by the coordinator when multiplexing unit channels.
	JobIndex int
	Group    string
	Range    partition.Range
	// Completed and Total count files within the unit's range.
	Completed int
	Total     int
	// Text is the human-readable progress line.
	Text string
	// Reason carries the failure message of a KindError message.
	Reason string
}

// NewProgress builds a progress message for a unit writing into dir.
func NewProgress(group, dir string, r partition.Range, completed int) Message {
	total := r.Len()
	return Message{
		Kind:      KindProgress,
		Group:     group,
		Range:     r,
		Completed: completed,
		Total:     total,
		Text: fmt.Sprintf("Wrote %d/%d files in %s (range %d-%d)",
			completed, total, filepath.Clean(dir), r.Start, r.End),
	}
}

// Done builds the completion message.
func Done(group string, r partition.Range) Message {
	return Message{Kind: KindDone, Group: group, Range: r, Completed: r.Len(), Total: r.Len()}
}

// Failed builds the failure message carrying err's text verbatim.
func Failed(group string, r partition.Range, err error) Message {
	return Message{Kind: KindError, Group: group, Range: r, Total: r.Len(), Reason: err.Error()}
}

// Fraction returns Completed/Total in [0, 1].
func (m Message) Fraction() float64 {
	if m.Total <= 0 {
		return 0
	}
	return min(1, float64(m.Completed)/float64(m.Total))
}

// wireMessage is the JSON form exchanged with out-of-process consumers.
type wireMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// MarshalJSON encodes the message as {"type":..., "message":...}.
func (m Message) MarshalJSON() ([]byte, error) {
	w := wireMessage{Type: m.Kind.String()}
	switch m.Kind {
	case KindProgress:
		w.Message = m.Text
	case KindError:
		w.Message = m.Reason
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire form. Only Kind and the text or reason are
// recovered.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case "progress":
		*m = Message{Kind: KindProgress, Text: w.Message}
	case "done":
		*m = Message{Kind: KindDone}
	case "error":
		*m = Message{Kind: KindError, Reason: w.Message}
	default:
		return fmt.Errorf("unknown message type %q", w.Type)
	}
	return nil
}

// Stride returns the progress reporting interval for a range of the given
// length: at most about 20 reports per range.
func Stride(rangeLen int) int {
	return max(1, rangeLen/20)
}

// ShouldReport reports whether index i of range r gets a progress message:
// the first index, the last index, and every Stride(r.Len()) from the start.
func ShouldReport(r partition.Range, i int) bool {
	return i == r.Start || i == r.End || (i-r.Start)%Stride(r.Len()) == 0
}

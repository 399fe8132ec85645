package machine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Event describes one applied instruction, observed before it was applied.
type Event struct {
	Step        int
	Head        int
	State       State
	Instruction Instruction
	WindowStart int
	Window      []bool
}

type Tracer func(Event)

func (m *Machine) event(inst Instruction) Event {
	ev := Event{
		Step:        m.Steps,
		Head:        m.Head,
		State:       m.State,
		Instruction: inst,
	}
	if m.WindowRadius <= 0 {
		return ev
	}
	// only cells already materialized are read, so observing never grows the tape
	lo, hi := m.Tape.Bounds()
	ev.WindowStart = m.Head - m.WindowRadius
	ev.Window = make([]bool, 2*m.WindowRadius+1)
	for i := range ev.Window {
		pos := ev.WindowStart + i
		if pos < lo || pos > hi {
			continue
		}
		bit, err := m.Tape.Read(pos)
		if err == nil {
			ev.Window[i] = bit
		}
	}
	return ev
}

type Style uint8

const (
	StyleNone Style = iota
	StyleFormal
	StyleVisual
	StyleVisualFormal
)

func ParseStyle(str string) (Style, error) {
	switch strings.ToLower(str) {
	case "", "none":
		return StyleNone, nil
	case "formal":
		return StyleFormal, nil
	case "visual":
		return StyleVisual, nil
	case "visual-formal", "visualformal":
		return StyleVisualFormal, nil
	}
	return StyleNone, fmt.Errorf("unknown trace style: %q", str)
}

func (s Style) String() string {
	switch s {
	case StyleNone:
		return "none"
	case StyleFormal:
		return "formal"
	case StyleVisual:
		return "visual"
	case StyleVisualFormal:
		return "visual-formal"
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

func (s Style) MarshalText() ([]byte, error) {
	if s > StyleVisualFormal {
		return nil, fmt.Errorf("bad trace style: %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(text []byte) error {
	style, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// Visual renders the window with the head cell bracketed.
func (e Event) Visual() string {
	var sb strings.Builder
	for i, bit := range e.Window {
		open, close := " ", " "
		if e.WindowStart+i == e.Head {
			open, close = "[", "]"
		}
		sb.WriteString(open)
		sb.WriteByte('0' + byte(bitNumber(bit)))
		sb.WriteString(close)
	}
	return sb.String()
}

func (e Event) Format(style Style) string {
	switch style {
	case StyleFormal:
		return fmt.Sprintf("Head: %d | %s", e.Head, e.Instruction)
	case StyleVisual:
		return e.Visual()
	case StyleVisualFormal:
		return fmt.Sprintf("%s | Head: %d | %s", e.Visual(), e.Head, e.Instruction)
	}
	return ""
}

// LogTracer logs every event at debug level.
func LogTracer(logger *slog.Logger, style Style) Tracer {
	return func(ev Event) {
		if style == StyleNone {
			return
		}
		logger.LogAttrs(context.Background(), slog.LevelDebug, "step",
			slog.Int("step", ev.Step),
			slog.String("trace", ev.Format(style)),
		)
	}
}

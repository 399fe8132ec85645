package machine

import "fmt"

type Movement uint8

const (
	Stay Movement = iota
	Left
	Right
)

// Offset is the head displacement of the movement.
func (m Movement) Offset() int {
	switch m {
	case Left:
		return -1
	case Right:
		return 1
	}
	return 0
}

func (m Movement) String() string {
	switch m {
	case Stay:
		return "S"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Movement(%d)", uint8(m))
}

func (m Movement) MarshalText() ([]byte, error) {
	if m > Right {
		return nil, fmt.Errorf("bad movement: %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Movement) UnmarshalText(text []byte) error {
	mv, err := ParseMovement(string(text))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}

func ParseMovement(str string) (Movement, error) {
	switch str {
	case "S", "s", "stay", "Stay":
		return Stay, nil
	case "L", "l", "left", "Left":
		return Left, nil
	case "R", "r", "right", "Right":
		return Right, nil
	}
	return Stay, fmt.Errorf("unknown movement: %q", str)
}

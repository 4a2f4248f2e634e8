package screen

// State is a screen's position in idle → loading → success | error.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

package emulator

// State is the execution state of the machine.
type State uint8

// Machine states.
const (
	Running       State = iota // executing instructions
	WaitingForKey              // blocked by LD Vx, K until a key is pressed
	Halted                     // stopped by a fatal error
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

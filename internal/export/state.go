package export

import "fmt"

// State описывает жизненный цикл задания экспорта.
type State int

const (
	StateIdle State = iota
	StateRendering
	StateEncoding
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateEncoding:
		return "encoding"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether the state is final for a job.
func IsTerminal(s State) bool {
	switch s {
	case StateCompleted, StateCancelled, StateFailed:
		return true
	default:
		return false
	}
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateRendering || to == StateCancelled || to == StateFailed
	case StateRendering:
		return to == StateEncoding || to == StateCancelled || to == StateFailed
	case StateEncoding:
		return to == StateCompleted || to == StateCancelled || to == StateFailed
	default:
		// Терминальные состояния не покидаем
		return false
	}
}

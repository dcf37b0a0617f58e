package downloadmgr

// EventKind is the type of an Event
type EventKind uint8

const (
	EventValidate EventKind = iota
	EventProgress
	EventComplete
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventValidate:
		return "validate"
	case EventProgress:
		return "progress"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is emitted while validating and downloading. Done and Total are only set
// for progress events, Detail carries a stage specific value (a file name, the java executable)
type Event struct {
	Kind   EventKind
	Stage  string
	Done   int64
	Total  int64
	Detail string
	Err    error
}

// EventFunc receives events. It is called from multiple goroutines
type EventFunc func(Event)

// Emit calls f if it is set
func (f EventFunc) Emit(e Event) {
	if f != nil {
		f(e)
	}
}

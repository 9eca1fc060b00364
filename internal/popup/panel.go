package popup

// State is the display state of one panel. A panel is in exactly one state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// Panel is a section of the popup with its status line.
type Panel struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}

// SetLoading replaces the panel state with loading.
func (p *Panel) SetLoading(message string) {
	*p = Panel{State: StateLoading, Message: message}
}

// SetLoaded replaces the panel state with loaded.
func (p *Panel) SetLoaded(message string) {
	*p = Panel{State: StateLoaded, Message: message}
}

// SetError replaces the panel state with error.
func (p *Panel) SetError(message string) {
	*p = Panel{State: StateError, Message: message}
}

// Reset returns the panel to idle.
func (p *Panel) Reset() {
	*p = Panel{State: StateIdle}
}

func newPanel() Panel {
	return Panel{State: StateIdle}
}

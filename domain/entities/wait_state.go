package entities

// WaitState represents the element condition an existence wait targets
type WaitState string

const (
	WaitStateVisible  WaitState = "visible"
	WaitStateHidden   WaitState = "hidden"
	WaitStateAttached WaitState = "attached"
	WaitStateDetached WaitState = "detached"
)

// Valid reports whether s is one of the known states.
func (s WaitState) Valid() bool {
	switch s {
	case WaitStateVisible, WaitStateHidden, WaitStateAttached, WaitStateDetached:
		return true
	}
	return false
}

package autotoggle

import "fmt"

// State represents the control loop's state
type State string

const (
	// StateStarting means the loop has not yet resolved its initial device
	// set or spawned the activity source.
	StateStarting State = "starting"
	// StateWatching means the loop is consuming stabilized decisions and
	// applying them to the connected lights.
	StateWatching = "watching"
	// StateExiting is terminal. It is reached on a fatal setup failure, a
	// require-device policy violation, or a clean shutdown.
	StateExiting = "exiting"
)

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next
func (s *State) Update(next State, f func() error) error {
	type checkFunc func() error
	m := map[State]checkFunc{
		StateStarting: s.toStarting,
		StateWatching: s.toWatching,
		StateExiting:  s.toExiting,
	}

	err := m[next]()
	if err != nil {
		return err
	}

	err = f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toStarting() error {
	return fmt.Errorf("invalid state: the loop cannot return to starting")
}

func (s *State) toWatching() error {
	if *s != StateStarting {
		return fmt.Errorf("invalid state: the loop is already past starting")
	}
	return nil
}

func (s *State) toExiting() error {
	if *s == StateExiting {
		return fmt.Errorf("invalid state: the loop has already exited")
	}
	return nil
}

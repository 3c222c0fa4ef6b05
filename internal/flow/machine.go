package flow

import (
	"errors"
	"sync"
)

// Step identifies one screen of the booking flow
type Step string

const (
	StepWelcome      Step = "welcome"
	StepExcursion    Step = "excursion"
	StepSeats        Step = "seats"
	StepPassenger    Step = "passenger"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
	StepAdmin        Step = "admin"
)

// primarySteps is the forward-only chain of the booking flow
var primarySteps = []Step{
	StepWelcome,
	StepExcursion,
	StepSeats,
	StepPassenger,
	StepPayment,
	StepConfirmation,
}

var (
	// ErrAdminUnavailable is returned when the admin panel is entered
	// from the welcome screen or while already on it
	ErrAdminUnavailable = errors.New("admin panel is not reachable from this step")

	// ErrRestartUnavailable is returned when restart is invoked from
	// any step other than confirmation
	ErrRestartUnavailable = errors.New("restart is only available from the confirmation step")

	// ErrNotInAdmin is returned when leaving the admin panel without
	// being on it
	ErrNotInAdmin = errors.New("not currently on the admin panel")
)

// Machine is the strict linear state machine over the booking steps.
// The six primary steps advance forward only; admin is a side branch
// reachable from any primary step except welcome and exits back to
// welcome, not to the step it was entered from.
type Machine struct {
	mu      sync.Mutex
	current Step
}

// NewMachine creates a machine positioned on the welcome step
func NewMachine() *Machine {
	return &Machine{current: StepWelcome}
}

// Current returns the active step
func (m *Machine) Current() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves one step forward along the primary chain and returns
// the resulting step. Advancing from confirmation or from the admin
// panel is a no-op.
func (m *Machine) Advance() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, step := range primarySteps {
		if step == m.current && i < len(primarySteps)-1 {
			m.current = primarySteps[i+1]
			break
		}
	}
	return m.current
}

// EnterAdmin switches to the admin panel. Allowed from any primary
// step except welcome.
func (m *Machine) EnterAdmin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == StepWelcome || m.current == StepAdmin {
		return ErrAdminUnavailable
	}
	m.current = StepAdmin
	return nil
}

// ExitAdmin leaves the admin panel and returns to welcome
func (m *Machine) ExitAdmin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != StepAdmin {
		return ErrNotInAdmin
	}
	m.current = StepWelcome
	return nil
}

// Restart returns to welcome. Only available from confirmation; the
// caller is responsible for clearing booking selection state.
func (m *Machine) Restart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != StepConfirmation {
		return ErrRestartUnavailable
	}
	m.current = StepWelcome
	return nil
}

// Set positions the machine on a known step, used when resuming a flow
// persisted in the visitor session. Unknown steps reset to welcome.
func (m *Machine) Set(step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if step == StepAdmin {
		m.current = StepAdmin
		return
	}
	for _, s := range primarySteps {
		if s == step {
			m.current = step
			return
		}
	}
	m.current = StepWelcome
}

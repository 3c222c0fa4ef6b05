package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMachineStartsAtWelcome(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StepWelcome, m.Current())
}

func TestAdvanceWalksPrimaryChainForwardOnly(t *testing.T) {
	m := NewMachine()

	expected := []Step{StepExcursion, StepSeats, StepPassenger, StepPayment, StepConfirmation}
	for _, want := range expected {
		assert.Equal(t, want, m.Advance())
	}

	// Advancing past confirmation is a no-op
	assert.Equal(t, StepConfirmation, m.Advance())
	assert.Equal(t, StepConfirmation, m.Advance())
}

func TestEnterAdmin(t *testing.T) {
	tests := []struct {
		name    string
		from    Step
		wantErr error
	}{
		{name: "not from welcome", from: StepWelcome, wantErr: ErrAdminUnavailable},
		{name: "from excursion", from: StepExcursion},
		{name: "from seats", from: StepSeats},
		{name: "from passenger", from: StepPassenger},
		{name: "from payment", from: StepPayment},
		{name: "from confirmation", from: StepConfirmation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.Set(tt.from)

			err := m.EnterAdmin()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, m.Current())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StepAdmin, m.Current())
		})
	}
}

func TestEnterAdminWhileInAdminFails(t *testing.T) {
	m := NewMachine()
	m.Set(StepSeats)
	require.NoError(t, m.EnterAdmin())
	assert.ErrorIs(t, m.EnterAdmin(), ErrAdminUnavailable)
}

func TestAdvanceFromAdminIsNoOp(t *testing.T) {
	m := NewMachine()
	m.Set(StepSeats)
	require.NoError(t, m.EnterAdmin())
	assert.Equal(t, StepAdmin, m.Advance())
}

func TestExitAdminReturnsToWelcome(t *testing.T) {
	m := NewMachine()
	m.Set(StepPayment)
	require.NoError(t, m.EnterAdmin())

	require.NoError(t, m.ExitAdmin())
	// Back to welcome, not to the step admin was entered from
	assert.Equal(t, StepWelcome, m.Current())
}

func TestExitAdminOutsideAdminFails(t *testing.T) {
	m := NewMachine()
	m.Set(StepSeats)
	assert.ErrorIs(t, m.ExitAdmin(), ErrNotInAdmin)
}

func TestRestartOnlyFromConfirmation(t *testing.T) {
	m := NewMachine()
	m.Set(StepPayment)
	assert.ErrorIs(t, m.Restart(), ErrRestartUnavailable)

	m.Set(StepConfirmation)
	require.NoError(t, m.Restart())
	assert.Equal(t, StepWelcome, m.Current())
}

func TestSetUnknownStepResetsToWelcome(t *testing.T) {
	m := NewMachine()
	m.Set(Step("checkout"))
	assert.Equal(t, StepWelcome, m.Current())

	m.Set(StepAdmin)
	assert.Equal(t, StepAdmin, m.Current())
}

package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/handlers"
	"github.com/verdantlab/gardenbot/internal/flow"
)

// Dispatcher routes incoming updates to state-specific handlers.
type Dispatcher struct {
	machine       flow.Machine
	stateHandlers map[flow.State]handlers.Handler
	log           *slog.Logger
	mu            sync.RWMutex
}

// NewDispatcher creates a Dispatcher with an empty handlers registry.
func NewDispatcher(machine flow.Machine, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		machine:       machine,
		stateHandlers: make(map[flow.State]handlers.Handler),
		log:           log,
	}
}

// RegisterStateHandler registers a handler for the provided state.
func (d *Dispatcher) RegisterStateHandler(s flow.State, h handlers.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stateHandlers[s] = h
}

// Dispatch routes the update based on the user's current state.
func (d *Dispatcher) Dispatch(c telebot.Context) error {
	if c == nil || c.Sender() == nil {
		d.log.Warn("cannot dispatch without sender information")
		return nil
	}

	ctx := context.Background()
	userID := c.Sender().ID

	currentState := flow.StateIdle
	userState, err := d.machine.GetState(ctx, userID)
	if err != nil {
		if !errors.Is(err, flow.ErrStateNotFound) {
			return err
		}
	} else if userState != nil {
		currentState = userState.CurrentState
	}

	handler := d.getHandler(currentState)
	if handler == nil {
		d.log.Info("no handler registered for state", "state", currentState, "user_id", userID)
		return nil
	}

	return handler(c)
}

func (d *Dispatcher) getHandler(s flow.State) handlers.Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stateHandlers[s]
}

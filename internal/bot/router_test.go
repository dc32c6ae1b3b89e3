package bot

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/handlers"
	"github.com/verdantlab/gardenbot/internal/flow"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// routeContext implements just the surface the router touches.
type routeContext struct {
	telebot.Context
	text     string
	callback *telebot.Callback
}

func (c *routeContext) Text() string                { return c.text }
func (c *routeContext) Callback() *telebot.Callback { return c.callback }
func (c *routeContext) Sender() *telebot.User       { return &telebot.User{ID: 42} }

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	machine := flow.NewMachine(flow.NewMemoryStorage(), testLogger())
	dispatcher := NewDispatcher(machine, testLogger())
	return NewRouter(dispatcher, testLogger())
}

func TestRouterRoutesCommands(t *testing.T) {
	r := newTestRouter(t)

	var handled string
	r.RegisterCommand("/garden", func(c telebot.Context) error {
		handled = "/garden"
		return nil
	})

	require.NoError(t, r.Route(&routeContext{text: "/garden"}))
	assert.Equal(t, "/garden", handled)
}

func TestRouterMatchesCallbackPrefix(t *testing.T) {
	r := newTestRouter(t)

	var got string
	r.RegisterCallback("garden_checkin", func(c telebot.Context) error {
		got = c.Callback().Data
		return nil
	})

	ctx := &routeContext{callback: &telebot.Callback{Data: "garden_checkin:habit-7"}}
	require.NoError(t, r.Route(ctx))
	assert.Equal(t, "garden_checkin:habit-7", got)
}

func TestRouterStripsCallbackMarker(t *testing.T) {
	r := newTestRouter(t)

	handled := false
	r.RegisterCallback("feed_like", func(c telebot.Context) error {
		handled = true
		return nil
	})

	ctx := &routeContext{callback: &telebot.Callback{Data: "\ffeed_like:post-1"}}
	require.NoError(t, r.Route(ctx))
	assert.True(t, handled)
}

func TestRouterFallsBackToDefault(t *testing.T) {
	r := newTestRouter(t)

	var got string
	r.SetDefault(func(c telebot.Context) error {
		got = c.Text()
		return nil
	})

	require.NoError(t, r.Route(&routeContext{text: "🌱 Garden"}))
	assert.Equal(t, "🌱 Garden", got)
}

func TestRouterAppliesMiddlewareInOrder(t *testing.T) {
	r := newTestRouter(t)

	var order []string
	mw := func(name string) handlers.Middleware {
		return func(next handlers.Handler) handlers.Handler {
			return func(c telebot.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	r.Use(mw("outer"))
	r.Use(mw("inner"))
	r.RegisterCommand("/feed", func(c telebot.Context) error {
		order = append(order, "handler")
		return nil
	})

	require.NoError(t, r.Route(&routeContext{text: "/feed"}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

// Package callbacks turns display affordances into durable, replayable
// tokens. A registration pairs a statically declared handler key with the
// serialized argument tuple it was offered with; redeeming the token looks
// the handler up again and feeds it the stored arguments plus a fresh
// invocation context. Registrations survive process restarts.
package callbacks

import (
	"context"
	"encoding/json"
	"fmt"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

// Invocation is who activated the affordance, and where.
type Invocation struct {
	UserId    string
	ChannelId string
}

// Outcome is what a redeemed callback produced for the chat layer.
type Outcome struct {
	// Display replaces or follows the original message, when set.
	Display *models.Display

	// Message is a one-line reply for the channel.
	Message string

	// Affordances to register for Display, when it offers new ones.
	Affordances []models.Affordance

	// Remove retires this registration; RemoveGroup retires every
	// registration of the originating display.
	Remove      bool
	RemoveGroup bool
}

// Action is the two-step handler shape: the invocation context first, the
// stored argument tuple second. The split keeps the typed call site at
// registration time apart from the untyped persistence boundary.
type Action func(ctx context.Context, inv Invocation) func(args json.RawMessage) *Outcome

type Handler struct {
	Emoji  string
	Action Action
}

// Store persists registrations. Backed by postgres in production, by a map
// in tests.
type Store interface {
	Put(ctx context.Context, reg *models.CallbackRegistration) error
	Get(ctx context.Context, token string) (*models.CallbackRegistration, bool, error)
	Delete(ctx context.Context, token string) error
	DeleteGroup(ctx context.Context, group string) error
}

// Registry maps handler keys to handlers. Built once at startup with the
// full handler table and injected.
type Registry struct {
	store    Store
	handlers map[string]Handler
}

func New(store Store, handlers map[string]Handler) *Registry {
	return &Registry{store: store, handlers: handlers}
}

// Register persists one registration per affordance, all sharing a group,
// and returns what the chat layer should render. Affordances naming an
// unknown handler key are a programming error.
func (r *Registry) Register(ctx context.Context, channelId string, affordances []models.Affordance) ([]models.RenderedAffordance, error) {
	if len(affordances) == 0 {
		return nil, nil
	}

	group := uuid.NewV4().String()
	rendered := make([]models.RenderedAffordance, 0, len(affordances))

	for _, aff := range affordances {
		handler, ok := r.handlers[aff.Key]
		if !ok {
			return nil, fmt.Errorf("unknown callback handler %q", aff.Key)
		}

		args, err := json.Marshal(aff.Args)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s args: %w", aff.Key, err)
		}

		reg := &models.CallbackRegistration{
			Token:      uuid.NewV4().String(),
			ChannelId:  channelId,
			Group:      group,
			HandlerKey: aff.Key,
			Args:       args,
		}
		if err := r.store.Put(ctx, reg); err != nil {
			return nil, err
		}

		rendered = append(rendered, models.RenderedAffordance{
			Token: reg.Token,
			Emoji: handler.Emoji,
		})
	}

	return rendered, nil
}

// Call redeems a token. An expired or deleted token is a no-op, not a
// fault: the nil outcome tells the caller nothing happened.
func (r *Registry) Call(ctx context.Context, token string, inv Invocation) (*Outcome, error) {
	reg, ok, err := r.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	handler, ok := r.handlers[reg.HandlerKey]
	if !ok {
		// A registration from a handler table this build no longer has.
		log.WithField("handler", reg.HandlerKey).Warn("stale callback registration")
		_ = r.store.Delete(ctx, token)
		return nil, nil
	}

	outcome := handler.Action(ctx, inv)(reg.Args)
	if outcome == nil {
		return nil, nil
	}

	switch {
	case outcome.RemoveGroup:
		if err := r.store.DeleteGroup(ctx, reg.Group); err != nil {
			return nil, err
		}
	case outcome.Remove:
		if err := r.store.Delete(ctx, token); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

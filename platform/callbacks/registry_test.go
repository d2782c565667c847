package callbacks

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

type memStore struct {
	regs map[string]*models.CallbackRegistration
}

func newMemStore() *memStore {
	return &memStore{regs: make(map[string]*models.CallbackRegistration)}
}

func (m *memStore) Put(_ context.Context, reg *models.CallbackRegistration) error {
	m.regs[reg.Token] = reg
	return nil
}

func (m *memStore) Get(_ context.Context, token string) (*models.CallbackRegistration, bool, error) {
	reg, ok := m.regs[token]
	return reg, ok, nil
}

func (m *memStore) Delete(_ context.Context, token string) error {
	delete(m.regs, token)
	return nil
}

func (m *memStore) DeleteGroup(_ context.Context, group string) error {
	for token, reg := range m.regs {
		if reg.Group == group {
			delete(m.regs, token)
		}
	}
	return nil
}

type probeArgs struct {
	Square int `json:"square"`
}

// probe builds a handler that records invocations and returns a canned
// outcome.
func probe(calls *[]probeArgs, outcome *Outcome) Handler {
	return Handler{
		Emoji: "✅",
		Action: func(ctx context.Context, inv Invocation) func(args json.RawMessage) *Outcome {
			return func(raw json.RawMessage) *Outcome {
				var args probeArgs
				_ = json.Unmarshal(raw, &args)
				*calls = append(*calls, args)
				return outcome
			}
		},
	}
}

func TestRegisterAndCall(t *testing.T) {
	var calls []probeArgs
	store := newMemStore()
	r := New(store, map[string]Handler{
		"probe": probe(&calls, &Outcome{Message: "done"}),
	})

	rendered, err := r.Register(context.Background(), "chan", []models.Affordance{
		{Key: "probe", Args: probeArgs{Square: 7}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rendered) != 1 || rendered[0].Token == "" || rendered[0].Emoji != "✅" {
		t.Fatalf("rendered = %+v", rendered)
	}

	out, err := r.Call(context.Background(), rendered[0].Token, Invocation{UserId: "u", ChannelId: "chan"})
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || out.Message != "done" {
		t.Fatalf("outcome = %+v", out)
	}
	if len(calls) != 1 || calls[0].Square != 7 {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestRegisterUnknownKey(t *testing.T) {
	r := New(newMemStore(), map[string]Handler{})
	_, err := r.Register(context.Background(), "chan", []models.Affordance{{Key: "nope"}})
	if err == nil {
		t.Fatal("unknown handler key should error")
	}
}

func TestCallUnknownTokenIsNoop(t *testing.T) {
	var calls []probeArgs
	r := New(newMemStore(), map[string]Handler{
		"probe": probe(&calls, &Outcome{}),
	})

	out, err := r.Call(context.Background(), "missing-token", Invocation{})
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Fatalf("outcome = %+v, want nil", out)
	}
	if len(calls) != 0 {
		t.Fatal("no handler should run")
	}
}

func TestCallRemoveRetiresOnlyOneToken(t *testing.T) {
	var calls []probeArgs
	store := newMemStore()
	r := New(store, map[string]Handler{
		"probe": probe(&calls, &Outcome{Remove: true}),
	})

	rendered, err := r.Register(context.Background(), "chan", []models.Affordance{
		{Key: "probe"},
		{Key: "probe"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Call(context.Background(), rendered[0].Token, Invocation{}); err != nil {
		t.Fatal(err)
	}

	// The redeemed token is gone, its sibling survives.
	if out, _ := r.Call(context.Background(), rendered[0].Token, Invocation{}); out != nil {
		t.Fatal("removed token should be a no-op")
	}
	if out, _ := r.Call(context.Background(), rendered[1].Token, Invocation{}); out == nil {
		t.Fatal("sibling token should still work")
	}
}

func TestCallRemoveGroupRetiresSiblings(t *testing.T) {
	var calls []probeArgs
	store := newMemStore()
	r := New(store, map[string]Handler{
		"probe": probe(&calls, &Outcome{RemoveGroup: true}),
	})

	rendered, err := r.Register(context.Background(), "chan", []models.Affordance{
		{Key: "probe"},
		{Key: "probe"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Call(context.Background(), rendered[0].Token, Invocation{}); err != nil {
		t.Fatal(err)
	}

	for _, ra := range rendered {
		if out, _ := r.Call(context.Background(), ra.Token, Invocation{}); out != nil {
			t.Fatalf("token %s should be retired with its group", ra.Token)
		}
	}
}

func TestCallSurvivingRegistration(t *testing.T) {
	var calls []probeArgs
	r := New(newMemStore(), map[string]Handler{
		"probe": probe(&calls, &Outcome{}),
	})

	rendered, err := r.Register(context.Background(), "chan", []models.Affordance{{Key: "probe"}})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if out, _ := r.Call(context.Background(), rendered[0].Token, Invocation{}); out == nil {
			t.Fatalf("call %d: registration should survive", i)
		}
	}
	if len(calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(calls))
	}
}

func TestCallStaleHandlerKey(t *testing.T) {
	store := newMemStore()
	store.regs["tok"] = &models.CallbackRegistration{
		Token:      "tok",
		HandlerKey: "retired_handler",
	}
	r := New(store, map[string]Handler{})

	out, err := r.Call(context.Background(), "tok", Invocation{})
	if err != nil || out != nil {
		t.Fatalf("out = %+v, err = %v", out, err)
	}
	if _, ok := store.regs["tok"]; ok {
		t.Fatal("stale registration should be cleaned up")
	}
}

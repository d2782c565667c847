package game

import (
	"context"
	"os"
	"testing"

	"github.com/go-pg/pg/v10"
	uuid "github.com/satori/go.uuid"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/platform/board"
	"github.com/boardgamehq/monopoly-engine/platform/database"
)

// testDB connects to the database named by TEST_DB_ADDR. Tests using it are
// skipped when the variable is unset, so the suite stays runnable without
// postgres.
func testDB(t *testing.T) *pg.DB {
	t.Helper()

	addr := os.Getenv("TEST_DB_ADDR")
	if addr == "" {
		t.Skip("TEST_DB_ADDR not set")
	}

	user := os.Getenv("TEST_DB_USER")
	if user == "" {
		user = "postgres"
	}

	db := pg.Connect(&pg.Options{
		Addr:     addr,
		User:     user,
		Password: os.Getenv("TEST_DB_PASSWORD"),
		Database: os.Getenv("TEST_DB_NAME"),
	})
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("connecting test database: %v", err)
	}
	if err := database.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedTradeGame creates a started game in a fresh channel with two players
// and one deed owned by the first.
func seedTradeGame(t *testing.T, db *pg.DB, aliceBalance, bobBalance int) string {
	t.Helper()
	ctx := context.Background()
	channel := uuid.NewV4().String()

	game := &models.Game{ChannelId: channel, Started: true}
	if _, err := db.ModelContext(ctx, game).Insert(); err != nil {
		t.Fatal(err)
	}

	players := []*models.Player{
		{UserId: "alice", ChannelId: channel, Balance: aliceBalance},
		{UserId: "bob", ChannelId: channel, Balance: bobBalance},
	}
	for _, p := range players {
		if _, err := db.ModelContext(ctx, p).Insert(); err != nil {
			t.Fatal(err)
		}
	}

	deed := &models.Deed{ChannelId: channel, DeedName: "Brown 1", UserId: "alice"}
	if _, err := db.ModelContext(ctx, deed).Insert(); err != nil {
		t.Fatal(err)
	}

	return channel
}

func reloadPlayer(t *testing.T, db *pg.DB, userId, channel string) *models.Player {
	t.Helper()
	p := &models.Player{UserId: userId, ChannelId: channel}
	if err := db.ModelContext(context.Background(), p).WherePK().Select(); err != nil {
		t.Fatal(err)
	}
	return p
}

func reloadDeed(t *testing.T, db *pg.DB, channel string) *models.Deed {
	t.Helper()
	d := &models.Deed{ChannelId: channel, DeedName: "Brown 1"}
	if err := db.ModelContext(context.Background(), d).WherePK().Select(); err != nil {
		t.Fatal(err)
	}
	return d
}

func tradeData(channel string, toItems []TradeItem) *TradeData {
	return &TradeData{
		ChannelId: channel,
		From:      TradeParty{Id: "alice", Name: "Alice"},
		To:        TradeParty{Id: "bob", Name: "Bob"},
		FromItems: []TradeItem{{Key: board.TradableKey("Brown 1"), Amount: 1}},
		ToItems:   toItems,
	}
}

func TestExecuteTradeAllOrNothing(t *testing.T) {
	db := testDB(t)
	channel := seedTradeGame(t, db, 1500, 100)
	svc := NewService(db, nil, board.New(), nil)

	// The deed leg succeeds, then bob cannot afford the currency leg.
	data := tradeData(channel, []TradeItem{{Key: board.KeyDollar, Amount: 500}})

	display, msg, err := svc.ExecuteTrade(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}
	if display == nil || display.Title != string(TradeFailed) {
		t.Fatalf("display = %+v", display)
	}
	if msg != "not enough money" {
		t.Errorf("msg = %q", msg)
	}

	// Neither leg persisted.
	if got := reloadDeed(t, db, channel); got.UserId != "alice" {
		t.Errorf("deed owner = %q, want alice", got.UserId)
	}
	if got := reloadPlayer(t, db, "alice", channel); got.Balance != 1500 {
		t.Errorf("alice balance = %d, want 1500", got.Balance)
	}
	if got := reloadPlayer(t, db, "bob", channel); got.Balance != 100 {
		t.Errorf("bob balance = %d, want 100", got.Balance)
	}
}

func TestExecuteTradeTransfersBothSides(t *testing.T) {
	db := testDB(t)
	channel := seedTradeGame(t, db, 1500, 100)
	svc := NewService(db, nil, board.New(), nil)

	data := tradeData(channel, []TradeItem{{Key: board.KeyDollar, Amount: 60}})

	display, msg, err := svc.ExecuteTrade(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}
	if display == nil || display.Title != string(TradeAccepted) {
		t.Fatalf("display = %+v", display)
	}
	if msg != "Trade complete" {
		t.Errorf("msg = %q", msg)
	}

	if got := reloadDeed(t, db, channel); got.UserId != "bob" {
		t.Errorf("deed owner = %q, want bob", got.UserId)
	}
	if got := reloadPlayer(t, db, "alice", channel); got.Balance != 1560 {
		t.Errorf("alice balance = %d, want 1560", got.Balance)
	}
	if got := reloadPlayer(t, db, "bob", channel); got.Balance != 40 {
		t.Errorf("bob balance = %d, want 40", got.Balance)
	}
}

package game

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-pg/pg/v10"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
	"github.com/boardgamehq/monopoly-engine/platform/board"
)

// Trade expressions: `<items> <> <items>`, each side a comma-separated list
// of `$<amount>` or `[<amount>x ]<free-text name>`. Parsing fails closed:
// one bad item invalidates the whole expression.

const (
	tradeSidesSep = "<>"
	tradeItemSep  = ","
)

var (
	dollarRe = regexp.MustCompile(`^\$([0-9]+)$`)
	itemRe   = regexp.MustCompile(`^(?:([0-9]+)x )?(.+)$`)
)

type TradeStatus string

const (
	TradePending  TradeStatus = "Pending"
	TradeAccepted TradeStatus = "Accepted"
	TradeCanceled TradeStatus = "Canceled"
	TradeFailed   TradeStatus = "Failed"
)

type TradeItem struct {
	Key    board.TradableKey `json:"key"`
	Amount int               `json:"amount"`
}

type TradeParty struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// TradeData is the pending trade payload persisted with the accept and
// cancel callback registrations. FromItems flow initiator -> partner,
// ToItems the other way.
type TradeData struct {
	ChannelId string `json:"channel_id"`
	GameId    int    `json:"game_id"`

	From TradeParty `json:"from"`
	To   TradeParty `json:"to"`

	FromItems []TradeItem `json:"from_items"`
	ToItems   []TradeItem `json:"to_items"`
}

// parseTradeItems resolves one side of a trade expression through the
// tradable index.
func parseTradeItems(b *board.Board, side string) ([]TradeItem, bool) {
	var items []TradeItem

	for _, raw := range strings.Split(side, tradeItemSep) {
		term := strings.TrimSpace(raw)
		if term == "" {
			continue
		}

		if m := dollarRe.FindStringSubmatch(term); m != nil {
			amount, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, false
			}
			items = append(items, TradeItem{Key: board.KeyDollar, Amount: amount})
			continue
		}

		m := itemRe.FindStringSubmatch(term)
		if m == nil {
			return nil, false
		}

		tradable, ok := b.ResolveTradable(m[2])
		if !ok {
			return nil, false
		}

		amount := 1
		if m[1] != "" {
			amount, _ = strconv.Atoi(m[1])
		}
		items = append(items, TradeItem{Key: tradable.Key(), Amount: amount})
	}

	return items, true
}

// ParseTrade parses a whole trade expression into both item lists.
func ParseTrade(b *board.Board, expr string) (from, to []TradeItem, ok bool) {
	sides := strings.Split(expr, tradeSidesSep)
	if len(sides) != 2 {
		return nil, nil, false
	}

	from, ok = parseTradeItems(b, sides[0])
	if !ok {
		return nil, nil, false
	}
	to, ok = parseTradeItems(b, sides[1])
	if !ok {
		return nil, nil, false
	}
	return from, to, true
}

// Trade builds a pending trade between the invoking user and a partner.
// The returned display carries the accept and cancel affordances; nothing
// moves until the partner accepts.
func (s *Service) Trade(ctx context.Context, userId, channelId, partnerId, expr string) (*models.Display, error) {
	fromItems, toItems, ok := ParseTrade(s.Board, expr)
	if !ok {
		return nil, fault.User("bad trade arguments")
	}

	gctx, err := s.GetContext(ctx, userId, channelId)
	if err != nil {
		return nil, err
	}

	partner := &models.Player{
		UserId:    partnerId,
		ChannelId: channelId,
		GameId:    gctx.Game.GameId,
	}
	err = s.DB.ModelContext(ctx, partner).WherePK().Select()
	if err == pg.ErrNoRows {
		return nil, fault.User("%s is not playing in current game", s.memberName(ctx, partnerId))
	}
	if err != nil {
		return nil, fmt.Errorf("loading trade partner: %w", err)
	}

	trader, ok, err := s.Members.Member(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fault.User("could not find your member identity")
	}

	data := &TradeData{
		ChannelId: channelId,
		GameId:    gctx.Game.GameId,
		From:      TradeParty{Id: trader.Id, Name: trader.Name},
		To:        TradeParty{Id: partnerId, Name: s.memberName(ctx, partnerId)},
		FromItems: fromItems,
		ToItems:   toItems,
	}

	display := s.TradeDisplay(data, TradePending)
	display.Callbacks = []models.Affordance{
		{Key: models.CallbackAcceptTrade, Args: data},
		{Key: models.CallbackCancelTrade, Args: data},
	}
	return display, nil
}

// ExecuteTrade performs an accepted trade: both players are re-validated,
// then every item on each side transfers inside one transaction. Any single
// failed leg rolls back the whole trade.
func (s *Service) ExecuteTrade(ctx context.Context, data *TradeData) (*models.Display, string, error) {
	from, err := s.PlayerInGame(ctx, data.From.Id, data.ChannelId, data.GameId)
	if err != nil {
		return nil, "", err
	}
	to, err := s.PlayerInGame(ctx, data.To.Id, data.ChannelId, data.GameId)
	if err != nil {
		return nil, "", err
	}

	err = s.DB.RunInTransaction(ctx, func(tx *pg.Tx) error {
		// Lock both rows in a stable order so two crossing trades cannot
		// deadlock.
		rows := []*models.Player{from, to}
		sort.Slice(rows, func(i, j int) bool { return rows[i].UserId < rows[j].UserId })
		for _, p := range rows {
			if err := tx.ModelContext(ctx, p).WherePK().For("UPDATE").Select(); err != nil {
				return fmt.Errorf("locking player %s: %w", p.UserId, err)
			}
		}

		give := func(items []TradeItem, from, to *models.Player) error {
			for _, item := range items {
				tradable, ok := s.Board.Tradable(item.Key)
				if !ok {
					return fmt.Errorf("unknown tradable key %q", item.Key)
				}
				if err := tradable.Give(ctx, tx, from, to, item.Amount); err != nil {
					return err
				}
			}
			return nil
		}

		if err := give(data.FromItems, from, to); err != nil {
			return err
		}
		return give(data.ToItems, to, from)
	})
	if err != nil {
		if fault.IsUser(err) {
			return s.TradeDisplay(data, TradeFailed), err.Error(), nil
		}
		return nil, "", err
	}

	return s.TradeDisplay(data, TradeAccepted), "Trade complete", nil
}

// TradeDisplay renders the two-sided item lists under the given status.
func (s *Service) TradeDisplay(data *TradeData, status TradeStatus) *models.Display {
	item := func(i TradeItem) string {
		if i.Key == board.KeyDollar {
			return board.Dollar(i.Amount)
		}
		name := "?"
		if t, ok := s.Board.Tradable(i.Key); ok {
			name = t.DisplayName()
		}
		return fmt.Sprintf("%dx %s", i.Amount, name)
	}

	list := func(items []TradeItem) string {
		if len(items) == 0 {
			return "--------"
		}
		lines := make([]string, len(items))
		for i, it := range items {
			lines[i] = item(it)
		}
		return strings.Join(lines, "\n")
	}

	display := &models.Display{
		Title:       string(status),
		Description: "Both parties needs to accept trade",
	}
	display.AddInline(data.From.Name, list(data.FromItems))
	display.AddInline(data.To.Name, list(data.ToItems))
	return display
}

package callbacks

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
	"github.com/boardgamehq/monopoly-engine/platform/board"
	"github.com/boardgamehq/monopoly-engine/platform/game"
)

// DefaultHandlers is the full handler table of the engine. Removal policy
// varies per handler: buying a house keeps the button alive for the next
// house, trade buttons retire the whole pair, everything else is one-shot.
func DefaultHandlers(svc *game.Service) map[string]Handler {
	return map[string]Handler{
		models.CallbackRollAgain: {
			Emoji: "\U0001f3c3",
			Action: func(ctx context.Context, inv Invocation) func(json.RawMessage) *Outcome {
				return func(json.RawMessage) *Outcome {
					display, err := svc.Roll(ctx, inv.UserId, inv.ChannelId)
					if err != nil {
						return &Outcome{Message: userReason(err, "cannot roll again"), Remove: true}
					}
					return &Outcome{
						Display:     display,
						Affordances: display.Callbacks,
						Remove:      true,
					}
				}
			},
		},

		models.CallbackBuy: {
			Emoji: "\U0001f4b5",
			Action: squareAction(svc, true, func(ctx context.Context, square board.Square, player *models.Player) (string, error) {
				p, ok := board.AsPurchasable(square)
				if !ok {
					return "", fault.User("cannot buy property on square %d", square.Position())
				}
				return p.Buy(ctx, svc.DB, player)
			}),
		},

		models.CallbackBuyHouse: {
			Emoji: "\U0001f3e0",
			Action: squareAction(svc, false, func(ctx context.Context, square board.Square, player *models.Player) (string, error) {
				d, ok := board.AsDeed(square)
				if !ok {
					return "", fault.User("cannot buy house on square %d", square.Position())
				}
				return d.BuyHouse(ctx, svc.DB, player)
			}),
		},

		models.CallbackBuyHotel: {
			Emoji: "\U0001f3e9",
			Action: squareAction(svc, true, func(ctx context.Context, square board.Square, player *models.Player) (string, error) {
				d, ok := board.AsDeed(square)
				if !ok {
					return "", fault.User("cannot buy hotel on square %d", square.Position())
				}
				return d.BuyHotel(ctx, svc.DB, player)
			}),
		},

		models.CallbackMortgage: {
			Emoji: "↩️",
			Action: squareAction(svc, true, func(ctx context.Context, square board.Square, player *models.Player) (string, error) {
				m, ok := board.AsMortgageable(square)
				if !ok {
					return "", fault.User("cannot mortgage property on square %d", square.Position())
				}
				return m.Mortgage(ctx, svc.DB, player)
			}),
		},

		models.CallbackAcceptTrade: {
			Emoji:  "✅",
			Action: acceptTrade(svc),
		},

		models.CallbackCancelTrade: {
			Emoji:  "❌",
			Action: cancelTrade(svc),
		},
	}
}

// squareAction builds the shared shape of the buy / build / mortgage
// handlers: resolve the invoker as a player, find the square the
// registration points at, run the operation.
func squareAction(svc *game.Service, remove bool, op func(ctx context.Context, square board.Square, player *models.Player) (string, error)) Action {
	return func(ctx context.Context, inv Invocation) func(json.RawMessage) *Outcome {
		return func(raw json.RawMessage) *Outcome {
			var args models.SquareArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				log.WithError(err).Warn("bad callback args")
				return &Outcome{Remove: true}
			}

			gctx, err := svc.GetContext(ctx, inv.UserId, inv.ChannelId)
			if err != nil {
				return &Outcome{Message: userReason(err, "something went wrong"), Remove: remove}
			}

			square, ok := svc.Board.FindSquare(args.Square)
			if !ok {
				return &Outcome{
					Message: fmt.Sprintf("nothing to do on square %d", args.Square),
					Remove:  remove,
				}
			}

			msg, err := op(ctx, square, gctx.Player)
			return &Outcome{
				Message: fault.Collapse(msg, err, "something went wrong"),
				Remove:  remove,
			}
		}
	}
}

func acceptTrade(svc *game.Service) Action {
	return func(ctx context.Context, inv Invocation) func(json.RawMessage) *Outcome {
		return func(raw json.RawMessage) *Outcome {
			var data game.TradeData
			if err := json.Unmarshal(raw, &data); err != nil {
				log.WithError(err).Warn("bad trade payload")
				return &Outcome{RemoveGroup: true}
			}

			// Only the receiving party accepts; anyone else is ignored.
			if inv.UserId != data.To.Id {
				return nil
			}

			display, msg, err := svc.ExecuteTrade(ctx, &data)
			if err != nil {
				return &Outcome{Message: userReason(err, "trade failed"), RemoveGroup: true}
			}
			return &Outcome{Display: display, Message: msg, RemoveGroup: true}
		}
	}
}

func cancelTrade(svc *game.Service) Action {
	return func(ctx context.Context, inv Invocation) func(json.RawMessage) *Outcome {
		return func(raw json.RawMessage) *Outcome {
			var data game.TradeData
			if err := json.Unmarshal(raw, &data); err != nil {
				log.WithError(err).Warn("bad trade payload")
				return &Outcome{RemoveGroup: true}
			}

			// Either party may cancel; third parties are ignored.
			if inv.UserId != data.From.Id && inv.UserId != data.To.Id {
				return nil
			}

			return &Outcome{
				Display:     svc.TradeDisplay(&data, game.TradeCanceled),
				RemoveGroup: true,
			}
		}
	}
}

// userReason shows user-facing reasons verbatim and hides internal faults
// behind a generic line, logging them at the boundary.
func userReason(err error, fallback string) string {
	if fault.IsUser(err) {
		return err.Error()
	}
	log.WithError(err).Error("callback failed")
	return fallback
}

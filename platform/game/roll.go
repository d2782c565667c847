package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pg/pg/v10"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
	"github.com/boardgamehq/monopoly-engine/platform/board"
)

// rollOutcome is what the pure roll rules decided; the transaction wrapper
// applies landing effects and persistence around it.
type rollOutcome struct {
	Die1, Die2 int
	Notes      []string

	// Moved reports whether the player advanced and the landed square's
	// effects apply.
	Moved bool

	// RollAgain records that doubles earned another roll. Provisional: the
	// landing can still jail the player, which forfeits it.
	RollAgain bool
}

// offerRollAgain decides, after landing effects ran, whether the doubles
// bonus survives. A landing that jails the player forfeits the extra roll.
func offerRollAgain(out rollOutcome, p *models.Player) bool {
	return out.RollAgain && p.Jailed == 0
}

// applyRoll runs the jail, doubles and movement rules against the player
// row in memory. Mutations are not persisted here.
//
// Jail resolution order: the get-out-of-jail flag wins, then escaping with
// doubles, then the forced release with a fine on the third jailed turn.
func applyRoll(p *models.Player, die1, die2 int) rollOutcome {
	out := rollOutcome{Die1: die1, Die2: die2}
	note := func(line string) { out.Notes = append(out.Notes, line) }

	doubles := die1 == die2

	if p.GetOutOfJail {
		note("Released from Jail!")
		p.Jailed = 0
		p.GetOutOfJail = false
	}

	switch {
	case doubles && p.Jailed > 0:
		note("Escaped from Jail!")
		p.Jailed = 0
	case p.Jailed >= 3:
		note(fmt.Sprintf("Released from Jail! That will be a %s fine", board.Dollar(JailFine)))
		p.Jailed = 0
		p.Balance -= JailFine
	case doubles:
		p.DoubleStreak++
	default:
		p.DoubleStreak = 0
	}

	switch {
	case p.Jailed > 0:
		note("Still in jail...")
		p.Jailed++
	case p.DoubleStreak >= 3:
		note("3 doubles in a row. You are going to Jail!")
		p.DoubleStreak = 0
		board.SendToJail(p)
	default:
		p.CurrentSquare += die1 + die2
		if p.CurrentSquare >= board.MaxSquares {
			note(fmt.Sprintf("Passed start! Here's %s", board.Dollar(PassStartBonus)))
			p.Balance += PassStartBonus
			p.CurrentSquare %= board.MaxSquares
		}
		out.Moved = true
	}

	out.RollAgain = p.DoubleStreak > 0 && p.Jailed == 0

	return out
}

// Roll advances the invoking player by one turn. The cool-down gate, dice
// application, movement, landing effects and the player save all run in one
// transaction so concurrent rolls cannot interleave between the check and
// the write.
func (s *Service) Roll(ctx context.Context, userId, channelId string) (*models.Display, error) {
	gctx, err := s.GetContext(ctx, userId, channelId)
	if err != nil {
		return nil, err
	}
	game := gctx.Game

	display := new(models.Display)

	err = s.DB.RunInTransaction(ctx, func(tx *pg.Tx) error {
		player := &models.Player{
			UserId:    userId,
			ChannelId: channelId,
			GameId:    game.GameId,
		}
		if err := tx.ModelContext(ctx, player).WherePK().For("UPDATE").Select(); err != nil {
			return fmt.Errorf("locking player: %w", err)
		}

		now := s.Clock()
		if now.Before(player.NextTurn) {
			return fault.User("you can't do that yet")
		}

		out := applyRoll(player, s.Dice(), s.Dice())

		if out.Moved {
			if square, ok := s.Board.FindSquare(player.CurrentSquare); ok {
				bctx := &board.Context{
					Ctx:     ctx,
					DB:      tx,
					Game:    game,
					Player:  player,
					Members: s.Members,
				}

				card, err := square.Display(bctx)
				if err != nil {
					return err
				}
				display.Color = card.Color
				display.Fields = card.Fields
				display.Callbacks = card.Callbacks

				fields, err := square.Land(bctx)
				if err != nil {
					return err
				}
				display.Fields = append(display.Fields, fields...)
			}
		}

		if offerRollAgain(out, player) {
			out.Notes = append(out.Notes, "Rolled doubles, you may go again")
			display.Callbacks = append(display.Callbacks, models.Affordance{
				Key: models.CallbackRollAgain,
			})
		} else {
			player.NextTurn = now.Add(rollCooldown)
		}

		if _, err := tx.ModelContext(ctx, player).WherePK().Update(); err != nil {
			return fmt.Errorf("saving player: %w", err)
		}

		display.Title = fmt.Sprintf("%s rolling", s.memberName(ctx, userId))
		display.Description = fmt.Sprintf("Rolled %d and %d\n%s",
			out.Die1, out.Die2, strings.Join(out.Notes, "\n"))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return display, nil
}

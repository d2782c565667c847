package game

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/platform/board"
)

// Show resolves a free-text term to something displayable: a square (by
// position or name) or a playing member. Returns nil when nothing matches;
// that is absence, not failure.
func (s *Service) Show(ctx context.Context, userId, channelId, term string) (*models.Display, error) {
	gctx, err := s.GetContext(ctx, userId, channelId)
	if err != nil {
		return nil, err
	}

	bctx := &board.Context{
		Ctx:     ctx,
		DB:      s.DB,
		Game:    gctx.Game,
		Members: s.Members,
	}

	// A bare integer shows the square at that position directly.
	if pos, err := strconv.Atoi(term); err == nil {
		if square, ok := s.Board.FindSquare(pos); ok {
			return square.Display(bctx)
		}
	}

	// Freshly built per query: square terms plus live member names.
	targets := s.Board.SearchTargets()

	members, err := s.Members.GameMembers(ctx, channelId, gctx.Game.GameId)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		member := m
		targets = append(targets, board.SearchTarget{
			Term: member.Name,
			Displayable: displayableFunc(func(bc *board.Context) (*models.Display, error) {
				return s.memberDisplay(bc.Ctx, bc.Game, member)
			}),
		})
	}

	terms := make([]string, len(targets))
	for i, t := range targets {
		terms[i] = t.Term
	}

	i, ok := board.BestMatch(term, terms)
	if !ok {
		return nil, nil
	}
	return targets[i].Displayable.Display(bctx)
}

type displayableFunc func(ctx *board.Context) (*models.Display, error)

func (f displayableFunc) Display(ctx *board.Context) (*models.Display, error) {
	return f(ctx)
}

// memberDisplay shows a member's progress in the game.
func (s *Service) memberDisplay(ctx context.Context, game *models.Game, member models.Member) (*models.Display, error) {
	player := &models.Player{
		UserId:    member.Id,
		ChannelId: game.ChannelId,
		GameId:    game.GameId,
	}
	err := s.DB.ModelContext(ctx, player).WherePK().Select()
	if err == pg.ErrNoRows {
		player = &models.Player{}
	} else if err != nil {
		return nil, fmt.Errorf("loading member player: %w", err)
	}

	display := new(models.Display)
	display.AddInline("Name", member.Name)
	display.AddInline("Balance", board.Dollar(player.Balance))
	display.AddInline("Jailed", yesNo(player.Jailed > 0))
	display.AddInline("Position", strconv.Itoa(player.CurrentSquare))
	display.AddInline("Next turn", nextTurnText(s.Clock(), player.NextTurn))
	return display, nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func nextTurnText(now, next time.Time) string {
	if !next.After(now) {
		return "now"
	}
	return "in " + next.Sub(now).Round(time.Second).String()
}

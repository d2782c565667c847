package game

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
	"github.com/boardgamehq/monopoly-engine/platform/board"
	"github.com/boardgamehq/monopoly-engine/platform/cache"
)

// NewGame creates the channel's next game in the not-started state. Only
// allowed once the previous game has ended.
func (s *Service) NewGame(ctx context.Context, userId, channelId string) (string, error) {
	if !isBank(userId) {
		return "", fault.User("you do not have permission to create new games")
	}

	current, err := s.FindChannelCurrentGame(ctx, channelId)
	if err != nil {
		return "", err
	}
	if current != nil && !current.Ended {
		return "", fault.User("there is an ongoing game in this channel")
	}

	nextId := 0
	if current != nil {
		nextId = current.GameId + 1
	}

	game := &models.Game{ChannelId: channelId, GameId: nextId}
	if _, err := s.DB.ModelContext(ctx, game).Insert(); err != nil {
		return "", fmt.Errorf("creating game: %w", err)
	}

	if s.Cache != nil {
		cache.SetEx(s.Cache, curGameKey(channelId), game.GameId, curGameTTL)
	}
	return "Done", nil
}

// StartGame flips the current game to started.
func (s *Service) StartGame(ctx context.Context, userId, channelId string) (string, error) {
	if !isBank(userId) {
		return "", fault.User("you do not have permission to start games")
	}

	game, err := s.FindChannelCurrentGame(ctx, channelId)
	if err != nil {
		return "", err
	}
	if game == nil {
		return "", fault.User("no game in channel")
	}
	if game.Ended {
		return "", fault.User("cannot find new game")
	}
	if game.Started {
		return "", fault.User("game already started")
	}

	game.Started = true
	if _, err := s.DB.ModelContext(ctx, game).WherePK().Update(); err != nil {
		return "", fmt.Errorf("starting game: %w", err)
	}
	return "Done", nil
}

// EndGame flips the current game to ended, which unblocks creating the next
// one.
func (s *Service) EndGame(ctx context.Context, userId, channelId string) (string, error) {
	if !isBank(userId) {
		return "", fault.User("you do not have permission to end games")
	}

	game, err := s.FindChannelCurrentGame(ctx, channelId)
	if err != nil {
		return "", err
	}
	if game == nil {
		return "", fault.User("no game in channel")
	}
	if game.Ended || !game.Started {
		return "", fault.User("no active game")
	}

	game.Ended = true
	if _, err := s.DB.ModelContext(ctx, game).WherePK().Update(); err != nil {
		return "", fmt.Errorf("ending game: %w", err)
	}
	return "Done", nil
}

// Register adds the user to the current game before it starts, with the
// starting balance.
func (s *Service) Register(ctx context.Context, userId, channelId string) (string, error) {
	if !meetsPlayerConditions(userId) {
		return "", fault.User("not eligible to play")
	}

	game, err := s.FindChannelCurrentGame(ctx, channelId)
	if err != nil {
		return "", err
	}
	if game == nil {
		return "", fault.User("no game in channel")
	}
	if game.Started {
		return "", fault.User("has already started")
	}
	if game.Ended {
		return "", fault.User("game over")
	}

	player := &models.Player{
		UserId:    userId,
		ChannelId: channelId,
		GameId:    game.GameId,
		Balance:   StartingBalance,
	}
	res, err := s.DB.ModelContext(ctx, player).OnConflict("DO NOTHING").Insert()
	if err != nil {
		return "", fmt.Errorf("registering player: %w", err)
	}
	if res.RowsAffected() == 0 {
		return "", fault.User("already registered to play")
	}
	return "Done", nil
}

// GameInfo displays the current game and its roster, or nil when the
// channel has none.
func (s *Service) GameInfo(ctx context.Context, channelId string) (*models.Display, error) {
	game, err := s.FindChannelCurrentGame(ctx, channelId)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	var players []models.Player
	err = s.DB.ModelContext(ctx, &players).
		Where("channel_id = ? AND game_id = ?", channelId, game.GameId).
		Order("balance DESC").
		Select()
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	display := &models.Display{
		Title:       fmt.Sprintf("Game #%d", game.GameId),
		Description: gameStatus(game),
	}
	for _, p := range players {
		display.AddInline(s.memberName(ctx, p.UserId), board.Dollar(p.Balance))
	}
	return display, nil
}

// Games displays the channel's most recent games, newest first.
func (s *Service) Games(ctx context.Context, channelId string) (*models.Display, error) {
	var games []models.Game
	err := s.DB.ModelContext(ctx, &games).
		Where("channel_id = ?", channelId).
		Order("game_id DESC").
		Limit(5).
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	if len(games) == 0 {
		return nil, nil
	}

	display := &models.Display{Title: "Last games"}
	for i := range games {
		display.AddField(fmt.Sprintf("Game #%d", games[i].GameId), gameStatus(&games[i]))
	}
	return display, nil
}

func gameStatus(g *models.Game) string {
	switch {
	case g.Ended:
		return "Ended"
	case g.Started:
		return "In progress"
	default:
		return "Waiting for players"
	}
}

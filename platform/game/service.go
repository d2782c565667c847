// Package game is the rules engine: context resolution, the turn engine,
// game lifecycle commands, search and the trade protocol. It mutates
// persisted rows inside transactions and returns displays; it never talks
// to the chat platform itself.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
	"github.com/boardgamehq/monopoly-engine/platform/board"
	"github.com/boardgamehq/monopoly-engine/platform/cache"
)

const (
	StartingBalance = 1500
	PassStartBonus  = 200
	JailFine        = 50

	rollCooldown = time.Second
	curGameTTL   = 300
)

// Directory is the chat-platform lookup boundary the engine depends on.
type Directory interface {
	board.Directory

	// GameMembers resolves the display identities of everyone playing in a
	// game.
	GameMembers(ctx context.Context, channelId string, gameId int) ([]models.Member, error)
}

// Service carries the injected state every operation needs. Dice and Clock
// are swappable for tests.
type Service struct {
	DB      *pg.DB
	Cache   *redis.Pool
	Board   *board.Board
	Members Directory

	Dice  func() int
	Clock func() time.Time
}

func NewService(db *pg.DB, pool *redis.Pool, b *board.Board, members Directory) *Service {
	return &Service{
		DB:      db,
		Cache:   pool,
		Board:   b,
		Members: members,
		Dice:    func() int { return rand.Intn(6) + 1 },
		Clock:   time.Now,
	}
}

// Context is the resolved environment of one player action.
type Context struct {
	Player *models.Player
	Game   *models.Game
}

// Permission stubs. Everyone may play and everyone is the bank.

func meetsPlayerConditions(_ string) bool { return true }

func isBank(_ string) bool { return true }

func curGameKey(channelId string) string {
	return "monopoly.curgame." + channelId
}

// FindChannelCurrentGame returns the channel's game with the highest game
// id, or nil when the channel never had one. The id is cached in redis;
// staleness is cosmetic since the row itself is always re-read.
func (s *Service) FindChannelCurrentGame(ctx context.Context, channelId string) (*models.Game, error) {
	if s.Cache != nil {
		if v, ok := cache.Get(s.Cache, curGameKey(channelId)); ok {
			if id, err := strconv.Atoi(v); err == nil {
				game := &models.Game{ChannelId: channelId, GameId: id}
				if err := s.DB.ModelContext(ctx, game).WherePK().Select(); err == nil {
					return game, nil
				}
			}
		}
	}

	game := new(models.Game)
	err := s.DB.ModelContext(ctx, game).
		Where("channel_id = ?", channelId).
		Order("game_id DESC").
		Limit(1).
		Select()
	if err == pg.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding current game: %w", err)
	}

	if s.Cache != nil {
		cache.SetEx(s.Cache, curGameKey(channelId), game.GameId, curGameTTL)
	}
	return game, nil
}

// GetContext resolves the invoking user into a player of the channel's
// running game. Every failure here is user-facing and happens before any
// mutation.
func (s *Service) GetContext(ctx context.Context, userId, channelId string) (*Context, error) {
	if !meetsPlayerConditions(userId) {
		return nil, fault.User("not eligible to play")
	}

	game, err := s.FindChannelCurrentGame(ctx, channelId)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fault.User("no active game in channel")
	}
	if !game.Running() {
		return nil, fault.User("no game in play")
	}

	player := &models.Player{
		UserId:    userId,
		ChannelId: channelId,
		GameId:    game.GameId,
	}
	err = s.DB.ModelContext(ctx, player).WherePK().Select()
	if err == pg.ErrNoRows {
		return nil, fault.User("not playing in current game")
	}
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}

	return &Context{Player: player, Game: game}, nil
}

// PlayerInGame re-validates a player of an explicitly identified game; used
// when redeeming callbacks whose payload carries a possibly stale game
// reference.
func (s *Service) PlayerInGame(ctx context.Context, userId, channelId string, gameId int) (*models.Player, error) {
	if !meetsPlayerConditions(userId) {
		return nil, fault.User("not eligible to play")
	}

	game := &models.Game{ChannelId: channelId, GameId: gameId}
	err := s.DB.ModelContext(ctx, game).WherePK().Select()
	if err == pg.ErrNoRows {
		return nil, fault.User("no active game in channel")
	}
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	if !game.Running() {
		return nil, fault.User("no game in play")
	}

	player := &models.Player{UserId: userId, ChannelId: channelId, GameId: gameId}
	err = s.DB.ModelContext(ctx, player).WherePK().Select()
	if err == pg.ErrNoRows {
		return nil, fault.User("not playing in current game")
	}
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	return player, nil
}

func (s *Service) memberName(ctx context.Context, userId string) string {
	if s.Members == nil {
		return "unknown user"
	}
	member, ok, err := s.Members.Member(ctx, userId)
	if err != nil || !ok {
		return "unknown user"
	}
	return member.Name
}

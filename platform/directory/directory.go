// Package directory resolves user ids to display identities. It stands in
// for the chat platform's member lookup: names come from the users table
// with a redis cache in front, since displays resolve the same few owners
// over and over.
package directory

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/platform/cache"
)

const memberTTL = 3600

type PG struct {
	DB    *pg.DB
	Cache *redis.Pool
}

func New(db *pg.DB, pool *redis.Pool) *PG {
	return &PG{DB: db, Cache: pool}
}

func memberKey(userId string) string {
	return "monopoly.member." + userId
}

func (d *PG) Member(ctx context.Context, userId string) (models.Member, bool, error) {
	if d.Cache != nil {
		if name, ok := cache.Get(d.Cache, memberKey(userId)); ok {
			return models.Member{Id: userId, Name: name}, true, nil
		}
	}

	user := &models.User{Id: userId}
	err := d.DB.ModelContext(ctx, user).WherePK().Select()
	if err == pg.ErrNoRows {
		return models.Member{}, false, nil
	}
	if err != nil {
		return models.Member{}, false, fmt.Errorf("loading user %s: %w", userId, err)
	}

	if d.Cache != nil {
		cache.SetEx(d.Cache, memberKey(userId), user.Username, memberTTL)
	}
	return models.Member{Id: user.Id, Name: user.Username}, true, nil
}

// GameMembers lists the display identities of everyone registered in the
// game. Users the directory cannot resolve are skipped.
func (d *PG) GameMembers(ctx context.Context, channelId string, gameId int) ([]models.Member, error) {
	var players []models.Player
	err := d.DB.ModelContext(ctx, &players).
		Where("channel_id = ? AND game_id = ?", channelId, gameId).
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, fmt.Errorf("loading game players: %w", err)
	}

	members := make([]models.Member, 0, len(players))
	for _, p := range players {
		member, ok, err := d.Member(ctx, p.UserId)
		if err != nil {
			return nil, err
		}
		if ok {
			members = append(members, member)
		}
	}
	return members, nil
}

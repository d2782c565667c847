package models

import "time"

// Player is one user's state inside one game. Rows are created on
// registration and mutated by every roll, purchase and trade; they are
// never deleted.
type Player struct {
	tableName struct{} `pg:"player,alias:player"`

	UserId    string `pg:"user_id,pk"`
	ChannelId string `pg:"channel_id,pk"`
	GameId    int    `pg:"game_id,pk,use_zero"`

	Balance int `pg:"balance,use_zero"`

	// Jailed counts turns spent in jail; 0 means free. At 3 the next roll
	// releases the player against a fine.
	Jailed       int `pg:"jailed,use_zero"`
	DoubleStreak int `pg:"double_streak,use_zero"`

	CurrentSquare int       `pg:"current_square,use_zero"`
	NextTurn      time.Time `pg:"next_turn"`

	// GetOutOfJail is consumed by the next roll.
	GetOutOfJail bool `pg:"exit_jail,use_zero"`
}

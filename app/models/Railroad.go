package models

// Railroad is the ownership record for one railroad square in one game.
type Railroad struct {
	tableName struct{} `pg:"railroad,alias:railroad"`

	ChannelId    string `pg:"channel_id,pk"`
	GameId       int    `pg:"game_id,pk,use_zero"`
	RailroadName string `pg:"railroad_name,pk"`

	UserId    string `pg:"user_id"`
	Mortgaged bool   `pg:"mortgaged,use_zero"`
}

package models

// Game is one monopoly game in a channel. The current game of a channel is
// the row with the highest GameId; a new one may only be created once the
// previous game has ended.
type Game struct {
	tableName struct{} `pg:"game,alias:game"`

	ChannelId string `pg:"channel_id,pk"`
	GameId    int    `pg:"game_id,pk,use_zero"`
	Started   bool   `pg:"started,use_zero"`
	Ended     bool   `pg:"ended,use_zero"`

	// ChestDeck holds the shuffled indices of community chest cards not yet
	// drawn. Refilled and reshuffled when it runs out.
	ChestDeck []int `pg:"chest_deck_json"`
}

// Running reports whether the game accepts rolls and trades.
func (g *Game) Running() bool {
	return g.Started && !g.Ended
}

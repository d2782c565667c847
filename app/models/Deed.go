package models

// Deed is the ownership record for one deed square in one game. A missing
// row means the deed is unowned.
type Deed struct {
	tableName struct{} `pg:"deed,alias:deed"`

	ChannelId string `pg:"channel_id,pk"`
	GameId    int    `pg:"game_id,pk,use_zero"`
	DeedName  string `pg:"deed_name,pk"`

	UserId string `pg:"user_id"`

	// Houses and Hotel are mutually exclusive: buying the hotel resets
	// Houses to 0.
	Houses    int  `pg:"houses,use_zero"`
	Hotel     bool `pg:"hotel,use_zero"`
	Mortgaged bool `pg:"mortgaged,use_zero"`
}

// Improved reports whether the deed carries houses or a hotel.
func (d *Deed) Improved() bool {
	return d.Hotel || d.Houses > 0
}

package models

import "encoding/json"

// CallbackRegistration is a persisted deferred action: a handler key plus
// the serialized argument tuple it was registered with, keyed by a random
// token the chat layer hands back when the affordance is activated.
type CallbackRegistration struct {
	tableName struct{} `pg:"callback_registration,alias:callback_registration"`

	Token     string `pg:"token,pk"`
	ChannelId string `pg:"channel_id"`

	// Group ties together the affordances of one display, so accepting a
	// trade can retire its cancel button too.
	Group string `pg:"group_id"`

	HandlerKey string          `pg:"handler_key"`
	Args       json.RawMessage `pg:"args_json"`
}

// Handler keys. Statically declared; the registry refuses affordances for
// keys it does not know.
// SquareArgs is the argument tuple of the buy / build / mortgage handlers.
type SquareArgs struct {
	Square int `json:"square"`
}

const (
	CallbackRollAgain   = "roll_again"
	CallbackBuy         = "buy"
	CallbackBuyHouse    = "buy_house"
	CallbackBuyHotel    = "buy_hotel"
	CallbackMortgage    = "mortgage"
	CallbackAcceptTrade = "accept_trade"
	CallbackCancelTrade = "cancel_trade"
)

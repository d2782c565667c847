package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boardgamehq/monopoly-engine/app/controllers"
)

// GameRoutes mounts the command surface: one endpoint per command plus the
// token redemption endpoint. Registered after the JWT middleware so every
// request carries an invoking identity.
func GameRoutes(a *fiber.App, cc *controllers.CommandController, cb *controllers.CallbackController) {
	route := a.Group("/game/:channel")

	route.Post("/roll", cc.Roll)
	route.Post("/trade", cc.Trade)
	route.Post("/show", cc.Show)
	route.Post("/new", cc.New)
	route.Post("/start", cc.Start)
	route.Post("/end", cc.End)
	route.Post("/register", cc.Register)
	route.Get("/info", cc.GameInfo)
	route.Get("/games", cc.ListGames)

	route.Post("/callback/:token", cb.Call)
}

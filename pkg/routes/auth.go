package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boardgamehq/monopoly-engine/app/controllers"
)

func AuthRoutes(a *fiber.App, ac *controllers.AuthController) {
	route := a.Group("/user")

	route.Post("/register", ac.CreateUser)
	route.Post("/login", ac.Login)
}

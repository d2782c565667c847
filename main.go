package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	log "github.com/sirupsen/logrus"

	"github.com/boardgamehq/monopoly-engine/app/controllers"
	"github.com/boardgamehq/monopoly-engine/pkg/routes"
	"github.com/boardgamehq/monopoly-engine/platform/board"
	"github.com/boardgamehq/monopoly-engine/platform/cache"
	"github.com/boardgamehq/monopoly-engine/platform/callbacks"
	"github.com/boardgamehq/monopoly-engine/platform/database"
	"github.com/boardgamehq/monopoly-engine/platform/directory"
	"github.com/boardgamehq/monopoly-engine/platform/game"
	"github.com/boardgamehq/monopoly-engine/platform/logging"
	"github.com/boardgamehq/monopoly-engine/platform/sockets"
)

func main() {
	logging.Init()

	db := database.PostgreSQLConnection()
	defer db.Close()
	if err := database.CreateSchema(context.Background(), db); err != nil {
		log.WithError(err).Fatal("creating schema")
	}

	pool := cache.CreateRedisPool()
	defer pool.Close()

	members := directory.New(db, pool)
	svc := game.NewService(db, pool, board.New(), members)

	registry := callbacks.New(callbacks.NewPGStore(db), callbacks.DefaultHandlers(svc))

	gateway, err := sockets.CreateSocketIOServer()
	if err != nil {
		log.WithError(err).Fatal("creating socket server")
	}
	go func() {
		if err := gateway.Serve(); err != nil {
			log.WithError(err).Fatal("socket server")
		}
	}()

	secret := []byte(os.Getenv("JWT_SECRET"))

	app := fiber.New()
	app.Use(cors.New())

	ac := &controllers.AuthController{DB: db, Secret: secret}
	routes.AuthRoutes(app, ac)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: secret,
	}))

	app.Get("/user/cur", ac.Cur)

	cc := &controllers.CommandController{Games: svc, Callbacks: registry, Sockets: gateway}
	routes.GameRoutes(app, cc, &controllers.CallbackController{Commands: cc})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":4101"
	}
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("http server")
	}
}

package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
	"github.com/boardgamehq/monopoly-engine/platform/callbacks"
	"github.com/boardgamehq/monopoly-engine/platform/game"
	"github.com/boardgamehq/monopoly-engine/platform/sockets"
)

// CommandController is the inbound command surface. It translates HTTP
// requests into engine calls, registers any offered affordances, and hands
// the resulting display to both the caller and the channel room.
type CommandController struct {
	Games     *game.Service
	Callbacks *callbacks.Registry
	Sockets   *sockets.Gateway
}

type tradeDto struct {
	Partner string `json:"partner"`
	Trade   string `json:"trade"`
}

type showDto struct {
	Term string `json:"term"`
}

func (cc *CommandController) Roll(c *fiber.Ctx) error {
	display, err := cc.Games.Roll(c.Context(), currentUserId(c), c.Params("channel"))
	if err != nil {
		return cc.fail(c, err)
	}
	return cc.sendDisplay(c, c.Params("channel"), display)
}

func (cc *CommandController) Trade(c *fiber.Ctx) error {
	dto := new(tradeDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	display, err := cc.Games.Trade(c.Context(), currentUserId(c), c.Params("channel"), dto.Partner, dto.Trade)
	if err != nil {
		return cc.fail(c, err)
	}
	return cc.sendDisplay(c, c.Params("channel"), display)
}

func (cc *CommandController) Show(c *fiber.Ctx) error {
	dto := new(showDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	display, err := cc.Games.Show(c.Context(), currentUserId(c), c.Params("channel"), dto.Term)
	if err != nil {
		return cc.fail(c, err)
	}
	if display == nil {
		return cc.sendMessage(c, c.Params("channel"), "Could not find \""+dto.Term+"\"")
	}
	return cc.sendDisplay(c, c.Params("channel"), display)
}

func (cc *CommandController) New(c *fiber.Ctx) error {
	return cc.lifecycle(c, cc.Games.NewGame)
}

func (cc *CommandController) Start(c *fiber.Ctx) error {
	return cc.lifecycle(c, cc.Games.StartGame)
}

func (cc *CommandController) End(c *fiber.Ctx) error {
	return cc.lifecycle(c, cc.Games.EndGame)
}

func (cc *CommandController) Register(c *fiber.Ctx) error {
	return cc.lifecycle(c, cc.Games.Register)
}

func (cc *CommandController) GameInfo(c *fiber.Ctx) error {
	display, err := cc.Games.GameInfo(c.Context(), c.Params("channel"))
	if err != nil {
		return cc.fail(c, err)
	}
	if display == nil {
		return cc.sendMessage(c, c.Params("channel"), "No game in channel")
	}
	return cc.sendDisplay(c, c.Params("channel"), display)
}

func (cc *CommandController) ListGames(c *fiber.Ctx) error {
	display, err := cc.Games.Games(c.Context(), c.Params("channel"))
	if err != nil {
		return cc.fail(c, err)
	}
	if display == nil {
		return cc.sendMessage(c, c.Params("channel"), "No games in channel")
	}
	return cc.sendDisplay(c, c.Params("channel"), display)
}

func (cc *CommandController) lifecycle(c *fiber.Ctx, op func(ctx context.Context, userId, channelId string) (string, error)) error {
	msg, err := op(c.Context(), currentUserId(c), c.Params("channel"))
	if err != nil {
		return cc.fail(c, err)
	}
	return cc.sendMessage(c, c.Params("channel"), msg)
}

// sendDisplay persists the display's affordances as callback registrations
// and relays the rendered result.
func (cc *CommandController) sendDisplay(c *fiber.Ctx, channelId string, display *models.Display) error {
	rendered, err := cc.Callbacks.Register(c.Context(), channelId, display.Callbacks)
	if err != nil {
		return cc.fail(c, err)
	}

	payload := fiber.Map{"display": display, "affordances": rendered}
	if cc.Sockets != nil {
		cc.Sockets.Broadcast(channelId, "display", payload)
	}
	return c.JSON(payload)
}

func (cc *CommandController) sendMessage(c *fiber.Ctx, channelId, msg string) error {
	if cc.Sockets != nil {
		cc.Sockets.Broadcast(channelId, "message", msg)
	}
	return c.JSON(fiber.Map{"message": msg})
}

// fail shows user-facing reasons verbatim; anything else is logged and
// hidden behind a 500.
func (cc *CommandController) fail(c *fiber.Ctx, err error) error {
	if fault.IsUser(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	log.WithError(err).Error("command failed")
	return c.SendStatus(fiber.StatusInternalServerError)
}

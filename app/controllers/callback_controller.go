package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boardgamehq/monopoly-engine/platform/callbacks"
)

// CallbackController redeems affordance tokens reported back by the chat
// layer.
type CallbackController struct {
	Commands *CommandController
}

func (cb *CallbackController) Call(c *fiber.Ctx) error {
	cc := cb.Commands
	channelId := c.Params("channel")

	outcome, err := cc.Callbacks.Call(c.Context(), c.Params("token"), callbacks.Invocation{
		UserId:    currentUserId(c),
		ChannelId: channelId,
	})
	if err != nil {
		return cc.fail(c, err)
	}

	// Unknown or already-consumed token: deliberately a no-op.
	if outcome == nil {
		return c.JSON(fiber.Map{"status": "noop"})
	}

	rendered, err := cc.Callbacks.Register(c.Context(), channelId, outcome.Affordances)
	if err != nil {
		return cc.fail(c, err)
	}

	payload := fiber.Map{
		"display":     outcome.Display,
		"affordances": rendered,
		"message":     outcome.Message,
	}
	if cc.Sockets != nil {
		cc.Sockets.Broadcast(channelId, "display", payload)
	}
	return c.JSON(payload)
}

package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(c *fiber.Ctx) error
}

// HandlerTransport groups the route handlers for server wiring.
type HandlerTransport struct {
	ModerateHandler   Handler
	GetAccountHandler Handler
}

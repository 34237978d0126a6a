package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	appmoderation "github.com/selira/modguard/pkg/app/moderation"
	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/sirupsen/logrus"
)

type moderateHandler struct {
	logger  *logrus.Logger
	service appmoderation.Service
}

// NewModerateHandler @Summary Moderate a message
// @Description Inspects a message against the content policy and records violations
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body appmoderation.Request true "Moderation request"
// @Success 200 {object} appmoderation.Outcome "Message allowed"
// @Failure 400 {object} map[string]interface{} "Missing user identity"
// @Failure 403 {object} appmoderation.Outcome "Message blocked or account banned"
// @Router /api/v1/moderation [post]
func NewModerateHandler(logger *logrus.Logger, service appmoderation.Service) Handler {
	return &moderateHandler{
		logger:  logger,
		service: service,
	}
}

func (h *moderateHandler) Handle(c *fiber.Ctx) error {
	var req appmoderation.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	outcome, err := h.service.Moderate(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, moderation.ErrMissingIdentity) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("moderation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	if outcome.Blocked {
		return c.Status(fiber.StatusForbidden).JSON(outcome)
	}
	return c.Status(fiber.StatusOK).JSON(outcome)
}

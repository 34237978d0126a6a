package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/selira/modguard/pkg/domain"
	"github.com/selira/modguard/pkg/domain/account"
	"github.com/sirupsen/logrus"
)

type getAccountHandler struct {
	logger *logrus.Logger
	repo   account.Repository
}

// NewGetAccountHandler @Summary Retrieve an account moderation record
// @Description Returns the violation ledger entry for an identity
// @Tags Moderation
// @Produce json
// @Param identity path string true "Account identity"
// @Success 200 {object} account.Account "Account moderation record"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Router /api/v1/moderation/accounts/{identity} [get]
func NewGetAccountHandler(logger *logrus.Logger, repo account.Repository) Handler {
	return &getAccountHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *getAccountHandler) Handle(c *fiber.Ctx) error {
	identity := c.Params("identity")

	entity, err := h.repo.FindByIdentity(c.UserContext(), identity)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "account not found"})
		}
		h.logger.WithError(err).Error("failed to fetch account record")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}

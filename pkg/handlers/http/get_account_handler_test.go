package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/selira/modguard/pkg/domain"
	"github.com/selira/modguard/pkg/domain/account"
	accountMocks "github.com/selira/modguard/pkg/domain/account/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func accountApp(repo account.Repository) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/moderation/accounts/:identity", NewGetAccountHandler(logrus.New(), repo).Handle)
	return app
}

func getAccount(t *testing.T, app *fiber.App, identity string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/moderation/accounts/"+identity, nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestGetAccountHandler_Found(t *testing.T) {
	repo := new(accountMocks.Repository)
	repo.On("FindByIdentity", mock.Anything, "user@test.com").Return(&account.Account{
		Identity:       "user@test.com",
		ViolationCount: 2,
		IsBanned:       false,
	}, nil)

	status, body := getAccount(t, accountApp(repo), "user@test.com")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user@test.com", body["identity"])
	assert.Equal(t, float64(2), body["violation_count"])
}

func TestGetAccountHandler_NotFound(t *testing.T) {
	repo := new(accountMocks.Repository)
	repo.On("FindByIdentity", mock.Anything, "ghost@test.com").
		Return(nil, domain.NewNotFoundError("account", "ghost@test.com"))

	status, body := getAccount(t, accountApp(repo), "ghost@test.com")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "account not found", body["error"])
}

func TestGetAccountHandler_StoreFailure(t *testing.T) {
	repo := new(accountMocks.Repository)
	repo.On("FindByIdentity", mock.Anything, "user@test.com").
		Return(nil, errors.New("connection refused"))

	status, body := getAccount(t, accountApp(repo), "user@test.com")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal error", body["error"])
}

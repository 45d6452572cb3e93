package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedRequest struct {
	Name string `validate:"required"`
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"not found", apperror.NotFound("Room not found"), 404, "Room not found"},
		{"bad request", apperror.BadRequest("Message cannot be empty"), 400, "Message cannot be empty"},
		{"upstream hides cause", apperror.Upstream("Could not reach the assistant", errors.New("dial tcp: refused")), 500, "Could not reach the assistant"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "nope"},
		{"validation", ValidateRequest(validatedRequest{}), 400, "name is required"},
		{"unknown", errors.New("pq: something internal"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body Response
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

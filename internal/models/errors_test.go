package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NewNotFoundError("Tweet", 1), fiber.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("nope"), fiber.StatusBadRequest},
		{"ownership", NewForbiddenError("not yours"), fiber.StatusBadRequest},
		{"duplicate", NewConflictError("exists"), fiber.StatusBadRequest},
		{"invalid state", NewInvalidStateError("broken"), fiber.StatusBadRequest},
		{"rule violation", NewRuleViolationError("self follow"), fiber.StatusBadRequest},
		{"validation", NewValidationError("bad"), fiber.StatusUnprocessableEntity},
		{"debug gate", NewDebugOnlyError(), fiber.StatusForbidden},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewConflictError("exists")), fiber.StatusBadRequest},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFor(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewNotFoundError("User", 2), CodeNotFound))
	assert.False(t, HasCode(NewNotFoundError("User", 2), CodeConflict))
	assert.False(t, HasCode(errors.New("x"), CodeNotFound))
}

func TestRespondWithAppError_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithAppError(c, NewValidationError("tweet_data is required"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, false, got["result"])
	assert.Equal(t, CodeValidation, got["error_type"])
	assert.Equal(t, "tweet_data is required", got["error_message"])
}

func TestMediaFilename(t *testing.T) {
	m := Media{ID: 42, Ext: "png"}
	assert.Equal(t, "42.png", m.Filename())
	assert.False(t, m.Attached())

	tweetID := uint(3)
	m.TweetID = &tweetID
	assert.True(t, m.Attached())
}

package server

import (
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatedUser is returned once at creation; it is the only response that
// echoes the api key.
type CreatedUser struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

type CreateUserResponse struct {
	Result bool        `json:"result" example:"true"`
	User   CreatedUser `json:"user"`
}

type ProfileResponse struct {
	Result bool             `json:"result" example:"true"`
	User   *service.Profile `json:"user"`
}

// CreateUser handles POST /api/users
// @Summary Create user
// @Description Register a user with a caller-chosen api key. Available only when DEBUG is on.
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "User name and api key"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateUserResponse{
		Result: true,
		User:   CreatedUser{ID: user.ID, Name: user.Name, APIKey: user.APIKey},
	})
}

// GetMyProfile handles GET /api/users/me
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return s.respondWithProfile(c, currentUserID(c))
}

// GetUserProfile handles GET /api/users/:id
// @Summary User profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.respondWithProfile(c, id)
}

func (s *Server) respondWithProfile(c *fiber.Ctx, userID uint) error {
	profile, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(ProfileResponse{Result: true, User: profile})
}

// FollowUser handles POST /api/users/:id/follow
// @Summary Follow user
// @Tags users
// @Produce json
// @Param id path int true "User ID to follow"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.Follow(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(okResponse)
}

// UnfollowUser handles DELETE /api/users/:id/follow
// @Summary Unfollow user
// @Tags users
// @Produce json
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id}/follow [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.Unfollow(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(okResponse)
}

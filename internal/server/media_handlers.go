package server

import (
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UploadMediaResponse struct {
	Result  bool `json:"result" example:"true"`
	MediaID uint `json:"media_id" example:"1"`
}

// UploadMedia handles POST /api/medias
// @Summary Upload image
// @Description Stores an image for later attachment to a tweet.
// @Tags medias
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} UploadMediaResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /medias [post]
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	media, err := s.mediaService.Upload(c.UserContext(), service.UploadMediaInput{
		UserID:      currentUserID(c),
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UploadMediaResponse{Result: true, MediaID: media.ID})
}

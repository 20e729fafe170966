package server

import (
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CreateTweetResponse struct {
	Result  bool `json:"result" example:"true"`
	TweetID uint `json:"tweet_id" example:"1"`
}

type FeedResponse struct {
	Result bool                `json:"result" example:"true"`
	Tweets []service.FeedTweet `json:"tweets"`
}

// CreateTweet handles POST /api/tweets
// @Summary Post tweet
// @Description Media ids that are unknown, foreign or already attached are dropped.
// @Tags tweets
// @Accept json
// @Produce json
// @Param request body service.CreateTweetInput true "Tweet text and media ids"
// @Success 201 {object} CreateTweetResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tweets [post]
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req service.CreateTweetInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = currentUserID(c)

	tweet, err := s.tweetService.CreateTweet(c.UserContext(), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateTweetResponse{Result: true, TweetID: tweet.ID})
}

// DeleteTweet handles DELETE /api/tweets/:id
// @Summary Delete tweet
// @Description Deletes an owned tweet together with its likes and media files.
// @Tags tweets
// @Produce json
// @Param id path int true "Tweet ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tweets/{id} [delete]
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.tweetService.DeleteTweet(c.UserContext(), service.DeleteTweetInput{
		UserID:  currentUserID(c),
		TweetID: id,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(okResponse)
}

// LikeTweet handles POST /api/tweets/:id/likes
// @Summary Like tweet
// @Tags tweets
// @Produce json
// @Param id path int true "Tweet ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tweets/{id}/likes [post]
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.tweetService.LikeTweet(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(okResponse)
}

// UnlikeTweet handles DELETE /api/tweets/:id/likes
// @Summary Unlike tweet
// @Tags tweets
// @Produce json
// @Param id path int true "Tweet ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tweets/{id}/likes [delete]
func (s *Server) UnlikeTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.tweetService.UnlikeTweet(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(okResponse)
}

// GetFeed handles GET /api/tweets
// @Summary Feed
// @Description Own tweets and tweets of followed users, most liked first.
// @Tags tweets
// @Produce json
// @Success 200 {object} FeedResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /tweets [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.GetFeed(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(FeedResponse{Result: true, Tweets: feed})
}

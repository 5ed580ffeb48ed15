package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/middleware"
	"dispatch/internal/service"
)

// FeedbackHandler handles HTTP requests for ride feedback.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// GiveFeedbackRequest is the HTTP request body for rating a ride.
type GiveFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

// FeedbackResponse is the HTTP response for feedback.
type FeedbackResponse struct {
	ID         string `json:"id"`
	RideID     string `json:"ride_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// RatingResponse is the HTTP response for a user's rating.
type RatingResponse struct {
	UserID  string `json:"user_id"`
	Average string `json:"average"`
	Count   int    `json:"count"`
}

// Give handles POST /v1/rides/:id/feedback
func (h *FeedbackHandler) Give(c *gin.Context) {
	var req GiveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	caller, _ := middleware.CallerFrom(c)
	f, err := h.feedback.Give(c.Request.Context(), caller, service.GiveFeedbackRequest{
		RideID:  c.Param("id"),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toFeedbackResponse(f))
}

// Rating handles GET /v1/users/:id/rating
func (h *FeedbackHandler) Rating(c *gin.Context) {
	summary, err := h.feedback.Rating(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RatingResponse{
		UserID:  summary.UserID,
		Average: money(summary.Average),
		Count:   summary.Count,
	})
}

func toFeedbackResponse(f domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         f.ID,
		RideID:     f.RideID,
		FromUserID: f.FromUserID,
		ToUserID:   f.ToUserID,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
	}
}

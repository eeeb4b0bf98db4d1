package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarnet/review-core/internal/services"
)

// Error codes surfaced in the response envelope. Validation runs before any
// mutation, so a coded 4xx means nothing was written.
const (
	codeInvalidCategory  = "INVALID_CATEGORY"
	codeInvalidReason    = "INVALID_REASON"
	codeInvalidArticleID = "INVALID_ARTICLE_ID"
	codeInvalidPayload   = "INVALID_PAYLOAD"
	codeArticleNotFound  = "ARTICLE_NOT_FOUND"
	codeArticleRemoved   = "ARTICLE_ALREADY_REMOVED"
	codeAlreadyFlagged   = "ALREADY_FLAGGED"
	codeAlreadyReviewed  = "ALREADY_REVIEWED"
	codeOwnArticle       = "OWN_ARTICLE"
	codeRateLimited      = "RATE_LIMIT_EXCEEDED"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeInternalError    = "INTERNAL_SERVER_ERROR"
	codeInvalidAction    = "INVALID_ACTION"
	codeInvalidStatus    = "INVALID_STATUS"
	codeInvalidTitle     = "INVALID_TITLE"
	codeInvalidScore     = "INVALID_SCORE"
	codeInvalidRecommend = "INVALID_RECOMMENDATION"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	body := gin.H{"code": code, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, gin.H{"error": body})
}

// respondServiceError maps a service error onto the coded envelope.
// Infrastructure errors are logged by the services and surfaced only as a
// generic 500 so internals do not leak.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var rle *services.RateLimitError
	if errors.As(err, &rle) {
		respondError(c, http.StatusTooManyRequests, codeRateLimited,
			"too many flags submitted, retry after the window resets", gin.H{
				"limit":     rle.Result.Limit,
				"remaining": rle.Result.Remaining,
				"reset":     rle.Result.Reset.Unix(),
			})
		return
	}

	switch {
	case errors.Is(err, services.ErrArticleNotFound):
		respondError(c, http.StatusNotFound, codeArticleNotFound, "article does not exist", nil)
	case errors.Is(err, services.ErrArticleRemoved):
		respondError(c, http.StatusBadRequest, codeArticleRemoved, "article has been removed", nil)
	case errors.Is(err, services.ErrAlreadyFlagged):
		respondError(c, http.StatusBadRequest, codeAlreadyFlagged, "article already flagged by this user", nil)
	case errors.Is(err, services.ErrInvalidCategory):
		respondError(c, http.StatusBadRequest, codeInvalidCategory, "unknown flag category", nil)
	case errors.Is(err, services.ErrInvalidReason):
		respondError(c, http.StatusBadRequest, codeInvalidReason, "reason must be at most 500 characters", nil)
	case errors.Is(err, services.ErrInvalidTitle):
		respondError(c, http.StatusBadRequest, codeInvalidTitle, "title is required", nil)
	case errors.Is(err, services.ErrInvalidScore):
		respondError(c, http.StatusBadRequest, codeInvalidScore, "score must be non-negative", nil)
	case errors.Is(err, services.ErrInvalidRecommendation):
		respondError(c, http.StatusBadRequest, codeInvalidRecommend, "unknown recommendation", nil)
	case errors.Is(err, services.ErrOwnArticle):
		respondError(c, http.StatusBadRequest, codeOwnArticle, "authors cannot review their own article", nil)
	case errors.Is(err, services.ErrAlreadyReviewed):
		respondError(c, http.StatusBadRequest, codeAlreadyReviewed, "reviewer already reviewed this article", nil)
	case errors.Is(err, services.ErrInvalidAction):
		respondError(c, http.StatusBadRequest, codeInvalidAction, "action must be approve or reject", nil)
	default:
		h.Log.Printf("internal error: %v", err)
		respondError(c, http.StatusInternalServerError, codeInternalError, "internal server error", nil)
	}
}

package services

import (
	"errors"
	"fmt"

	"github.com/scholarnet/review-core/internal/ratelimit"
)

// Sentinel errors surfaced by the services. Controllers map these onto the
// coded HTTP envelope; anything else is an infrastructure failure and is
// reported generically.
var (
	ErrArticleNotFound       = errors.New("article not found")
	ErrArticleRemoved        = errors.New("article already removed")
	ErrAlreadyFlagged        = errors.New("article already flagged by user")
	ErrInvalidCategory       = errors.New("invalid flag category")
	ErrInvalidReason         = errors.New("invalid flag reason")
	ErrInvalidTitle          = errors.New("invalid article title")
	ErrInvalidScore          = errors.New("invalid review score")
	ErrInvalidRecommendation = errors.New("invalid recommendation")
	ErrOwnArticle            = errors.New("reviewer cannot review own article")
	ErrAlreadyReviewed       = errors.New("reviewer already reviewed article")
	ErrInvalidAction         = errors.New("invalid moderation action")
)

// RateLimitError is a denial from the flag rate limiter. It carries the
// limiter state so the response can tell the caller when to retry.
type RateLimitError struct {
	Result ratelimit.Result
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %d per window, resets %s",
		e.Result.Limit, e.Result.Reset.Format("15:04:05"))
}

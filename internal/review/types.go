// Package review implements the peer-review acceptance core: score
// normalization, aggregation across reviewers, and projection of a
// user-facing display status. Everything here is a pure function of its
// inputs; nothing is persisted.
package review

// RequiredReviews is how many completed reviews an article needs before an
// accept/reject verdict is derived.
const RequiredReviews = 2

// PassingScore is the minimum normalized average for acceptance.
const PassingScore = 3.0

const (
	nominalScaleMax  = 5.0
	criteriaScaleMax = 25.0
)

// Summary is the aggregate of all reviews for one article.
type Summary struct {
	AverageScore    float64 `json:"averageScore"`
	ReviewCount     int     `json:"reviewCount"`
	PassesThreshold bool    `json:"passesThreshold"`
}

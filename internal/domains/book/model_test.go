package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyNewRating_RunningMean(t *testing.T) {
	b := &Book{}

	ratings := []int{5, 3, 4, 1, 5, 2}
	sum := 0
	for i, r := range ratings {
		require.NoError(t, b.ApplyNewRating(r))
		sum += r

		assert.Equal(t, i+1, b.TotalRatings)
		assert.InDelta(t, float64(sum)/float64(i+1), b.AverageRating, 1e-9)
	}
}

func TestApplyNewRating_OutOfRange(t *testing.T) {
	b := &Book{AverageRating: 4.0, TotalRatings: 3}

	for _, r := range []int{0, 6, -1, 100} {
		err := b.ApplyNewRating(r)
		assert.ErrorIs(t, err, ErrRatingOutOfRange)
	}

	// aggregates untouched by rejected input
	assert.Equal(t, 3, b.TotalRatings)
	assert.InDelta(t, 4.0, b.AverageRating, 1e-9)
}

func TestApplyRatingEdit(t *testing.T) {
	b := &Book{}
	require.NoError(t, b.ApplyNewRating(5))
	require.NoError(t, b.ApplyNewRating(3))
	require.NoError(t, b.ApplyNewRating(4))

	// change the 3 into a 1: mean becomes (5+1+4)/3
	require.NoError(t, b.ApplyRatingEdit(3, 1))
	assert.Equal(t, 3, b.TotalRatings, "edit must not change the contribution count")
	assert.InDelta(t, 10.0/3.0, b.AverageRating, 1e-9)
}

func TestApplyRatingEdit_OutOfRange(t *testing.T) {
	b := &Book{AverageRating: 4.0, TotalRatings: 2}

	assert.ErrorIs(t, b.ApplyRatingEdit(0, 4), ErrRatingOutOfRange)
	assert.ErrorIs(t, b.ApplyRatingEdit(4, 6), ErrRatingOutOfRange)
	assert.Equal(t, 2, b.TotalRatings)
	assert.InDelta(t, 4.0, b.AverageRating, 1e-9)
}

func TestApplyRatingEdit_EmptyAggregate(t *testing.T) {
	b := &Book{}

	require.NoError(t, b.ApplyRatingEdit(2, 4))
	assert.Equal(t, 1, b.TotalRatings)
	assert.InDelta(t, 4.0, b.AverageRating, 1e-9)
}

func TestReviewCounters(t *testing.T) {
	b := &Book{}

	b.IncrementReviews()
	b.IncrementReviews()
	assert.Equal(t, 2, b.TotalReviews)

	b.DecrementReviews()
	assert.Equal(t, 1, b.TotalReviews)

	b.DecrementReviews()
	b.DecrementReviews()
	assert.Equal(t, 0, b.TotalReviews, "counter never goes negative")
}

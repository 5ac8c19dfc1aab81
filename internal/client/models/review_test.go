package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReview_ToggleLike(t *testing.T) {
	r := Review{Likes: 12, IsLiked: false}

	r.ToggleLike()
	assert.Equal(t, 13, r.Likes)
	assert.True(t, r.IsLiked)

	r.ToggleLike()
	assert.Equal(t, 12, r.Likes, "double toggle restores the original count")
	assert.False(t, r.IsLiked)
}

func TestReview_ToggleLike_StartsLiked(t *testing.T) {
	r := Review{Likes: 5, IsLiked: true}

	r.ToggleLike()
	assert.Equal(t, 4, r.Likes)
	assert.False(t, r.IsLiked)
}

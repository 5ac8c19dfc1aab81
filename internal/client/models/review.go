package models

// ReviewUser is the author block shown next to a review.
type ReviewUser struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Review is a recipe review. Like state is toggled optimistically on the
// client before backend confirmation.
type Review struct {
	ID      string     `json:"id"`
	User    ReviewUser `json:"user"`
	Comment string     `json:"comment"`
	TimeAgo string     `json:"timeAgo"`
	Likes   int        `json:"likes"`
	IsLiked bool       `json:"isLiked"`
}

// ToggleLike flips the liked flag and adjusts the counter by one in the
// matching direction. Two consecutive toggles restore the original state.
func (r *Review) ToggleLike() {
	if r.IsLiked {
		r.Likes--
	} else {
		r.Likes++
	}
	r.IsLiked = !r.IsLiked
}

// RecipeReviews is the /reviews/recipe/:id response: the recipe plus its
// reviews in one payload.
type RecipeReviews struct {
	Recipe  Recipe   `json:"recipe"`
	Reviews []Review `json:"reviews"`
}

// LikeResult is the backend's authoritative like state after a like call.
type LikeResult struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

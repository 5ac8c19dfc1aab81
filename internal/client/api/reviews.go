package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/common"
)

// RecipeReviews fetches a recipe together with its reviews. The bearer
// header is attached when a session exists so the response can carry the
// caller's own like state, but the endpoint also works logged out.
func (c *Client) RecipeReviews(ctx context.Context, recipeID string) (*models.RecipeReviews, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/reviews/recipe/"+url.PathEscape(recipeID), nil, false)
	if err != nil {
		return nil, err
	}
	if c.token != nil && c.token() != "" {
		req.Header.Set("Authorization", "Bearer "+c.token())
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, common.ErrUnauthenticated)
	}

	var result models.RecipeReviews
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LikeReview toggles the caller's like on a review and returns the
// backend's authoritative like state.
func (c *Client) LikeReview(ctx context.Context, reviewID string) (*models.LikeResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/reviews/"+url.PathEscape(reviewID)+"/like", nil, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, common.ErrUnauthenticated)
	}

	var result models.LikeResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReplyToReview posts a reply under a review.
func (c *Client) ReplyToReview(ctx context.Context, reviewID, text string) error {
	body := map[string]string{"text": text}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/reviews/"+url.PathEscape(reviewID)+"/reply", body, true)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return responseError(resp, common.ErrUnauthenticated)
	}
	return nil
}

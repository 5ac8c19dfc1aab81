package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/common"
)

// ListRecipes fetches the full recipe feed. Filtering happens client-side.
func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/recipes", nil, false)
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

	var recipes []models.Recipe
	if err := decodeJSON(resp, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe fetches a single recipe by id.
func (c *Client) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, false)
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

	var recipe models.Recipe
	if err := decodeJSON(resp, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SearchRecipes runs a backend search for the given query.
func (c *Client) SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/recipes/search?q="+url.QueryEscape(query), nil, false)
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

	var recipes []models.Recipe
	if err := decodeJSON(resp, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe submits a new recipe with its image as one multipart form.
func (c *Client) CreateRecipe(ctx context.Context, draft models.RecipeDraft, imagePath string) (*models.Recipe, error) {
	fields := map[string]string{
		"name":        draft.Name,
		"category":    draft.Category,
		"cookingTime": strconv.Itoa(draft.CookingTime),
		"description": draft.Description,
	}

	form, err := newImageForm("image", imagePath, fields)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/recipes", form.body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.contentType)
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, responseError(resp, common.ErrUnauthenticated)
	}

	var recipe models.Recipe
	if err := decodeJSON(resp, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

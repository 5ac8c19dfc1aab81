// Package recipes implements the read-side helpers over the recipe and
// review endpoints: fetch collections, apply pure client-side filtering,
// and manage the optimistic review-like toggle. Server data is never
// mutated locally beyond that toggle.
package recipes

import (
	"context"

	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/client/storage"
	"github.com/dishcovery/dishcovery/internal/logging"
)

// Backend is the slice of the API client the service uses.
type Backend interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, draft models.RecipeDraft, imagePath string) (*models.Recipe, error)
	RecipeReviews(ctx context.Context, recipeID string) (*models.RecipeReviews, error)
	LikeReview(ctx context.Context, reviewID string) (*models.LikeResult, error)
	ReplyToReview(ctx context.Context, reviewID, text string) error
}

// RecentSearchLimit caps the recent-searches list shown for an empty query.
const RecentSearchLimit = 8

type Service struct {
	backend  Backend
	searches *storage.SearchRepository
	log      logging.Logger

	// spawn runs the fire-and-forget like confirmation. Tests replace it
	// with a synchronous version.
	spawn func(fn func())
}

func NewService(backend Backend, searches *storage.SearchRepository, log logging.Logger) *Service {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Service{
		backend:  backend,
		searches: searches,
		log:      log,
		spawn:    func(fn func()) { go fn() },
	}
}

// ListRecipes fetches the feed and filters by category client-side. An
// empty category or the "All" sentinel returns the feed unfiltered.
func (s *Service) ListRecipes(ctx context.Context, category string) ([]models.Recipe, error) {
	all, err := s.backend.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	if category == "" || category == models.CategoryAll {
		return all, nil
	}

	filtered := make([]models.Recipe, 0, len(all))
	for _, r := range all {
		if r.MatchesCategory(category) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// SearchRecipes runs a search. An empty query deliberately yields an empty
// result set, distinct from "all recipes": the search screen shows recent
// searches instead. Non-empty queries go to the backend, get re-filtered
// with the canonical case-insensitive substring match, and are recorded in
// the local search history.
func (s *Service) SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	if query == "" {
		return nil, nil
	}

	results, err := s.backend.SearchRecipes(ctx, query)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Recipe, 0, len(results))
	for _, r := range results {
		if r.MatchesQuery(query) {
			matched = append(matched, r)
		}
	}

	if s.searches != nil {
		if err := s.searches.Record(ctx, query); err != nil {
			s.log.Warn(ctx, "failed to record search", "query", query, "error", err)
		}
	}

	return matched, nil
}

// RecentSearches returns the queries to show under an empty search box.
func (s *Service) RecentSearches(ctx context.Context) ([]string, error) {
	if s.searches == nil {
		return nil, nil
	}
	return s.searches.Recent(ctx, RecentSearchLimit)
}

// GetRecipe fetches one recipe.
func (s *Service) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return s.backend.GetRecipe(ctx, id)
}

// RecipeWithReviews fetches a recipe together with its reviews.
func (s *Service) RecipeWithReviews(ctx context.Context, recipeID string) (*models.RecipeReviews, error) {
	return s.backend.RecipeReviews(ctx, recipeID)
}

// ToggleReviewLike flips the like state immediately and confirms with the
// backend in the background. A failed confirmation is logged but not
// rolled back; the next fetch restores the server's truth.
func (s *Service) ToggleReviewLike(ctx context.Context, review *models.Review) {
	review.ToggleLike()

	id := review.ID
	bg := context.WithoutCancel(ctx)
	s.spawn(func() {
		if _, err := s.backend.LikeReview(bg, id); err != nil {
			s.log.Warn(bg, "like toggle not confirmed", "reviewID", id, "error", err)
		}
	})
}

// ReplyToReview posts a reply under a review.
func (s *Service) ReplyToReview(ctx context.Context, reviewID, text string) error {
	return s.backend.ReplyToReview(ctx, reviewID, text)
}

// SubmitRecipe uploads a new recipe with its image.
func (s *Service) SubmitRecipe(ctx context.Context, draft models.RecipeDraft, imagePath string) (*models.Recipe, error) {
	return s.backend.CreateRecipe(ctx, draft, imagePath)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dishcovery/dishcovery/internal/client/models"
)

func printRecipeLine(r *models.Recipe) {
	printlnFn(fmt.Sprintf("[%s] %s (%s, %d min) by %s", r.ID, r.Name, r.Category, r.CookingTime, r.Chef.Name))
}

// Recipes lists the feed, optionally filtered by category.
func (a *App) Recipes(ctx context.Context, category string) error {
	list, err := a.recipes.ListRecipes(ctx, category)
	if err != nil {
		printUserError(err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No recipes found.")
		return nil
	}
	for i := range list {
		printRecipeLine(&list[i])
	}
	return nil
}

// Search runs a query. An empty query shows recent searches instead.
func (a *App) Search(ctx context.Context, query string) error {
	if query == "" {
		recent, err := a.recipes.RecentSearches(ctx)
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			printlnFn("Usage: search <query>")
			return nil
		}
		printlnFn("Recent searches:")
		for _, q := range recent {
			printlnFn("  " + q)
		}
		return nil
	}

	results, err := a.recipes.SearchRecipes(ctx, query)
	if err != nil {
		printUserError(err)
		return err
	}

	if len(results) == 0 {
		printlnFn(fmt.Sprintf("Nothing found for %q.", query))
		return nil
	}
	for i := range results {
		printRecipeLine(&results[i])
	}
	return nil
}

// Show prints one recipe in full.
func (a *App) Show(ctx context.Context, id string) error {
	if id == "" {
		printlnFn("Usage: show <id>")
		return nil
	}

	recipe, err := a.recipes.GetRecipe(ctx, id)
	if err != nil {
		printUserError(err)
		return err
	}

	printRecipeLine(recipe)
	if recipe.Description != "" {
		printlnFn(recipe.Description)
	}
	if recipe.Chef.TimePosted != "" {
		printlnFn(fmt.Sprintf("Posted %s", recipe.Chef.TimePosted))
	}
	return nil
}

// Reviews fetches a recipe's reviews and numbers them for like/reply.
func (a *App) Reviews(ctx context.Context, recipeID string) error {
	if recipeID == "" {
		printlnFn("Usage: reviews <recipe-id>")
		return nil
	}

	result, err := a.recipes.RecipeWithReviews(ctx, recipeID)
	if err != nil {
		printUserError(err)
		return err
	}

	a.lastReviews = result.Reviews

	printlnFn(fmt.Sprintf("Reviews for %s:", result.Recipe.Name))
	if len(result.Reviews) == 0 {
		printlnFn("  No reviews yet.")
		return nil
	}
	for i, rv := range result.Reviews {
		liked := ""
		if rv.IsLiked {
			liked = ", liked"
		}
		printlnFn(fmt.Sprintf("  %d. %s (%s): %s [%d likes%s]", i+1, rv.User.Name, rv.TimeAgo, rv.Comment, rv.Likes, liked))
	}
	return nil
}

// reviewByRef resolves a 1-based number from the last "reviews" output.
func (a *App) reviewByRef(ref string) *models.Review {
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(a.lastReviews) {
		return nil
	}
	return &a.lastReviews[n-1]
}

// Like toggles the like on a numbered review from the last listing. The
// flip shows immediately; confirmation happens in the background.
func (a *App) Like(ctx context.Context, ref string) error {
	review := a.reviewByRef(ref)
	if review == nil {
		printlnFn("Usage: like <n> (run 'reviews <id>' first)")
		return nil
	}

	a.recipes.ToggleReviewLike(ctx, review)
	printlnFn(fmt.Sprintf("%s: %d likes", review.Comment, review.Likes))
	return nil
}

// Reply posts a reply under a numbered review from the last listing.
func (a *App) Reply(ctx context.Context, ref string) error {
	review := a.reviewByRef(ref)
	if review == nil {
		printlnFn("Usage: reply <n> (run 'reviews <id>' first)")
		return nil
	}

	text, err := GetMultiline(a.reader, "Reply", os.Stdout)
	if err != nil {
		return err
	}
	if text == "" {
		printlnFn("Empty reply discarded.")
		return nil
	}

	if err := a.recipes.ReplyToReview(ctx, review.ID, text); err != nil {
		printUserError(err)
		return err
	}
	printlnFn("Reply posted.")
	return nil
}

// AddRecipe walks the submission form and uploads the recipe with its
// image.
func (a *App) AddRecipe(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Recipe name", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}
	cookingTimeText, err := getSimpleText(a.reader, "Cooking time (minutes)", os.Stdout)
	if err != nil {
		return err
	}
	cookingTime, err := strconv.Atoi(cookingTimeText)
	if err != nil || cookingTime <= 0 {
		printlnFn("Cooking time must be a positive number of minutes.")
		return nil
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	imagePath, err := getSimpleText(a.reader, "Image path", os.Stdout)
	if err != nil {
		return err
	}

	draft := models.RecipeDraft{
		Name:        name,
		Category:    category,
		CookingTime: cookingTime,
		Description: description,
	}

	created, err := a.recipes.SubmitRecipe(ctx, draft, imagePath)
	if err != nil {
		printUserError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Recipe published with id %s.", created.ID))
	return nil
}

package models

import (
	"encoding/json"
	"strings"
)

// CategoryAll is the sentinel value meaning "do not filter by category".
const CategoryAll = "All"

// Category is a single category string. Legacy backends sometimes send an
// array here; unmarshalling normalizes an array to its first element so
// filtering and display always work on one string.
type Category string

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Category(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		*c = ""
		return nil
	}
	*c = Category(list[0])
	return nil
}

// Chef is the recipe author block as rendered on recipe cards.
type Chef struct {
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	TimePosted string `json:"timePosted,omitempty"`
}

// Recipe is server-owned and read-only on the client: favourite, review and
// delete actions go to the backend and are never locally authoritative.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	CookingTime int      `json:"cookingTime"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Chef        Chef     `json:"chef"`
}

// MatchesCategory reports whether the recipe belongs to the given category.
// An empty category or the "All" sentinel matches everything; otherwise the
// comparison is a case-sensitive exact match, per the backend contract.
func (r *Recipe) MatchesCategory(category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return string(r.Category) == category
}

// MatchesQuery reports whether the query is a case-insensitive substring of
// the recipe name or description. An empty query matches nothing: the
// search screen shows recent searches instead of the full catalogue.
func (r *Recipe) MatchesQuery(query string) bool {
	if query == "" {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q)
}

// RecipeDraft is the client-side payload for submitting a new recipe.
// The image travels separately as a multipart file part.
type RecipeDraft struct {
	Name        string
	Category    string
	CookingTime int
	Description string
}

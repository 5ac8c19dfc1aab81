package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, opts...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "jane@example.com", body["email"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"token": "abc",
			"user":  map[string]any{"id": "1", "firstName": "Jane"},
		})
	}))

	result, err := c.Login(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "abc", result.Token)
	assert.Equal(t, "Jane", result.User.FirstName)
}

func TestLogin_401MapsToInvalidCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	}))

	_, err := c.Login(context.Background(), "x@y.com", "badpass")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	require.Contains(t, err.Error(), "Invalid email or password")
}

func TestLogin_MissingTokenIsShapeViolation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": "1"},
		})
	}))

	_, err := c.Login(context.Background(), "a@b.com", "secret1")
	require.ErrorIs(t, err, common.ErrInvalidServerResponse)
}

func TestLogin_ServerDownMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "a@b.com", "secret1")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestSignup_DuplicateAccount(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]string
	}{
		{name: "conflict status", status: http.StatusConflict, body: map[string]string{"message": "taken"}},
		{name: "400 with exists message", status: http.StatusBadRequest, body: map[string]string{"message": "User already exists"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))

			_, err := c.Signup(context.Background(), "Jane", "jane@example.com", "secret1")
			require.ErrorIs(t, err, common.ErrDuplicateAccount)
		})
	}
}

func TestSignup_Success201(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"token": "xyz",
			"user":  map[string]any{"id": "2", "firstName": "Jane"},
		})
	}))

	result, err := c.Signup(context.Background(), "Jane Doe", "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "xyz", result.Token)
}

func TestMe_RequiresToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without a token")
	}))

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestMe_SendsBearerAndClientID(t *testing.T) {
	var gotAuth, gotClientID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotClientID = r.Header.Get(ClientIDHeader)
		writeJSON(t, w, http.StatusOK, map[string]any{"id": "1", "firstName": "Jane"})
	}),
		WithTokenSource(func() string { return "abc" }),
		WithClientID(func() string { return "install-1" }),
	)

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "install-1", gotClientID)
	assert.Equal(t, "Jane", user.FirstName)
}

func TestMe_RejectsNonJSONContentType(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>cold start</html>"))
	}), WithTokenSource(func() string { return "abc" }))

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidServerResponse)
}

func TestListRecipes_UnwrapsDataEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": "1", "name": "Jollof Rice", "category": "Dinner"},
				{"id": "2", "name": "Suya", "category": []string{"Nigerian", "Spicy"}},
			},
		})
	}))

	recipes, err := c.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, models.Category("Dinner"), recipes[0].Category)
	assert.Equal(t, models.Category("Nigerian"), recipes[1].Category, "legacy array category must normalize")
}

func TestSearchRecipes_EscapesQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		writeJSON(t, w, http.StatusOK, []map[string]any{})
	}))

	_, err := c.SearchRecipes(context.Background(), "rice & beans")
	require.NoError(t, err)
	assert.Equal(t, "rice & beans", gotQuery)
}

func TestCreateRecipe_MultipartFields(t *testing.T) {
	img := filepath.Join(t.TempDir(), "dish.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpegdata"), 0o600))

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Jollof Rice", r.FormValue("name"))
		assert.Equal(t, "Dinner", r.FormValue("category"))
		assert.Equal(t, "45", r.FormValue("cookingTime"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "dish.jpg", header.Filename)

		writeJSON(t, w, http.StatusCreated, map[string]any{"id": "9", "name": "Jollof Rice", "category": "Dinner"})
	}), WithTokenSource(func() string { return "abc" }))

	draft := models.RecipeDraft{Name: "Jollof Rice", Category: "Dinner", CookingTime: 45, Description: "classic"}
	recipe, err := c.CreateRecipe(context.Background(), draft, img)
	require.NoError(t, err)
	assert.Equal(t, "9", recipe.ID)
}

func TestLikeReview_ReturnsAuthoritativeState(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reviews/r1/like", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"likes": 13, "isLiked": true})
	}), WithTokenSource(func() string { return "abc" }))

	result, err := c.LikeReview(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 13, result.Likes)
	assert.True(t, result.IsLiked)
}

func TestRecipeReviews_WorksLoggedOut(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"recipe":  map[string]any{"id": "1", "name": "Suya"},
			"reviews": []map[string]any{{"id": "r1", "comment": "great", "likes": 2}},
		})
	}))

	result, err := c.RecipeReviews(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Suya", result.Recipe.Name)
	require.Len(t, result.Reviews, 1)
	assert.Equal(t, 2, result.Reviews[0].Likes)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "old password is incorrect"})
	}), WithTokenSource(func() string { return "abc" }))

	err := c.ChangePassword(context.Background(), "wrong", "newpass1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestGetRecipe_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "no such recipe"})
	}))

	_, err := c.GetRecipe(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/myrecipebox/backend/internal/api"
	"github.com/myrecipebox/backend/internal/models"
	"github.com/myrecipebox/backend/internal/service"
	"github.com/myrecipebox/backend/internal/testhelpers"
)

// identityFor stands in for the auth middleware and stamps a fixed user
// onto every request.
func identityFor(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("user_name", user.Name)
		c.Next()
	}
}

func newTestUser(t *testing.T, db *gorm.DB, username, email, name string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, Name: name, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func setupRecipeRouter(t *testing.T, db *gorm.DB, actor *models.User) *gin.Engine {
	return setupRecipeRouterWithCache(t, db, actor, nil)
}

func setupRecipeRouterWithCache(t *testing.T, db *gorm.DB, actor *models.User, cache api.FeaturedCache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := api.NewRecipeHandler(service.NewRecipeService(db), nil, cache)
	router := gin.New()
	router.Use(gin.Recovery(), identityFor(actor))
	router.GET("/recipes", handler.ListRecipes)
	router.GET("/recipes/random", handler.RandomRecipe)
	router.GET("/recipes/featured", handler.FeaturedRecipe)
	router.GET("/recipes/mine", handler.MyRecipes)
	router.GET("/recipes/:id", handler.GetRecipe)
	router.POST("/recipes", handler.CreateRecipe)
	router.PUT("/recipes/:id", handler.UpdateRecipe)
	router.DELETE("/recipes/:id", handler.DeleteRecipe)
	return router
}

func doJSON(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRecipeEndpoint(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	w := doJSON(router, "POST", "/recipes",
		`{"name":"Soup A","ingredients":"carrot,onion","instructions":"boil it","category":"Soup"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string        `json:"message"`
		Recipe  models.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Your recipe 'Soup A' is added.", resp.Message)
	assert.Equal(t, alice.ID, resp.Recipe.UserID)

	// Duplicate for the same owner is a conflict with the canonical message.
	w = doJSON(router, "POST", "/recipes",
		`{"name":"Soup A","ingredients":"other","category":"Soup"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe name already exists. Please rename it.")
}

func TestCreateRecipeEndpointInvalidCategory(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	w := doJSON(router, "POST", "/recipes",
		`{"name":"Bad","ingredients":"n/a","category":"NotARealCategory"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid category")
	assert.Contains(t, w.Body.String(), "Uncategorized")
}

func TestUpdateEndpointOwnerUpdatesInPlace(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	recipe, err := service.NewRecipeService(db).Create(context.Background(), alice.ID, service.CreateRecipeInput{
		Name: "Stew", Ingredients: "beef", Category: models.CategoryDinner,
	})
	require.NoError(t, err)

	w := doJSON(router, "PUT", "/recipes/"+recipe.ID.String(), `{"ingredients":"beef, potatoes"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Recipe
	require.NoError(t, db.First(&reloaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, "beef, potatoes", reloaded.Ingredients)
}

func TestUpdateEndpointNonOwnerGetsFork(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	bob := newTestUser(t, db, "bob", "b@example.com", "bob")
	router := setupRecipeRouter(t, db, bob)

	recipe, err := service.NewRecipeService(db).Create(context.Background(), alice.ID, service.CreateRecipeInput{
		Name: "Stew", Ingredients: "beef", Category: models.CategoryDinner,
	})
	require.NoError(t, err)

	w := doJSON(router, "PUT", "/recipes/"+recipe.ID.String(), `{"ingredients":"beef, carrots"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Recipe models.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Stew (bob Copy)", resp.Recipe.Name)
	assert.Equal(t, bob.ID, resp.Recipe.UserID)

	var reloaded models.Recipe
	require.NoError(t, db.First(&reloaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, "beef", reloaded.Ingredients)
}

func TestDeleteEndpointIsRefused(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	recipe, err := service.NewRecipeService(db).Create(context.Background(), alice.ID, service.CreateRecipeInput{
		Name: "Keeper", Ingredients: "k", Category: models.CategorySnacks,
	})
	require.NoError(t, err)

	w := doJSON(router, "DELETE", "/recipes/"+recipe.ID.String(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe deletion is not available through this interface.")

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRandomEndpointEmptyTable(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	w := doJSON(router, "GET", "/recipes/random", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No recipes found.")
}

func TestSearchEndpoint(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	svc := service.NewRecipeService(db)
	ctx := context.Background()
	for _, in := range []service.CreateRecipeInput{
		{Name: "Carrot Soup", Ingredients: "carrot,onion", Category: models.CategorySoup},
		{Name: "Pancakes", Ingredients: "flour,milk", Category: models.CategoryBreakfast},
	} {
		_, err := svc.Create(ctx, alice.ID, in)
		require.NoError(t, err)
	}

	w := doJSON(router, "GET", "/recipes?q=carrot", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Carrot Soup", resp.Recipes[0].Name)

	// No query returns everything.
	w = doJSON(router, "GET", "/recipes", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 2)
}

// fakeFeaturedCache is an in-memory stand-in for the redis client's Get/Set
// surface.
type fakeFeaturedCache struct {
	vals map[string]string
	sets int
}

func newFakeFeaturedCache() *fakeFeaturedCache {
	return &fakeFeaturedCache{vals: make(map[string]string)}
}

func (f *fakeFeaturedCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := f.vals[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (f *fakeFeaturedCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.vals[key] = fmt.Sprint(value)
	f.sets++
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	cmd.SetVal("OK")
	return cmd
}

func featuredID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Recipe models.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Recipe.ID.String()
}

func TestFeaturedEndpointWithoutCache(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	// Nothing to feature yet.
	w := doJSON(router, "GET", "/recipes/featured", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No recipes found.")

	_, err := service.NewRecipeService(db).Create(context.Background(), alice.ID, service.CreateRecipeInput{
		Name: "Granola", Ingredients: "oats", Category: models.CategoryBreakfast,
	})
	require.NoError(t, err)

	w = doJSON(router, "GET", "/recipes/featured", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Granola")
}

func TestFeaturedEndpointCachesDailyPick(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	cache := newFakeFeaturedCache()
	router := setupRecipeRouterWithCache(t, db, alice, cache)

	svc := service.NewRecipeService(db)
	ctx := context.Background()
	for _, name := range []string{"Granola", "Stew", "Toast"} {
		_, err := svc.Create(ctx, alice.ID, service.CreateRecipeInput{
			Name: name, Ingredients: "x", Category: models.CategoryDinner,
		})
		require.NoError(t, err)
	}

	w := doJSON(router, "GET", "/recipes/featured", "")
	require.Equal(t, http.StatusOK, w.Code)
	first := featuredID(t, w)
	assert.Equal(t, 1, cache.sets)

	// Once cached, every call serves the same pick without re-storing.
	for i := 0; i < 3; i++ {
		w = doJSON(router, "GET", "/recipes/featured", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, first, featuredID(t, w))
	}
	assert.Equal(t, 1, cache.sets)
}

func TestMyRecipesEndpoint(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	bob := newTestUser(t, db, "bob", "b@example.com", "bob")
	router := setupRecipeRouter(t, db, alice)

	svc := service.NewRecipeService(db)
	ctx := context.Background()
	_, err := svc.Create(ctx, alice.ID, service.CreateRecipeInput{
		Name: "Mine", Ingredients: "a", Category: models.CategoryLunch,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, service.CreateRecipeInput{
		Name: "Theirs", Ingredients: "b", Category: models.CategoryLunch,
	})
	require.NoError(t, err)

	w := doJSON(router, "GET", "/recipes/mine", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Mine", resp.Recipes[0].Name)
}

func TestGetRecipeEndpointBadID(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := newTestUser(t, db, "alice", "a@example.com", "Alice")
	router := setupRecipeRouter(t, db, alice)

	w := doJSON(router, "GET", "/recipes/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "GET", "/recipes/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

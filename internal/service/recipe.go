package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/myrecipebox/backend/internal/models"
)

// RecipeService handles recipe creation, search, update and the fork
// workflow. Every mutating call runs in its own transaction.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipeInput carries the fields accepted by Create. Category defaults
// to Uncategorized when empty.
type CreateRecipeInput struct {
	Name          string
	Ingredients   string
	Instructions  string
	Category      string
	PrepTime      *int
	CookTime      *int
	TotalTime     *int
	Servings      *int
	ImageLocation string
}

// UpdateRecipeInput carries partial-update fields. Empty strings and nil
// pointers mean "leave unchanged".
type UpdateRecipeInput struct {
	Name          string
	Ingredients   string
	Instructions  string
	Category      string
	PrepTime      *int
	CookTime      *int
	TotalTime     *int
	Servings      *int
	ImageLocation string
}

// EditorRole classifies who is editing a recipe relative to its owner.
type EditorRole int

const (
	EditorOwner EditorRole = iota
	EditorNonOwner
)

// ClassifyEditor returns EditorOwner when actorID owns the recipe.
func ClassifyEditor(recipe *models.Recipe, actorID uuid.UUID) EditorRole {
	if recipe.UserID == actorID {
		return EditorOwner
	}
	return EditorNonOwner
}

func invalidCategory(category string) error {
	return fmt.Errorf("%w '%s'. Valid categories are: %s.",
		ErrInvalidCategory, category, models.CategoryList())
}

// Create persists a new recipe owned by ownerID. The name must be unique
// among the owner's recipes and the category must be a member of the fixed
// set.
func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, input CreateRecipeInput) (*models.Recipe, error) {
	if input.Category == "" {
		input.Category = models.CategoryUncategorized
	}
	if !models.IsValidCategory(input.Category) {
		return nil, invalidCategory(input.Category)
	}

	recipe := &models.Recipe{
		Name:          input.Name,
		Ingredients:   input.Ingredients,
		Instructions:  input.Instructions,
		Category:      input.Category,
		UserID:        ownerID,
		PrepTime:      input.PrepTime,
		CookTime:      input.CookTime,
		TotalTime:     input.TotalTime,
		Servings:      input.Servings,
		ImageLocation: input.ImageLocation,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).
			Where("name = ? AND user_id = ?", input.Name, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}
		return tx.Create(recipe).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return recipe, nil
}

// Get retrieves a recipe by ID.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List lists recipes, optionally restricted to one owner.
func (s *RecipeService) List(ctx context.Context, ownerID *uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := s.db.WithContext(ctx).Order("created_at ASC")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// OwnerUpdate applies a partial in-place update to a recipe owned by
// ownerID. A recipe that exists but belongs to someone else is reported the
// same way as a missing one.
func (s *RecipeService) OwnerUpdate(ctx context.Context, recipeID, ownerID uuid.UUID, input UpdateRecipeInput) (*models.Recipe, error) {
	var updated models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ? AND user_id = ?", recipeID, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		updates, err := buildUpdates(tx, &recipe, input)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		updated = recipe
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &updated, nil
}

// buildUpdates translates the non-empty input fields into a gorm update map,
// checking name collisions against the recipe's owner.
func buildUpdates(tx *gorm.DB, recipe *models.Recipe, input UpdateRecipeInput) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if input.Name != "" && input.Name != recipe.Name {
		var count int64
		if err := tx.Model(&models.Recipe{}).
			Where("name = ? AND user_id = ? AND id <> ?", input.Name, recipe.UserID, recipe.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateName
		}
		updates["name"] = input.Name
	}
	if input.Ingredients != "" {
		updates["ingredients"] = input.Ingredients
	}
	if input.Instructions != "" {
		updates["instructions"] = input.Instructions
	}
	if input.Category != "" {
		if !models.IsValidCategory(input.Category) {
			return nil, invalidCategory(input.Category)
		}
		updates["category"] = input.Category
	}
	if input.PrepTime != nil {
		updates["prep_time"] = *input.PrepTime
	}
	if input.CookTime != nil {
		updates["cook_time"] = *input.CookTime
	}
	if input.TotalTime != nil {
		updates["total_time"] = *input.TotalTime
	}
	if input.Servings != nil {
		updates["servings"] = *input.Servings
	}
	if input.ImageLocation != "" {
		updates["image_location"] = input.ImageLocation
	}
	return updates, nil
}

// ForkName computes the attributed name a fork of the given recipe gets.
func ForkName(originalName, actorName string) string {
	return fmt.Sprintf("%s (%s Copy)", originalName, actorName)
}

// Fork creates a new recipe owned by the acting user, derived from a recipe
// they do not own. Fields not overridden by input are copied from the
// original; the original is never touched.
func (s *RecipeService) Fork(ctx context.Context, originalID, actorID uuid.UUID, actorName string, input UpdateRecipeInput) (*models.Recipe, error) {
	var fork models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original models.Recipe
		if err := tx.First(&original, "id = ?", originalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		name := ForkName(original.Name, actorName)
		var count int64
		if err := tx.Model(&models.Recipe{}).
			Where("name = ? AND user_id = ?", name, actorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}

		fork = models.Recipe{
			Name:          name,
			Ingredients:   original.Ingredients,
			Instructions:  original.Instructions,
			Category:      original.Category,
			UserID:        actorID,
			PrepTime:      original.PrepTime,
			CookTime:      original.CookTime,
			TotalTime:     original.TotalTime,
			Servings:      original.Servings,
			ImageLocation: original.ImageLocation,
		}
		if input.Ingredients != "" {
			fork.Ingredients = input.Ingredients
		}
		if input.Instructions != "" {
			fork.Instructions = input.Instructions
		}
		if input.Category != "" {
			if !models.IsValidCategory(input.Category) {
				return invalidCategory(input.Category)
			}
			fork.Category = input.Category
		}
		if input.PrepTime != nil {
			fork.PrepTime = input.PrepTime
		}
		if input.CookTime != nil {
			fork.CookTime = input.CookTime
		}
		if input.TotalTime != nil {
			fork.TotalTime = input.TotalTime
		}
		if input.Servings != nil {
			fork.Servings = input.Servings
		}
		if input.ImageLocation != "" {
			fork.ImageLocation = input.ImageLocation
		}
		return tx.Create(&fork).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &fork, nil
}

// SubmitEdit routes an edit request to exactly one of OwnerUpdate or Fork
// based on who the actor is. A non-owner's edit never mutates the original;
// it becomes a fork owned by the actor.
func (s *RecipeService) SubmitEdit(ctx context.Context, recipeID, actorID uuid.UUID, actorName string, input UpdateRecipeInput) (*models.Recipe, EditorRole, error) {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, EditorOwner, err
	}
	role := ClassifyEditor(recipe, actorID)
	switch role {
	case EditorOwner:
		updated, err := s.OwnerUpdate(ctx, recipeID, actorID, input)
		return updated, role, err
	default:
		fork, err := s.Fork(ctx, recipeID, actorID, actorName, input)
		return fork, role, err
	}
}

// Search performs a case-insensitive substring match across name,
// ingredients and category, optionally narrowed to one category. An empty
// query returns the full (filtered) set.
func (s *RecipeService) Search(ctx context.Context, query, category string) ([]models.Recipe, error) {
	dbQuery := s.db.WithContext(ctx).Model(&models.Recipe{}).Order("created_at ASC")

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(name) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(category) LIKE ?",
			like, like, like)
	}
	if category != "" {
		dbQuery = dbQuery.Where("category = ?", category)
	}

	var recipes []models.Recipe
	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Random uniformly selects one recipe not in the excluded set.
func (s *RecipeService) Random(ctx context.Context, excludeIDs []uuid.UUID) (*models.Recipe, error) {
	query := s.db.WithContext(ctx).Order("RANDOM()")
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var recipe models.Recipe
	if err := query.First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRecipes
		}
		return nil, err
	}
	return &recipe, nil
}

// Delete is a fixed product policy, not a missing feature: recipes are never
// deleted through the public interface.
func (s *RecipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	return ErrRecipeDeletionNotAvailable
}

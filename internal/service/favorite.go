package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/myrecipebox/backend/internal/models"
)

// FavoriteService handles the per-user bookmark relation on recipes.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add favorites a recipe for a user. Idempotent: if the pair already exists
// the existing row is returned unchanged.
func (s *FavoriteService) Add(ctx context.Context, recipeID, userID uuid.UUID) (*models.Favorite, error) {
	var favorite models.Favorite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&favorite, "recipe_id = ? AND user_id = ?", recipeID, userID).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.First(&models.Recipe{}, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		favorite = models.Favorite{RecipeID: recipeID, UserID: userID}
		return tx.Create(&favorite).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrRecipeNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race; the row exists now.
			if lookupErr := s.db.WithContext(ctx).
				First(&favorite, "recipe_id = ? AND user_id = ?", recipeID, userID).Error; lookupErr == nil {
				return &favorite, nil
			}
		}
		return nil, err
	}
	return &favorite, nil
}

// Remove unfavorites a recipe for a user. Returns whether a row was actually
// deleted; removing a nonexistent favorite is a no-op, never an error.
func (s *FavoriteService) Remove(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsFavorite reports whether the user has favorited the recipe. Nonexistent
// ids on either side yield false.
func (s *FavoriteService) IsFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser returns all favorites for a user, empty when none exist.
func (s *FavoriteService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

package repositories

import (
	"context"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	Toggle(ctx context.Context, userID uint, postID string) (saved bool, record *models.SavedPost, err error)
	GetSavedPostsByUser(ctx context.Context, userID uint) ([]models.SavedPost, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// Toggle flips the (userID, postID) relation inside one transaction. An
// existing row is deleted; otherwise a row is inserted, and the unique index
// on (user_id, post_id) absorbs a concurrent insert of the same pair.
func (r *PostgresSavedPostRepository) Toggle(ctx context.Context, userID uint, postID string) (bool, *models.SavedPost, error) {
	var (
		saved  bool
		record *models.SavedPost
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}

		sp := &models.SavedPost{UserID: userID, PostID: postID}
		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sp)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent save of the same pair.
			sp = &models.SavedPost{}
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(sp).Error; err != nil {
				return err
			}
		}
		saved = true
		record = sp
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return saved, record, nil
}

func (r *PostgresSavedPostRepository) GetSavedPostsByUser(ctx context.Context, userID uint) ([]models.SavedPost, error) {
	saved := []models.SavedPost{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	return saved, err
}

package database

import (
	"context"
	"time"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"gorm.io/gorm"
)

// SearchHistoryModel represents one remembered search result
type SearchHistoryModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"type:varchar(36);index;not null"`
	MediaID    int64  `gorm:"not null"`
	Title      string
	Image      string
	SearchType string `gorm:"not null"`
	CreatedAt  time.Time
}

func (SearchHistoryModel) TableName() string {
	return "search_history"
}

// SearchHistoryRepositoryAdapter implements the SearchHistoryRepository port using GORM
type SearchHistoryRepositoryAdapter struct {
	db *gorm.DB
}

// NewSearchHistoryRepositoryAdapter creates a new search history repository adapter
func NewSearchHistoryRepositoryAdapter(db *gorm.DB) *SearchHistoryRepositoryAdapter {
	return &SearchHistoryRepositoryAdapter{db: db}
}

// Add appends an entry to a user's history
func (r *SearchHistoryRepositoryAdapter) Add(ctx context.Context, item *ports.SearchHistoryData) error {
	if item == nil {
		return errors.NewValidationError("search history item cannot be nil")
	}
	if item.UserID == "" {
		return errors.NewValidationError("user ID cannot be empty")
	}

	model := &SearchHistoryModel{
		UserID:     item.UserID,
		MediaID:    item.MediaID,
		Title:      item.Title,
		Image:      item.Image,
		SearchType: item.SearchType,
		CreatedAt:  item.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("failed to save search history", err)
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	return nil
}

// ListByUser returns a user's history in insertion order
func (r *SearchHistoryRepositoryAdapter) ListByUser(ctx context.Context, userID string) ([]*ports.SearchHistoryData, error) {
	if userID == "" {
		return nil, errors.NewValidationError("user ID cannot be empty")
	}

	var models []SearchHistoryModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list search history", result.Error)
	}

	items := make([]*ports.SearchHistoryData, len(models))
	for i := range models {
		m := models[i]
		items[i] = &ports.SearchHistoryData{
			ID:         m.ID,
			UserID:     m.UserID,
			MediaID:    m.MediaID,
			Title:      m.Title,
			Image:      m.Image,
			SearchType: m.SearchType,
			CreatedAt:  m.CreatedAt,
		}
	}
	return items, nil
}

// DeleteByMediaID removes every entry of a user for mediaID and reports how many were removed
func (r *SearchHistoryRepositoryAdapter) DeleteByMediaID(ctx context.Context, userID string, mediaID int64) (int64, error) {
	if userID == "" {
		return 0, errors.NewValidationError("user ID cannot be empty")
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Delete(&SearchHistoryModel{})
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to delete search history item", result.Error)
	}
	return result.RowsAffected, nil
}

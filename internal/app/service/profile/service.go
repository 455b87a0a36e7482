package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/tool"
	"github.com/noortales/backend/pkg/types"
)

var avatarColors = []string{"#2E8B57", "#4169E1", "#C71585", "#D2691E", "#6A5ACD", "#008B8B"}

// Service manages user profiles, favorites, and the points layer.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// GetOrCreate returns the user's profile, creating a default one on first
// access. The create races benignly with itself: the unique index on
// user_id makes the losing insert a no-op and the row is re-read.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*models.Profile, error) {
	var row models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile for user %s: %w", userID, err)
	}

	fresh := &models.Profile{
		ID:          tool.GenerateUUIDV7(),
		UserID:      userID,
		AvatarColor: avatarColors[len(userID)%len(avatarColors)],
		Points:      0,
		Level:       1,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile for user %s: %w", userID, err)
	}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to reload profile for user %s: %w", userID, err)
	}
	return &row, nil
}

// UpdateDisplayName sets the profile's display name.
func (s *Service) UpdateDisplayName(ctx context.Context, userID, displayName string) (*models.Profile, error) {
	row, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	row.DisplayName = displayName
	if err := s.db.WithContext(ctx).Model(row).Update("display_name", displayName).Error; err != nil {
		return nil, fmt.Errorf("failed to update display name: %w", err)
	}
	return row, nil
}

// AwardPoints credits the fixed award for an activity and recomputes the
// level from the new total.
func (s *Service) AwardPoints(ctx context.Context, userID string, activity types.PointsActivity) (*models.Profile, error) {
	award := activity.Points()
	if award == 0 {
		return nil, fmt.Errorf("unknown points activity %q", activity)
	}

	row, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	row.Points += award
	row.Level = models.LevelForPoints(row.Points)
	if err := s.db.WithContext(ctx).Model(row).Updates(map[string]any{
		"points": row.Points,
		"level":  row.Level,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to award points: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("points_awarded", "user_id", userID, "activity", activity, "award", award, "total", row.Points)
	return row, nil
}

// ToggleFavorite adds the content to the user's favorites, or removes it if
// already present. Returns whether the content is a favorite afterwards.
func (s *Service) ToggleFavorite(ctx context.Context, userID string, contentType types.ContentType, contentID string) (bool, error) {
	if !contentType.Valid() {
		return false, fmt.Errorf("invalid content type %q", contentType)
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	fav := &models.Favorite{
		ID:          tool.GenerateUUIDV7(),
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
		return false, fmt.Errorf("failed to save favorite: %w", err)
	}
	return true, nil
}

// ListFavorites returns the user's favorites, optionally filtered by content
// type, newest first.
func (s *Service) ListFavorites(ctx context.Context, userID string, contentType types.ContentType) ([]*models.Favorite, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if contentType != "" {
		if !contentType.Valid() {
			return nil, fmt.Errorf("invalid content type %q", contentType)
		}
		q = q.Where("content_type = ?", contentType)
	}
	var favs []*models.Favorite
	if err := q.Order("created_at DESC").Find(&favs).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// FavoriteIDs returns the content ids of the user's favorites of one type,
// for client-side highlighting of favorited entries.
func (s *Service) FavoriteIDs(ctx context.Context, userID string, contentType types.ContentType) ([]string, error) {
	favs, err := s.ListFavorites(ctx, userID, contentType)
	if err != nil {
		return nil, err
	}
	return lo.Map(favs, func(f *models.Favorite, _ int) string { return f.ContentID }), nil
}

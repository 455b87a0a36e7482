package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/tool"
)

// ErrNotFound is returned for lookups of content ids that do not exist.
var ErrNotFound = errors.New("content not found")

// Service serves the story/dua/hadith catalog.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ListStories returns stories, newest publish date first, optionally
// filtered by category and by a case-insensitive substring over title and
// excerpt. Premium stories are included; entitlement gating happens on read.
func (s *Service) ListStories(ctx context.Context, category, query string) ([]*models.Story, error) {
	q := s.db.WithContext(ctx).Model(&models.Story{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("title ILIKE ? OR excerpt ILIKE ?", like, like)
	}
	var stories []*models.Story
	if err := q.Order("publish_date DESC, created_at DESC").Find(&stories).Error; err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// GetStory returns one story. When the story is premium and the reader is
// not entitled, the body, moral, and audio are withheld and locked is true;
// title, excerpt, and image remain so the story can still be teased.
func (s *Service) GetStory(ctx context.Context, id string, entitled bool) (story *models.Story, locked bool, err error) {
	var row models.Story
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to load story %s: %w", id, err)
	}
	if row.IsPremium && !entitled {
		row.Content = ""
		row.Moral = ""
		row.AudioURL = ""
		return &row, true, nil
	}
	return &row, false, nil
}

// DailyStory returns the story published for today in the daily category.
func (s *Service) DailyStory(ctx context.Context, now time.Time) (*models.Story, error) {
	today := now.UTC().Format("2006-01-02")
	var row models.Story
	err := s.db.WithContext(ctx).
		Where("category = ? AND publish_date = ?", "daily", today).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load daily story: %w", err)
	}
	return &row, nil
}

// ListDuas returns duas filtered by category and substring over title,
// translation, and occasion.
func (s *Service) ListDuas(ctx context.Context, category, query string) ([]*models.Dua, error) {
	q := s.db.WithContext(ctx).Model(&models.Dua{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("title ILIKE ? OR translation ILIKE ? OR occasion ILIKE ?", like, like, like)
	}
	var duas []*models.Dua
	if err := q.Order("title ASC").Find(&duas).Error; err != nil {
		return nil, fmt.Errorf("failed to list duas: %w", err)
	}
	return duas, nil
}

// ListHadiths returns hadiths, optionally filtered by topic.
func (s *Service) ListHadiths(ctx context.Context, topic string) ([]*models.Hadith, error) {
	q := s.db.WithContext(ctx).Model(&models.Hadith{})
	if topic != "" {
		q = q.Where("topic = ?", topic)
	}
	var hadiths []*models.Hadith
	if err := q.Order("created_at DESC").Find(&hadiths).Error; err != nil {
		return nil, fmt.Errorf("failed to list hadiths: %w", err)
	}
	return hadiths, nil
}

// Admin upserts. Finished content only; generation happens outside this
// service.

func (s *Service) UpsertStory(ctx context.Context, story *models.Story) error {
	if story.Title == "" || story.Content == "" {
		return errors.New("story requires title and content")
	}
	if story.ID == "" {
		story.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Save(story).Error; err != nil {
		return fmt.Errorf("failed to save story: %w", err)
	}
	return nil
}

func (s *Service) UpsertDua(ctx context.Context, dua *models.Dua) error {
	if dua.Title == "" || dua.Arabic == "" {
		return errors.New("dua requires title and arabic text")
	}
	if dua.ID == "" {
		dua.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Save(dua).Error; err != nil {
		return fmt.Errorf("failed to save dua: %w", err)
	}
	return nil
}

func (s *Service) UpsertHadith(ctx context.Context, hadith *models.Hadith) error {
	if hadith.Text == "" {
		return errors.New("hadith requires text")
	}
	if hadith.ID == "" {
		hadith.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Save(hadith).Error; err != nil {
		return fmt.Errorf("failed to save hadith: %w", err)
	}
	return nil
}

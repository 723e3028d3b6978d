package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"festa-pos/live"
	"festa-pos/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxMemoLength = 500
	memoListLimit = 100
	memoWindow    = 6 // months
)

var ErrInvalidMemo = errors.New("memo text must be 1 to 500 characters")

type MemoService interface {
	AddMemo(ctx context.Context, text string) (*models.Memo, error)
	ListMemos(ctx context.Context) ([]models.Memo, error)
}

type memoService struct {
	db        *gorm.DB
	publisher live.Publisher
	now       func() time.Time
}

func NewMemoService(db *gorm.DB, publisher live.Publisher, now func() time.Time) MemoService {
	if now == nil {
		now = time.Now
	}
	return &memoService{db: db, publisher: publisher, now: now}
}

func (s *memoService) AddMemo(ctx context.Context, text string) (*models.Memo, error) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > MaxMemoLength {
		return nil, ErrInvalidMemo
	}

	memo := models.Memo{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&memo).Error; err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(live.Event{
			Topic:   live.TopicMemos,
			Type:    live.EventMemoCreated,
			Payload: &memo,
			At:      memo.CreatedAt,
		})
	}
	return &memo, nil
}

// ListMemos returns the newest memos of the last six months, oldest first.
func (s *memoService) ListMemos(ctx context.Context) ([]models.Memo, error) {
	since := s.now().AddDate(0, -memoWindow, 0).UTC()

	memos := []models.Memo{}
	if err := s.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(memoListLimit).
		Find(&memos).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(memos)-1; i < j; i, j = i+1, j-1 {
		memos[i], memos[j] = memos[j], memos[i]
	}
	return memos, nil
}

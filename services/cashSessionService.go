package services

import (
	"context"
	"errors"
	"time"

	"festa-pos/models"

	"gorm.io/gorm"
)

var (
	ErrCashSessionOpen     = errors.New("a cash session is already open")
	ErrCashSessionNotFound = errors.New("no open cash session")
)

type CashSessionService interface {
	Open(ctx context.Context, userID uint, openingCash int64) (*models.CashSession, error)
	Current(ctx context.Context, userID uint) (*models.CashSession, error)
	Close(ctx context.Context, userID uint, closingCash int64) (*models.CashSession, error)
}

type cashSessionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCashSessionService(db *gorm.DB, now func() time.Time) CashSessionService {
	if now == nil {
		now = time.Now
	}
	return &cashSessionService{db: db, now: now}
}

func findOpenSession(db *gorm.DB, userID uint) (*models.CashSession, error) {
	var session models.CashSession
	if err := db.Where("user_id = ? AND status = ?", userID, models.CashSessionOpen).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCashSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *cashSessionService) Open(ctx context.Context, userID uint, openingCash int64) (*models.CashSession, error) {
	var session models.CashSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOpenSession(tx, userID); err == nil {
			return ErrCashSessionOpen
		} else if !errors.Is(err, ErrCashSessionNotFound) {
			return err
		}

		session = models.CashSession{
			UserID:       userID,
			OpeningCash:  openingCash,
			ExpectedCash: openingCash,
			Status:       models.CashSessionOpen,
			OpenedAt:     s.now().UTC(),
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *cashSessionService) Current(ctx context.Context, userID uint) (*models.CashSession, error) {
	session, err := findOpenSession(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if err := s.tally(s.db.WithContext(ctx), session, s.now().UTC()); err != nil {
		return nil, err
	}
	return session, nil
}

// Close counts the drawer against opening cash plus the sales of every
// non-cancelled order taken while the session was open.
func (s *cashSessionService) Close(ctx context.Context, userID uint, closingCash int64) (*models.CashSession, error) {
	var session *models.CashSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		session, err = findOpenSession(tx, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if err := s.tally(tx, session, now); err != nil {
			return err
		}

		diff := closingCash - session.ExpectedCash
		session.ClosingCash = &closingCash
		session.Difference = &diff
		session.Status = models.CashSessionClosed
		session.ClosedAt = &now

		return tx.Save(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *cashSessionService) tally(db *gorm.DB, session *models.CashSession, until time.Time) error {
	var result struct {
		TotalSales int64
		OrderCount int64
	}
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_sales, COUNT(*) AS order_count").
		Where("status <> ? AND created_at >= ? AND created_at <= ?", models.StatusCancelled, session.OpenedAt.UTC(), until).
		Scan(&result).Error; err != nil {
		return err
	}

	session.TotalSales = result.TotalSales
	session.OrderCount = result.OrderCount
	session.ExpectedCash = session.OpeningCash + result.TotalSales
	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"festa-pos/dtos"
	"festa-pos/models"
	"festa-pos/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Notifier interface {
	Send(ctx context.Context, message string) error
}

type DashboardService interface {
	Daily(ctx context.Context, date string) (*dtos.DailySummary, error)
	History(ctx context.Context) ([]dtos.DailyTotal, error)
	ExportCSV(ctx context.Context, date string) ([]byte, error)
	SendDailyReport(ctx context.Context) error
}

type dashboardService struct {
	db       *gorm.DB
	hours    BusinessHours
	notifier Notifier
	now      func() time.Time
}

func NewDashboardService(db *gorm.DB, hours BusinessHours, notifier Notifier, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{db: db, hours: hours, notifier: notifier, now: now}
}

// Daily summarises date (YYYY-MM-DD), or today when date is empty.
func (s *dashboardService) Daily(ctx context.Context, date string) (*dtos.DailySummary, error) {
	day := s.now()
	if date != "" {
		d, err := ParseDay(date, s.hours.loc())
		if err != nil {
			return nil, err
		}
		day = d
	}

	start, end := DayBounds(day, s.hours.loc())

	var orders []models.Order
	if err := preloadItems(s.db.WithContext(ctx)).
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	summary := AggregateDaily(orders, day, s.hours)
	return &summary, nil
}

func (s *dashboardService) History(ctx context.Context) ([]dtos.DailyTotal, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Select("id", "status", "total_amount", "created_at").
		Where("status = ?", models.StatusCompleted).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return AggregateHistory(orders, s.hours.loc()), nil
}

func (s *dashboardService) ExportCSV(ctx context.Context, date string) ([]byte, error) {
	summary, err := s.Daily(ctx, date)
	if err != nil {
		return nil, err
	}
	return utils.DailySummaryCSV(*summary)
}

func (s *dashboardService) SendDailyReport(ctx context.Context) error {
	if s.notifier == nil {
		return utils.ErrWebhookDisabled
	}

	summary, err := s.Daily(ctx, "")
	if err != nil {
		return err
	}

	if err := s.notifier.Send(ctx, utils.FormatDailyReportMessage(*summary)); err != nil {
		return fmt.Errorf("send daily report: %w", err)
	}

	log.Info().Str("date", summary.Date).Int64("total", summary.TotalSales).Msg("daily report sent")
	return nil
}

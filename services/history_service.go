package services

import (
	"fmt"
	"time"

	"wellness-rewards-system/models"

	"gorm.io/gorm"
)

type MonthlyPoint struct {
	Month  string `json:"month"`
	Earned int64  `json:"earned"`
	Spent  int64  `json:"spent"`
}

type WeeklyPoint struct {
	Week   string `json:"week"`
	Earned int64  `json:"earned"`
	Spent  int64  `json:"spent"`
}

type PointsHistory struct {
	MonthlyPoints []MonthlyPoint `json:"monthlyPoints"`
	WeeklyPoints  []WeeklyPoint  `json:"weeklyPoints"`
}

// HistoryService buckets a user's ledger entries into chart-ready series:
// the twelve calendar months of the current year and the trailing twelve ISO
// weeks (Monday start). Every bucket in the window is present even at zero
// so chart axes stay continuous.
type HistoryService struct {
	DB    *gorm.DB
	Clock *Clock
}

func NewHistoryService(db *gorm.DB, clock *Clock) *HistoryService {
	return &HistoryService{DB: db, Clock: clock}
}

func (s *HistoryService) PointsHistory(userID string) (*PointsHistory, error) {
	loc := s.Clock.Location()
	now := s.Clock.Now()
	today := s.Clock.Today()

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	weekWindowStart := today.AddDate(0, 0, -7*11)
	since := yearStart
	if weekWindowStart.Before(since) {
		since = weekWindowStart
	}

	var entries []models.LedgerEntry
	if err := s.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	monthEarned := make(map[string]int64)
	monthSpent := make(map[string]int64)
	weekEarned := make(map[string]int64)
	weekSpent := make(map[string]int64)

	// Lookup keys come from the same Clock helpers that generate the
	// buckets below, so earned/spent can never land between buckets.
	for _, e := range entries {
		mk := s.Clock.MonthKey(e.CreatedAt)
		wk := s.Clock.ISOWeekKey(e.CreatedAt)
		if e.Amount >= 0 {
			monthEarned[mk] += e.Amount
			weekEarned[wk] += e.Amount
		} else {
			monthSpent[mk] += -e.Amount
			weekSpent[wk] += -e.Amount
		}
	}

	monthly := make([]MonthlyPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		key := fmt.Sprintf("%d-%02d", now.Year(), int(m))
		monthly = append(monthly, MonthlyPoint{
			Month:  m.String()[:3],
			Earned: monthEarned[key],
			Spent:  monthSpent[key],
		})
	}

	weekly := make([]WeeklyPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		key := s.Clock.ISOWeekKey(today.AddDate(0, 0, -7*i))
		weekly = append(weekly, WeeklyPoint{
			Week:   key,
			Earned: weekEarned[key],
			Spent:  weekSpent[key],
		})
	}

	return &PointsHistory{MonthlyPoints: monthly, WeeklyPoints: weekly}, nil
}

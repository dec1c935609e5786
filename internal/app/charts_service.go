package app

import (
	"context"
	"math"
	"time"

	"weightlog/internal/domain"
)

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	weightRepo  domain.WeightRepository
	profileRepo domain.ProfileRepository
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(wr domain.WeightRepository, pr domain.ProfileRepository) *ChartsService {
	return &ChartsService{weightRepo: wr, profileRepo: pr}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day    string       `json:"day"`
	Weight *WeightPoint `json:"weight"`
	BMI    float64      `json:"bmi,omitempty"`
}

// WeightPoint is the optional weight value within a DayPoint.
type WeightPoint struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// GetDaily returns per-day chart data for the last days days, with weights
// converted to the requested unit. A day with several records uses the one
// created last.
func (s *ChartsService) GetDaily(ctx context.Context, userID string, days int, unit string) ([]DayPoint, error) {
	if !domain.ValidUnit(unit) {
		return nil, invalidf("unit must be \"kg\" or \"lb\"")
	}
	if days <= 0 {
		days = 30
	}
	if days > 366 {
		days = 366
	}

	records, err := s.weightRepo.ListWeightRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	var height float64
	if profile != nil && profile.Height != nil {
		height = *profile.Height
	}

	byDay := make(map[string]domain.WeightRecord, len(records))
	for _, r := range records {
		if prev, ok := byDay[r.Date]; !ok || !r.CreatedAt.Before(prev.CreatedAt) {
			byDay[r.Date] = r
		}
	}

	today := time.Now().In(time.Local)
	points := make([]DayPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		dayStr := today.AddDate(0, 0, -i).Format(domain.DateLayout)
		p := DayPoint{Day: dayStr}
		if rec, ok := byDay[dayStr]; ok {
			val := domain.ConvertWeight(rec.Weight, domain.UnitKg, unit)
			p.Weight = &WeightPoint{Value: math.Round(val*10) / 10, Unit: unit}
			p.BMI = math.Round(domain.ComputeBMI(rec.Weight, height)*10) / 10
		}
		points = append(points, p)
	}
	return points, nil
}

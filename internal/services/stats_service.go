package services

import (
	"fmt"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
)

// DefaultRecentLimit bounds the recent-redemptions view.
const DefaultRecentLimit = 10

type Stats struct {
	Total     int64 `json:"total"`
	Redeemed  int64 `json:"redeemed"`
	Remaining int64 `json:"remaining"`
}

type RedemptionRecord struct {
	ID               string `json:"id"`
	SessionName      string `json:"session_name"`
	ParticipantEmail string `json:"participant_email"`
	RedeemedAt       string `json:"redeemed_at"`
}

// StatsService aggregates pass counts and the recent-redemption audit view.
type StatsService struct {
	passes repositories.PassRepository
}

func NewStatsService(passes repositories.PassRepository) *StatsService {
	return &StatsService{passes: passes}
}

func (s *StatsService) GetStats() (*Stats, error) {
	total, err := s.passes.CountAll()
	if err != nil {
		return nil, fmt.Errorf("stats service: count all: %w", err)
	}
	redeemed, err := s.passes.CountRedeemed()
	if err != nil {
		return nil, fmt.Errorf("stats service: count redeemed: %w", err)
	}
	return &Stats{
		Total:     total,
		Redeemed:  redeemed,
		Remaining: total - redeemed,
	}, nil
}

// RecentRedemptions returns the most recently redeemed passes, newest first.
func (s *StatsService) RecentRedemptions(limit int) ([]RedemptionRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	passes, err := s.passes.ListRedeemed(limit)
	if err != nil {
		return nil, fmt.Errorf("stats service: list redeemed: %w", err)
	}

	records := make([]RedemptionRecord, 0, len(passes))
	for _, p := range passes {
		records = append(records, RedemptionRecord{
			ID:               p.ID,
			SessionName:      p.SessionName,
			ParticipantEmail: p.ParticipantEmail,
			RedeemedAt:       p.RedeemedAtString(),
		})
	}
	return records, nil
}

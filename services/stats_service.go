package services

import (
	"errors"
	"time"

	"gamification-system/models"

	"gorm.io/gorm"
)

// StatsService derives profile statistics and the experience leaderboard.
type StatsService struct {
	DB          *gorm.DB
	Progression *ProgressionService
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db, Progression: NewProgressionService(db)}
}

// UserStats is the aggregated per-user statistics block.
type UserStats struct {
	TotalExperience     int64         `json:"total_experience"`
	TotalMana           int64         `json:"total_mana"`
	MissionsCompleted   int64         `json:"missions_completed"`
	ArtifactsObtained   int64         `json:"artifacts_obtained"`
	CompetencesMaxed    int64         `json:"competences_maxed"`
	CurrentRankProgress float64       `json:"current_rank_progress"`
	RankHistory         []RankHistory `json:"rank_history"`
}

type RankHistory struct {
	Rank       string    `json:"rank"`
	AchievedAt time.Time `json:"achieved_at"`
}

// MaxedCompetenceLevel is the global "maxed" threshold. It is intentionally
// independent of each competence's own max_level (observed platform policy).
const MaxedCompetenceLevel = 10

// ForUser aggregates the statistics block for one user.
func (s *StatsService) ForUser(user *models.User) (*UserStats, error) {
	stats := &UserStats{
		TotalExperience: user.Experience,
		TotalMana:       user.Mana,
		RankHistory:     []RankHistory{},
	}

	if err := s.DB.Model(&models.UserMission{}).
		Where("user_id = ? AND status = ?", user.ID, models.UserMissionCompleted).
		Count(&stats.MissionsCompleted).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.UserArtifact{}).
		Where("user_id = ?", user.ID).
		Count(&stats.ArtifactsObtained).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.UserCompetence{}).
		Where("user_id = ? AND level >= ?", user.ID, MaxedCompetenceLevel).
		Count(&stats.CompetencesMaxed).Error; err != nil {
		return nil, err
	}

	current, err := s.currentRank(user)
	if err != nil {
		return nil, err
	}
	next, err := s.Progression.NextRank(current)
	if err != nil {
		return nil, err
	}
	stats.CurrentRankProgress = RankProgress(user.Experience, current, next)

	var rankUps []models.Log
	if err := s.DB.Where("user_id = ? AND event_type = ?", user.ID, models.EventRankUp).
		Order("created_at ASC").
		Find(&rankUps).Error; err != nil {
		return nil, err
	}
	for _, entry := range rankUps {
		name := "Unknown"
		if v, ok := entry.Data["rank_name"].(string); ok {
			name = v
		}
		stats.RankHistory = append(stats.RankHistory, RankHistory{Rank: name, AchievedAt: entry.CreatedAt})
	}

	return stats, nil
}

func (s *StatsService) currentRank(user *models.User) (*models.Rank, error) {
	if user.Rank != nil {
		return user.Rank, nil
	}
	var rank models.Rank
	err := s.DB.First(&rank, user.CurrentRankID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rank, nil
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Position          int             `json:"position"`
	User              LeaderboardUser `json:"user"`
	Experience        int64           `json:"experience"`
	MissionsCompleted int64           `json:"missions_completed"`
}

type LeaderboardUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Rank string `json:"rank"`
}

// Leaderboard ranks users by experience descending. period "week" and "month"
// restrict to users active (updated) inside the window; any other token means
// all time. The requester's global position ignores the period filter.
func (s *StatsService) Leaderboard(requester *models.User, period string, limit int) ([]LeaderboardEntry, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := s.DB.Model(&models.User{}).
		Preload("Rank").
		Order("experience DESC")

	switch period {
	case "week":
		query = query.Where("updated_at >= ?", time.Now().AddDate(0, 0, -7))
	case "month":
		query = query.Where("updated_at >= ?", time.Now().AddDate(0, 0, -30))
	}

	var users []models.User
	if err := query.Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		rankName := "Новичок"
		if u.Rank != nil {
			rankName = u.Rank.Name
		}
		var completed int64
		if err := s.DB.Model(&models.UserMission{}).
			Where("user_id = ? AND status = ?", u.ID, models.UserMissionCompleted).
			Count(&completed).Error; err != nil {
			return nil, 0, err
		}
		entries[i] = LeaderboardEntry{
			Position:          i + 1,
			User:              LeaderboardUser{ID: u.ID, Name: u.Name, Rank: rankName},
			Experience:        u.Experience,
			MissionsCompleted: completed,
		}
	}

	var ahead int64
	if err := s.DB.Model(&models.User{}).
		Where("experience > ?", requester.Experience).
		Count(&ahead).Error; err != nil {
		return nil, 0, err
	}

	return entries, ahead + 1, nil
}

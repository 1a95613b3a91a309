package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gamification-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressionService owns the rules for starting and completing missions,
// applying rewards, and deriving rank progress.
type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// StartResult is the created association returned by StartMission.
type StartResult struct {
	MissionID uint      `json:"mission_id"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// RewardSummary reports what a completion granted.
type RewardSummary struct {
	Experience int64             `json:"experience"`
	Mana       int64             `json:"mana"`
	Artifacts  []models.Artifact `json:"artifacts"`
}

// CompleteResult is returned by CompleteMission.
type CompleteResult struct {
	MissionID   uint          `json:"mission_id"`
	Status      string        `json:"status"`
	CompletedAt time.Time     `json:"completed_at"`
	Rewards     RewardSummary `json:"rewards"`
}

// StartMission creates the user↔mission association with status in_progress.
// A row for the pair in any status blocks a new start; concurrent starts are
// arbitrated by the unique (user_id, mission_id) index.
func (s *ProgressionService) StartMission(userID, missionID uint) (*StartResult, error) {
	var mission models.Mission
	if err := s.DB.Where("id = ? AND status = ?", missionID, models.MissionStatusPublished).
		First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if user.CurrentRankID < mission.RequiredRankID {
		return nil, ErrInsufficientRank
	}

	var existing int64
	if err := s.DB.Model(&models.UserMission{}).
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrMissionAlreadyStart
	}

	um := models.UserMission{
		UserID:    userID,
		MissionID: missionID,
		Status:    models.UserMissionInProgress,
		StartedAt: time.Now(),
	}
	if err := s.DB.Create(&um).Error; err != nil {
		// Lost the race against a concurrent start for the same pair.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMissionAlreadyStart
		}
		return nil, err
	}

	return &StartResult{MissionID: missionID, Status: um.Status, StartedAt: um.StartedAt}, nil
}

// CompleteMission applies the full reward transaction: mark completed, grant
// experience/mana, idempotent artifact grant, competence credit, audit log,
// and rank promotion. All effects commit together or not at all.
func (s *ProgressionService) CompleteMission(userID, missionID uint, evidence string) (*CompleteResult, error) {
	var mission models.Mission
	if err := s.DB.Preload("Artifact").First(&mission, missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}

	completedAt := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// The status-guarded update is the arbiter between racing completions:
		// only one of two concurrent attempts flips the row.
		res := tx.Model(&models.UserMission{}).
			Where("user_id = ? AND mission_id = ? AND status = ?",
				userID, missionID, models.UserMissionInProgress).
			Updates(map[string]any{
				"status":       models.UserMissionCompleted,
				"completed_at": completedAt,
				"evidence":     evidence,
				"progress":     100,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMissionNotInProgress
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]any{
				"experience": gorm.Expr("experience + ?", mission.ExperienceReward),
				"mana":       gorm.Expr("mana + ?", mission.ManaReward),
			}).Error; err != nil {
			return err
		}

		if mission.ArtifactID != nil {
			ua := models.UserArtifact{
				UserID:     userID,
				ArtifactID: *mission.ArtifactID,
				ObtainedAt: completedAt,
			}
			// Already owning the artifact is a no-op, not an error.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ua).Error; err != nil {
				return err
			}
		}

		for _, competenceID := range mission.CompetenceRewards {
			var uc models.UserCompetence
			err := tx.Where("user_id = ? AND competence_id = ?", userID, competenceID).First(&uc).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				uc = models.UserCompetence{
					UserID:       userID,
					CompetenceID: competenceID,
					Level:        1,
					Experience:   models.CompetenceRewardIncrement,
				}
				if err := tx.Create(&uc).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				if err := tx.Model(&uc).
					Update("experience", gorm.Expr("experience + ?", models.CompetenceRewardIncrement)).Error; err != nil {
					return err
				}
			}
		}

		entry := models.Log{
			UserID:      userID,
			EventType:   models.EventMissionCompleted,
			Description: fmt.Sprintf("Завершена миссия: %s", mission.Title),
			Data: map[string]any{
				"mission_id":        mission.ID,
				"experience_gained": mission.ExperienceReward,
				"mana_gained":       mission.ManaReward,
			},
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return s.promoteRank(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	rewards := RewardSummary{
		Experience: mission.ExperienceReward,
		Mana:       mission.ManaReward,
		Artifacts:  []models.Artifact{},
	}
	if mission.Artifact != nil {
		rewards.Artifacts = append(rewards.Artifacts, *mission.Artifact)
	}

	log.Printf("🏆 Mission completed: user=%d mission=%d (+%d xp, +%d mana)",
		userID, missionID, mission.ExperienceReward, mission.ManaReward)

	return &CompleteResult{
		MissionID:   missionID,
		Status:      models.UserMissionCompleted,
		CompletedAt: completedAt,
		Rewards:     rewards,
	}, nil
}

// promoteRank moves the user to the highest rank whose threshold their new
// experience meets, logging a rank_up event per promotion step.
func (s *ProgressionService) promoteRank(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	var eligible models.Rank
	err := tx.Where("min_experience <= ?", user.Experience).
		Order("min_experience DESC").
		First(&eligible).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // no ranks configured
	}
	if err != nil {
		return err
	}
	if eligible.ID == user.CurrentRankID {
		return nil
	}

	var current models.Rank
	if err := tx.First(&current, user.CurrentRankID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if eligible.MinExperience <= current.MinExperience {
		return nil // never demote
	}

	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("current_rank_id", eligible.ID).Error; err != nil {
		return err
	}

	entry := models.Log{
		UserID:      userID,
		EventType:   models.EventRankUp,
		Description: fmt.Sprintf("Получен новый ранг: %s", eligible.Name),
		Data: map[string]any{
			"rank_id":   eligible.ID,
			"rank_name": eligible.Name,
		},
	}
	return tx.Create(&entry).Error
}

// RankProgress computes percentage progress from the current rank toward the
// next one. Pure and total: callers supply both ranks already resolved, either
// of which may be nil.
func RankProgress(experience int64, current, next *models.Rank) float64 {
	if current == nil {
		return 0
	}
	if next == nil {
		return 100
	}
	if experience < current.MinExperience {
		return 0
	}
	if experience >= next.MinExperience {
		return 100
	}
	span := next.MinExperience - current.MinExperience
	if span <= 0 {
		return 100
	}
	progress := float64(experience-current.MinExperience) / float64(span) * 100
	progress = math.Round(progress*10) / 10
	return math.Max(0, math.Min(100, progress))
}

// NextRank resolves the rank with the smallest min_experience strictly above
// the given one, or nil when the user already holds the top rank.
func (s *ProgressionService) NextRank(current *models.Rank) (*models.Rank, error) {
	if current == nil {
		return nil, nil
	}
	var next models.Rank
	err := s.DB.Where("min_experience > ?", current.MinExperience).
		Order("min_experience ASC").
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}

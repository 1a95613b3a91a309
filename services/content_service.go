package services

import (
	"errors"
	"log"
	"time"

	"gamification-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ContentService is the HR-facing side of mission content: draft CRUD and
// publish scheduling. Player-facing reads only ever see published missions.
type ContentService struct {
	DB *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{DB: db}
}

// MissionInput carries admin create/update fields.
type MissionInput struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	ExperienceReward  *int64   `json:"experience_reward"`
	ManaReward        *int64   `json:"mana_reward"`
	RequiredRankID    *uint    `json:"required_rank_id"`
	Category          string   `json:"category"`
	Branch            string   `json:"branch"`
	CompetenceRewards []uint   `json:"competence_rewards"`
	ArtifactID        *uint    `json:"artifact_id"`
	Requirements      []string `json:"requirements"`
	Steps             []string `json:"steps"`
}

// AllMissions returns every mission regardless of publishing state.
func (s *ContentService) AllMissions() ([]models.Mission, error) {
	var missions []models.Mission
	err := s.DB.Preload("RequiredRank").Preload("Artifact").
		Order("id ASC").Find(&missions).Error
	return missions, err
}

// checkRefs rejects dangling rank and artifact references before they can
// reach the rewards path.
func (s *ContentService) checkRefs(rankID, artifactID *uint) error {
	if rankID != nil {
		var rank models.Rank
		if err := s.DB.First(&rank, *rankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRankNotFound
			}
			return err
		}
	}
	if artifactID != nil {
		var artifact models.Artifact
		if err := s.DB.First(&artifact, *artifactID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArtifactNotFound
			}
			return err
		}
	}
	return nil
}

// CreateMission stores a new mission as a draft.
func (s *ContentService) CreateMission(in MissionInput) (*models.Mission, error) {
	if err := s.checkRefs(in.RequiredRankID, in.ArtifactID); err != nil {
		return nil, err
	}

	mission := models.Mission{
		Title:             in.Title,
		Description:       in.Description,
		RequiredRankID:    1,
		Category:          in.Category,
		Branch:            in.Branch,
		CompetenceRewards: in.CompetenceRewards,
		ArtifactID:        in.ArtifactID,
		Requirements:      in.Requirements,
		Steps:             in.Steps,
		Status:            models.MissionStatusDraft,
	}
	if in.ExperienceReward != nil {
		mission.ExperienceReward = *in.ExperienceReward
	}
	if in.ManaReward != nil {
		mission.ManaReward = *in.ManaReward
	}
	if in.RequiredRankID != nil {
		mission.RequiredRankID = *in.RequiredRankID
	}

	if err := s.DB.Create(&mission).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

// UpdateMission applies partial changes.
func (s *ContentService) UpdateMission(missionID uint, in MissionInput) (*models.Mission, error) {
	var mission models.Mission
	if err := s.DB.First(&mission, missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}
	if err := s.checkRefs(in.RequiredRankID, in.ArtifactID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Title != "" {
		updates["title"] = in.Title
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if in.ExperienceReward != nil {
		updates["experience_reward"] = *in.ExperienceReward
	}
	if in.ManaReward != nil {
		updates["mana_reward"] = *in.ManaReward
	}
	if in.RequiredRankID != nil {
		updates["required_rank_id"] = *in.RequiredRankID
	}
	if in.Category != "" {
		updates["category"] = in.Category
	}
	if in.Branch != "" {
		updates["branch"] = in.Branch
	}
	if in.ArtifactID != nil {
		updates["artifact_id"] = *in.ArtifactID
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&mission).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if in.CompetenceRewards != nil {
		if err := s.DB.Model(&mission).Update("competence_rewards", in.CompetenceRewards).Error; err != nil {
			return nil, err
		}
	}
	if in.Requirements != nil {
		if err := s.DB.Model(&mission).Update("requirements", in.Requirements).Error; err != nil {
			return nil, err
		}
	}
	if in.Steps != nil {
		if err := s.DB.Model(&mission).Update("steps", in.Steps).Error; err != nil {
			return nil, err
		}
	}

	if err := s.DB.First(&mission, missionID).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

// DeleteMission removes a mission definition.
func (s *ContentService) DeleteMission(missionID uint) error {
	res := s.DB.Delete(&models.Mission{}, missionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMissionNotFound
	}
	return nil
}

// PublishNow makes a mission visible to players immediately.
func (s *ContentService) PublishNow(missionID uint) error {
	return s.setPublishState(missionID, models.MissionStatusPublished, nil)
}

// SchedulePublish queues a mission for automatic publication.
func (s *ContentService) SchedulePublish(missionID uint, at time.Time) error {
	return s.setPublishState(missionID, models.MissionStatusScheduled, &at)
}

// CancelScheduledPublish reverts a scheduled mission to draft.
func (s *ContentService) CancelScheduledPublish(missionID uint) error {
	return s.setPublishState(missionID, models.MissionStatusDraft, nil)
}

func (s *ContentService) setPublishState(missionID uint, status string, publishAt *time.Time) error {
	res := s.DB.Model(&models.Mission{}).Where("id = ?", missionID).
		Updates(map[string]any{"status": status, "publish_at": publishAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMissionNotFound
	}
	return nil
}

// StartPublishScheduler promotes scheduled missions whose publish time has
// passed. Runs every minute.
func (s *ContentService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var missions []models.Mission
			now := time.Now()
			err := s.DB.Where("status = ? AND publish_at <= ?", models.MissionStatusScheduled, now).
				Find(&missions).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, m := range missions {
				m.Status = models.MissionStatusPublished
				m.PublishAt = nil
				if err := s.DB.Save(&m).Error; err != nil {
					log.Printf("[Scheduler] Failed to publish mission %d: %v", m.ID, err)
				} else {
					log.Printf("✅ Auto-published mission: %s", m.Title)
				}
			}
		}),
	)
}

package services

import (
	"errors"

	"gamification-system/models"

	"gorm.io/gorm"
)

const DefaultPageSize = 20

// MissionService assembles read-only mission views: the catalog joined with
// the requesting user's progress. No business rules beyond filter/sort/page.
type MissionService struct {
	DB *gorm.DB
}

func NewMissionService(db *gorm.DB) *MissionService {
	return &MissionService{DB: db}
}

// MissionView is a mission with the requester's status merged in.
type MissionView struct {
	models.Mission
	UserStatus string `json:"status"`
	Progress   int    `json:"progress"`
}

// Pagination reports fixed-size 1-indexed pages.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// MissionFilter narrows the listing.
type MissionFilter struct {
	Category string
	Branch   string
	Status   string // available | in_progress | completed
	Page     int
	Limit    int
}

// List returns published missions with per-user status. Missions without a
// UserMission row report status "available" and progress 0.
func (s *MissionService) List(user *models.User, f MissionFilter) ([]MissionView, *Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = DefaultPageSize
	}

	query := s.DB.Model(&models.Mission{}).
		Preload("RequiredRank").Preload("Artifact").
		Where("status = ?", models.MissionStatusPublished)

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Branch != "" {
		query = query.Where("branch = ?", f.Branch)
	}

	switch f.Status {
	case "available":
		query = query.Where("required_rank_id <= ?", user.CurrentRankID).
			Where("id NOT IN (?)", s.DB.Model(&models.UserMission{}).
				Select("mission_id").Where("user_id = ?", user.ID))
	case models.UserMissionInProgress, models.UserMissionCompleted:
		query = query.Where("id IN (?)", s.DB.Model(&models.UserMission{}).
			Select("mission_id").Where("user_id = ? AND status = ?", user.ID, f.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var missions []models.Mission
	if err := query.Order("id ASC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&missions).Error; err != nil {
		return nil, nil, err
	}

	views, err := s.mergeStatus(user.ID, missions)
	if err != nil {
		return nil, nil, err
	}

	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return views, &Pagination{Total: total, Page: f.Page, Limit: f.Limit, Pages: pages}, nil
}

// Get returns one published mission with the requester's status merged in.
func (s *MissionService) Get(user *models.User, missionID uint) (*MissionView, error) {
	var mission models.Mission
	err := s.DB.Preload("RequiredRank").Preload("Artifact").
		Where("id = ? AND status = ?", missionID, models.MissionStatusPublished).
		First(&mission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMissionNotFound
	}
	if err != nil {
		return nil, err
	}

	views, err := s.mergeStatus(user.ID, []models.Mission{mission})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *MissionService) mergeStatus(userID uint, missions []models.Mission) ([]MissionView, error) {
	ids := make([]uint, len(missions))
	for i, m := range missions {
		ids[i] = m.ID
	}

	byMission := map[uint]models.UserMission{}
	if len(ids) > 0 {
		var rows []models.UserMission
		if err := s.DB.Where("user_id = ? AND mission_id IN ?", userID, ids).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			byMission[r.MissionID] = r
		}
	}

	views := make([]MissionView, len(missions))
	for i, m := range missions {
		view := MissionView{Mission: m, UserStatus: "available", Progress: 0}
		if row, ok := byMission[m.ID]; ok {
			view.UserStatus = row.Status
			view.Progress = row.Progress
		}
		views[i] = view
	}
	return views, nil
}

package services

import (
	"fmt"
	"testing"

	"gamification-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a per-test in-memory database to avoid cross-test interference.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Rank{},
		&models.Mission{},
		&models.UserMission{},
		&models.Artifact{},
		&models.UserArtifact{},
		&models.Competence{},
		&models.UserCompetence{},
		&models.StoreItem{},
		&models.Theme{},
		&models.Log{},
	))
	return db
}

func seedRanks(t *testing.T, db *gorm.DB) {
	t.Helper()
	ranks := []models.Rank{
		{ID: 1, Name: "Новичок", MinExperience: 0},
		{ID: 2, Name: "Исследователь", MinExperience: 100},
		{ID: 3, Name: "Мастер", MinExperience: 500},
		{ID: 4, Name: "Легенда", MinExperience: 1000},
	}
	require.NoError(t, db.Create(&ranks).Error)
}

func createUser(t *testing.T, db *gorm.DB, name string, experience int64) *models.User {
	t.Helper()
	user := models.User{
		Name:          name,
		Email:         name + "@example.com",
		Password:      "irrelevant",
		Role:          models.RoleUser,
		Experience:    experience,
		Mana:          StartingMana,
		CurrentRankID: 1,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createMission(t *testing.T, db *gorm.DB, m models.Mission) *models.Mission {
	t.Helper()
	if m.Status == "" {
		m.Status = models.MissionStatusPublished
	}
	if m.RequiredRankID == 0 {
		m.RequiredRankID = 1
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

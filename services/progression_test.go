package services

import (
	"testing"

	"gamification-system/models"

	"github.com/stretchr/testify/require"
)

func TestStartMission(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)
	mission := createMission(t, db, models.Mission{Title: "Первая миссия"})

	res, err := svc.StartMission(user.ID, mission.ID)
	require.NoError(t, err)
	require.Equal(t, mission.ID, res.MissionID)
	require.Equal(t, models.UserMissionInProgress, res.Status)
	require.False(t, res.StartedAt.IsZero())

	// Second start of the same mission is rejected.
	_, err = svc.StartMission(user.ID, mission.ID)
	require.ErrorIs(t, err, ErrMissionAlreadyStart)
}

func TestStartMissionUnknown(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)

	_, err := svc.StartMission(user.ID, 4242)
	require.ErrorIs(t, err, ErrMissionNotFound)
}

func TestStartMissionDraftInvisible(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)
	mission := createMission(t, db, models.Mission{Title: "Черновик", Status: models.MissionStatusDraft})

	_, err := svc.StartMission(user.ID, mission.ID)
	require.ErrorIs(t, err, ErrMissionNotFound)
}

func TestStartMissionInsufficientRank(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)
	mission := createMission(t, db, models.Mission{Title: "Для мастеров", RequiredRankID: 3})

	_, err := svc.StartMission(user.ID, mission.ID)
	require.ErrorIs(t, err, ErrInsufficientRank)

	// No association row may be created by a failed start.
	var count int64
	require.NoError(t, db.Model(&models.UserMission{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestCompleteMissionRewards(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)

	artifact := models.Artifact{Name: "Золотой значок", Rarity: models.RarityRare}
	require.NoError(t, db.Create(&artifact).Error)
	competence := models.Competence{Name: "Аналитика"}
	require.NoError(t, db.Create(&competence).Error)

	mission := createMission(t, db, models.Mission{
		Title:             "Пройти обучение",
		ExperienceReward:  50,
		ManaReward:        25,
		ArtifactID:        &artifact.ID,
		CompetenceRewards: []uint{competence.ID},
	})

	_, err := svc.StartMission(user.ID, mission.ID)
	require.NoError(t, err)

	res, err := svc.CompleteMission(user.ID, mission.ID, "ссылка на сертификат")
	require.NoError(t, err)
	require.Equal(t, models.UserMissionCompleted, res.Status)
	require.Equal(t, int64(50), res.Rewards.Experience)
	require.Equal(t, int64(25), res.Rewards.Mana)
	require.Len(t, res.Rewards.Artifacts, 1)
	require.Equal(t, artifact.ID, res.Rewards.Artifacts[0].ID)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(50), fresh.Experience)
	require.Equal(t, int64(StartingMana+25), fresh.Mana)

	var um models.UserMission
	require.NoError(t, db.Where("user_id = ? AND mission_id = ?", user.ID, mission.ID).First(&um).Error)
	require.Equal(t, models.UserMissionCompleted, um.Status)
	require.Equal(t, 100, um.Progress)
	require.Equal(t, "ссылка на сертификат", um.Evidence)
	require.NotNil(t, um.CompletedAt)

	var owned int64
	require.NoError(t, db.Model(&models.UserArtifact{}).
		Where("user_id = ? AND artifact_id = ?", user.ID, artifact.ID).Count(&owned).Error)
	require.Equal(t, int64(1), owned)

	var uc models.UserCompetence
	require.NoError(t, db.Where("user_id = ? AND competence_id = ?", user.ID, competence.ID).First(&uc).Error)
	require.Equal(t, 1, uc.Level)
	require.Equal(t, int64(models.CompetenceRewardIncrement), uc.Experience)

	var logs int64
	require.NoError(t, db.Model(&models.Log{}).
		Where("user_id = ? AND event_type = ?", user.ID, models.EventMissionCompleted).Count(&logs).Error)
	require.Equal(t, int64(1), logs)
}

func TestCompleteBeforeStart(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)
	mission := createMission(t, db, models.Mission{Title: "Миссия", ExperienceReward: 50, ManaReward: 25})

	_, err := svc.CompleteMission(user.ID, mission.ID, "доказательство")
	require.ErrorIs(t, err, ErrMissionNotInProgress)

	// The whole transaction rolled back: no rewards, no logs.
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Zero(t, fresh.Experience)
	require.Equal(t, int64(StartingMana), fresh.Mana)

	var logs int64
	require.NoError(t, db.Model(&models.Log{}).Where("user_id = ?", user.ID).Count(&logs).Error)
	require.Zero(t, logs)
}

func TestCompleteMissionTwice(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)
	mission := createMission(t, db, models.Mission{Title: "Миссия", ExperienceReward: 50})

	_, err := svc.StartMission(user.ID, mission.ID)
	require.NoError(t, err)
	_, err = svc.CompleteMission(user.ID, mission.ID, "раз")
	require.NoError(t, err)

	// The status guard arbitrates: the second attempt sees no in_progress row.
	_, err = svc.CompleteMission(user.ID, mission.ID, "два")
	require.ErrorIs(t, err, ErrMissionNotInProgress)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(50), fresh.Experience)
}

func TestArtifactGrantIdempotent(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)

	artifact := models.Artifact{Name: "Значок"}
	require.NoError(t, db.Create(&artifact).Error)

	// Two missions granting the same artifact.
	first := createMission(t, db, models.Mission{Title: "Первая", ArtifactID: &artifact.ID})
	second := createMission(t, db, models.Mission{Title: "Вторая", ArtifactID: &artifact.ID})

	for _, m := range []*models.Mission{first, second} {
		_, err := svc.StartMission(user.ID, m.ID)
		require.NoError(t, err)
		_, err = svc.CompleteMission(user.ID, m.ID, "сделано")
		require.NoError(t, err)
	}

	var owned int64
	require.NoError(t, db.Model(&models.UserArtifact{}).
		Where("user_id = ? AND artifact_id = ?", user.ID, artifact.ID).Count(&owned).Error)
	require.Equal(t, int64(1), owned)
}

func TestCompetenceCreditAccumulates(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)

	competence := models.Competence{Name: "Коммуникация"}
	require.NoError(t, db.Create(&competence).Error)

	first := createMission(t, db, models.Mission{Title: "Первая", CompetenceRewards: []uint{competence.ID}})
	second := createMission(t, db, models.Mission{Title: "Вторая", CompetenceRewards: []uint{competence.ID}})

	for _, m := range []*models.Mission{first, second} {
		_, err := svc.StartMission(user.ID, m.ID)
		require.NoError(t, err)
		_, err = svc.CompleteMission(user.ID, m.ID, "ок")
		require.NoError(t, err)
	}

	var uc models.UserCompetence
	require.NoError(t, db.Where("user_id = ? AND competence_id = ?", user.ID, competence.ID).First(&uc).Error)
	require.Equal(t, int64(2*models.CompetenceRewardIncrement), uc.Experience)
	require.Equal(t, 1, uc.Level) // level is static after creation
}

func TestRankPromotion(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 90)

	mission := createMission(t, db, models.Mission{Title: "Рубеж", ExperienceReward: 30})
	_, err := svc.StartMission(user.ID, mission.ID)
	require.NoError(t, err)
	_, err = svc.CompleteMission(user.ID, mission.ID, "готово")
	require.NoError(t, err)

	// 90 + 30 = 120 crosses the 100-experience threshold.
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, uint(2), fresh.CurrentRankID)

	var entry models.Log
	require.NoError(t, db.Where("user_id = ? AND event_type = ?", user.ID, models.EventRankUp).
		First(&entry).Error)
	require.Equal(t, "Исследователь", entry.Data["rank_name"])
}

func TestRankPromotionSkipsIntermediate(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)
	user := createUser(t, db, "alice", 0)

	mission := createMission(t, db, models.Mission{Title: "Мега", ExperienceReward: 600})
	_, err := svc.StartMission(user.ID, mission.ID)
	require.NoError(t, err)
	_, err = svc.CompleteMission(user.ID, mission.ID, "готово")
	require.NoError(t, err)

	// 600 lands directly on rank 3, skipping rank 2.
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, uint(3), fresh.CurrentRankID)
}

func TestRankProgress(t *testing.T) {
	novice := &models.Rank{ID: 1, Name: "Новичок", MinExperience: 0}
	explorer := &models.Rank{ID: 2, Name: "Исследователь", MinExperience: 100}

	require.Equal(t, float64(25), RankProgress(25, novice, explorer))
	require.Equal(t, float64(0), RankProgress(0, novice, explorer))
	require.Equal(t, float64(100), RankProgress(100, novice, explorer))
	require.Equal(t, float64(100), RankProgress(9999, novice, explorer))

	// No current rank resolves to 0; top rank resolves to 100.
	require.Equal(t, float64(0), RankProgress(25, nil, explorer))
	require.Equal(t, float64(100), RankProgress(25, novice, nil))

	// Monotone in experience.
	prev := float64(-1)
	for exp := int64(0); exp <= 100; exp += 5 {
		p := RankProgress(exp, novice, explorer)
		require.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestNextRank(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewProgressionService(db)

	var novice, legend models.Rank
	require.NoError(t, db.First(&novice, 1).Error)
	require.NoError(t, db.First(&legend, 4).Error)

	next, err := svc.NextRank(&novice)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.Equal(t, uint(2), next.ID)

	top, err := svc.NextRank(&legend)
	require.NoError(t, err)
	require.Nil(t, top)
}

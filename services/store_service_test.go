package services

import (
	"testing"

	"gamification-system/models"

	"github.com/stretchr/testify/require"
)

func TestPurchase(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewStoreService(db)
	user := createUser(t, db, "alice", 0) // 100 starting mana

	item := models.StoreItem{Name: "Кружка", Price: 60}
	require.NoError(t, db.Create(&item).Error)

	res, err := svc.Purchase(user.ID, item.ID)
	require.NoError(t, err)
	require.Equal(t, int64(60), res.Price)
	require.Equal(t, int64(40), res.RemainingMana)

	var entry models.Log
	require.NoError(t, db.Where("user_id = ? AND event_type = ?", user.ID, models.EventStorePurchase).
		First(&entry).Error)

	// Second purchase would overdraw; the whole transaction rolls back.
	_, err = svc.Purchase(user.ID, item.ID)
	require.ErrorIs(t, err, ErrInsufficientMana)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.Equal(t, int64(40), fresh.Mana)

	var logs int64
	require.NoError(t, db.Model(&models.Log{}).
		Where("user_id = ? AND event_type = ?", user.ID, models.EventStorePurchase).Count(&logs).Error)
	require.Equal(t, int64(1), logs)
}

func TestPurchaseUnknownItem(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewStoreService(db)
	user := createUser(t, db, "alice", 0)

	_, err := svc.Purchase(user.ID, 4242)
	require.ErrorIs(t, err, ErrStoreItemNotFound)
}

func TestPurchaseExactBalance(t *testing.T) {
	db := testDB(t)
	seedRanks(t, db)
	svc := NewStoreService(db)
	user := createUser(t, db, "alice", 0)

	item := models.StoreItem{Name: "Стикеры", Price: StartingMana}
	require.NoError(t, db.Create(&item).Error)

	res, err := svc.Purchase(user.ID, item.ID)
	require.NoError(t, err)
	require.Zero(t, res.RemainingMana)
}

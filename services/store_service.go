package services

import (
	"errors"
	"fmt"
	"log"

	"gamification-system/models"

	"gorm.io/gorm"
)

// StoreService lists store items and handles mana spend. Purchases are the
// only path that ever decreases a user's mana.
type StoreService struct {
	DB *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{DB: db}
}

func (s *StoreService) ListItems() ([]models.StoreItem, error) {
	var items []models.StoreItem
	err := s.DB.Order("id ASC").Find(&items).Error
	return items, err
}

// PurchaseResult reports the spend and the buyer's remaining mana.
type PurchaseResult struct {
	ItemID        uint  `json:"item_id"`
	Price         int64 `json:"price"`
	RemainingMana int64 `json:"remaining_mana"`
}

// Purchase deducts the item price from the user's mana. The guarded update
// (mana >= price) makes concurrent purchases safe: a spend that would go
// negative affects zero rows and fails with ErrInsufficientMana.
func (s *StoreService) Purchase(userID, itemID uint) (*PurchaseResult, error) {
	var item models.StoreItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreItemNotFound
		}
		return nil, err
	}

	var result PurchaseResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND mana >= ?", userID, item.Price).
			Update("mana", gorm.Expr("mana - ?", item.Price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientMana
		}

		entry := models.Log{
			UserID:      userID,
			EventType:   models.EventStorePurchase,
			Description: fmt.Sprintf("Покупка в магазине: %s", item.Name),
			Data: map[string]any{
				"item_id":    item.ID,
				"mana_spent": item.Price,
			},
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		result = PurchaseResult{ItemID: item.ID, Price: item.Price, RemainingMana: user.Mana}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 Store purchase: user=%d item=%d (-%d mana)", userID, itemID, item.Price)
	return &result, nil
}

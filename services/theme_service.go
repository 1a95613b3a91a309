package services

import (
	"errors"
	"log"
	"time"

	"gamification-system/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ThemeService manages interface themes. Activation state lives in rows only;
// the single-active-flag invariant is enforced by a transactional
// clear-all-set-one update.
type ThemeService struct {
	DB *gorm.DB
}

func NewThemeService(db *gorm.DB) *ThemeService {
	return &ThemeService{DB: db}
}

// ListActive returns themes currently offered to users.
func (s *ThemeService) ListActive() ([]models.Theme, error) {
	var themes []models.Theme
	err := s.DB.Where("is_active = ?", true).Find(&themes).Error
	return themes, err
}

// All returns every theme (admin view).
func (s *ThemeService) All() ([]models.Theme, error) {
	var themes []models.Theme
	err := s.DB.Order("id ASC").Find(&themes).Error
	return themes, err
}

// ActivateForUser sets the caller's personal theme choice.
func (s *ThemeService) ActivateForUser(userID, themeID uint) (time.Time, error) {
	var theme models.Theme
	if err := s.DB.First(&theme, themeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrThemeNotFound
		}
		return time.Time{}, err
	}
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("active_theme_id", theme.ID).Error; err != nil {
		return time.Time{}, err
	}
	return time.Now(), nil
}

// ThemeInput carries admin create/update fields.
type ThemeInput struct {
	Name           string            `json:"name"`
	DisplayName    string            `json:"display_name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	UserCategories []string          `json:"user_categories"`
	Colors         map[string]string `json:"colors"`
	Gradients      map[string]string `json:"gradients"`
	Effects        map[string]string `json:"effects"`
	Icons          map[string]string `json:"icons"`
}

// Create stores a new custom theme. The machine name is slugified from the
// display name when not supplied.
func (s *ThemeService) Create(in ThemeInput, createdBy uint) (*models.Theme, error) {
	name := in.Name
	if name == "" {
		name = slug.Make(in.DisplayName)
	}
	theme := models.Theme{
		Name:           name,
		DisplayName:    in.DisplayName,
		Description:    in.Description,
		Category:       in.Category,
		IsCustom:       true,
		CreatedBy:      &createdBy,
		UserCategories: in.UserCategories,
		Colors:         in.Colors,
		Gradients:      in.Gradients,
		Effects:        in.Effects,
		Icons:          in.Icons,
	}
	if err := s.DB.Create(&theme).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

// Update applies partial changes to an existing theme.
func (s *ThemeService) Update(themeID uint, in ThemeInput) (*models.Theme, error) {
	var theme models.Theme
	if err := s.DB.First(&theme, themeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.DisplayName != "" {
		updates["display_name"] = in.DisplayName
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if in.Category != "" {
		updates["category"] = in.Category
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&theme).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	// JSON documents replace wholesale when present.
	docs := map[string]any{}
	if in.UserCategories != nil {
		docs["user_categories"] = in.UserCategories
	}
	if in.Colors != nil {
		docs["colors"] = in.Colors
	}
	if in.Gradients != nil {
		docs["gradients"] = in.Gradients
	}
	if in.Effects != nil {
		docs["effects"] = in.Effects
	}
	if in.Icons != nil {
		docs["icons"] = in.Icons
	}
	for column, value := range docs {
		if err := s.DB.Model(&theme).Update(column, value).Error; err != nil {
			return nil, err
		}
	}

	if err := s.DB.First(&theme, themeID).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

// Delete removes a custom theme. Default themes are protected.
func (s *ThemeService) Delete(themeID uint) error {
	var theme models.Theme
	if err := s.DB.First(&theme, themeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThemeNotFound
		}
		return err
	}
	if theme.IsDefault {
		return ErrCannotDeleteDefault
	}
	return s.DB.Delete(&theme).Error
}

// ActivateGlobal makes one theme the platform-wide active theme: clear all
// flags, set one, in a single transaction.
func (s *ThemeService) ActivateGlobal(themeID uint) (time.Time, error) {
	var theme models.Theme
	if err := s.DB.First(&theme, themeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrThemeNotFound
		}
		return time.Time{}, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Theme{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Theme{}).Where("id = ?", theme.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		return time.Time{}, err
	}

	log.Printf("🎨 Theme activated globally: %s", theme.Name)
	return time.Now(), nil
}

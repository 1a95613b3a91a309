package services

import (
	"errors"
	"time"

	"gamification-system/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// StartingMana is granted to every new account.
const StartingMana = 100

// AuthService registers users and issues signed access tokens.
type AuthService struct {
	DB     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{DB: db, secret: []byte(jwtSecret)}
}

// Secret exposes the signing key for the auth middleware.
func (s *AuthService) Secret() string { return string(s.secret) }

// Claims carried by every access token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a user at rank 1 with starting mana and returns it with a
// fresh token. Duplicate emails fail with ErrEmailTaken.
func (s *AuthService) Register(name, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:          name,
		Email:         email,
		Password:      string(hash),
		Role:          models.RoleUser,
		CurrentRankID: 1,
		Experience:    0,
		Mana:          StartingMana,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	s.DB.Preload("Rank").Preload("Theme").First(&user, user.ID)

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	err := s.DB.Preload("Rank").Preload("Theme").
		Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueToken signs an HS256 access token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

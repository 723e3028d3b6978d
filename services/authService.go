package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"festa-pos/dtos"
	"festa-pos/models"
	"festa-pos/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, input dtos.LoginInput) (*dtos.AuthResponse, error)
}

type authService struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, now func() time.Time) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{db: db, secret: secret, ttl: ttl, now: now}
}

func (s *authService) Login(ctx context.Context, input dtos.LoginInput) (*dtos.AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.secret, user.ID, user.Role, s.now(), s.ttl)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dtos.AuthResponse{
		Message: "Login successful",
		Token:   token,
		Role:    user.Role,
	}, nil
}

package auth

import (
	"context"
	"errors"
	"time"

	domainUser "estate-access-service/internal/domain/user"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const issuer = "estate-access-service"

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID         uint64  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ResidentID *uint64 `json:"resident_id,omitempty"`
}

// Claims is the token payload: role plus enough identity to scope
// resident-owned reads without another lookup.
type Claims struct {
	UserID     uint64  `json:"user_id"`
	Role       string  `json:"role"`
	ResidentID *uint64 `json:"resident_id,omitempty"`
	NationalID string  `json:"national_id,omitempty"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	jwt.RegisteredClaims
}

type Usecase struct {
	users  domainUser.Repository
	secret string
	ttl    time.Duration
}

func NewUsecase(users domainUser.Repository, secret string, ttlHours int) *Usecase {
	return &Usecase{users: users, secret: secret, ttl: time.Duration(ttlHours) * time.Hour}
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	usr, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainUser.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domainUser.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID:     usr.ID,
		Role:       usr.Role,
		ResidentID: usr.ResidentID,
		NationalID: usr.NationalID,
		Email:      usr.Email,
		FullName:   usr.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.secret))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User: UserInfo{
			ID:         usr.ID,
			FullName:   usr.FullName,
			Email:      usr.Email,
			Role:       usr.Role,
			ResidentID: usr.ResidentID,
		},
	}, nil
}

// ParseToken validates signature, expiry and signing method.
func (u *Usecase) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"swimclub_backend/internals/features/users/auth/dto"
	profileModel "swimclub_backend/internals/features/users/profiles/model"
	"swimclub_backend/internals/helpers/apperr"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type StaffFinder interface {
	FindStaffByEmail(ctx context.Context, email string) (*profileModel.Profile, error)
}

type AuthService struct {
	Staff  StaffFinder
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(staff StaffFinder, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{Staff: staff, Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

// Login checks the staff password and issues an access token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := s.Staff.FindStaffByEmail(ctx, profileModel.NormalizeEmail(req.Email))
	if err != nil {
		return nil, apperr.FromStore(err, "")
	}
	if p == nil || p.ProfilePasswordHash == nil {
		// same cost as a real comparison so unknown emails are not faster
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err := CheckPasswordHash(*p.ProfilePasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(p.ProfileID, string(p.ProfileRole))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.TTL.Seconds()),
		Role:        string(p.ProfileRole),
		FullName:    p.ProfileFullName,
	}, nil
}

func (s *AuthService) IssueToken(userID uuid.UUID, role string) (string, error) {
	now := s.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": strings.ToLower(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("swimclub-dummy-password"), bcrypt.DefaultCost)

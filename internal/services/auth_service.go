package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/eylulkaya/lostfound/internal/apperr"
	"github.com/eylulkaya/lostfound/internal/config"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer Mailer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, apperr.Validation("name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if req.Birthday != "" {
		if bd, err := time.Parse("2006-01-02", req.Birthday); err == nil {
			user.Birthday = &bd
		}
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (string, *dto.UserResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return "", nil, apperr.New(apperr.KindUnauthenticated, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperr.New(apperr.KindUnauthenticated, "invalid email or password")
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}

	resp := toUserResponse(&user)
	return token, &resp, nil
}

// ForgotPassword stores a hashed single-use reset token and mails the raw token
// to the user. When delivery fails the stored token state is cleared so no
// dangling reset window survives the failure.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return apperr.NotFound("no account with that email")
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)
	expires := time.Now().Add(s.cfg.ResetTokenTTL)

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token_hash": tokenHash,
		"reset_expires_at": expires,
	}).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body := "You requested a password reset.\n\n" +
		"Reset token: " + rawToken + "\n\n" +
		"The token expires in " + s.cfg.ResetTokenTTL.String() + ". If you did not request this, ignore this message."
	if err := s.mailer.Send(user.Email, "Password reset", body); err != nil {
		if cleanupErr := s.db.Model(&user).Updates(map[string]interface{}{
			"reset_token_hash": nil,
			"reset_expires_at": nil,
		}).Error; cleanupErr != nil {
			slog.Error("failed to clear reset token after mail failure",
				"user_id", user.ID.String(), "error", cleanupErr)
		}
		return apperr.Wrap(err, apperr.KindDependencyFailure, "failed to send reset email")
	}
	return nil
}

func (s *AuthService) ResetPassword(rawToken, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	tokenHash := hashToken(rawToken)
	var user models.User
	err := s.db.Where("reset_token_hash = ? AND reset_expires_at > ?", tokenHash, time.Now()).
		First(&user).Error
	if err != nil {
		return apperr.Validation("invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password":         string(hash),
		"reset_token_hash": nil,
		"reset_expires_at": nil,
	}).Error
}

func (s *AuthService) Profile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperr.NotFound("user not found")
	}
	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) ListUsers() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out, nil
}

// SetRole changes a user's role. The configured main admin account is
// immutable regardless of payload.
func (s *AuthService) SetRole(userID uuid.UUID, role string) error {
	// The main-admin guard comes first: the account is off limits no matter
	// what the payload contains.
	if s.cfg.MainAdminID != "" && userID.String() == s.cfg.MainAdminID {
		return apperr.Forbidden("the main admin account cannot be modified")
	}
	if !models.ValidRole(role) {
		return apperr.Validation("invalid role: must be user, staff, or admin")
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Verified: u.Verified,
		Birthday: u.Birthday,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

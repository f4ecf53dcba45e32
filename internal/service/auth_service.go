package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"athar/config"
	"athar/internal/auth"
	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/repository"
	"athar/pkg/otp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OTPPurpose decides which existence check RequestOTP applies.
type OTPPurpose string

const (
	PurposeRegister OTPPurpose = "register"
	PurposeLogin    OTPPurpose = "login"
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	otp      otp.Provider
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, provider otp.Provider) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, otp: provider}
}

// RequestOTP sends a code to phone and returns the order reference to echo back on verification.
func (s *AuthService) RequestOTP(ctx context.Context, phone string, purpose OTPPurpose) (string, error) {
	if !domain.ValidPhone(phone) {
		return "", ErrInvalidPhone
	}
	exists, err := s.userRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	switch purpose {
	case PurposeRegister:
		if exists {
			return "", ErrDuplicatePhone
		}
	case PurposeLogin:
		if !exists {
			return "", ErrPhoneNotRegistered
		}
	default:
		return "", fmt.Errorf("%w: unknown otp purpose %q", ErrInvalidInput, purpose)
	}
	orderID, err := s.otp.Send(ctx, domain.InternationalPhone(phone))
	if err != nil {
		log.Printf("[auth] otp send to %s failed: %v", phone, err)
		return "", ErrOTPUnavailable
	}
	return orderID, nil
}

func (s *AuthService) verifyCode(ctx context.Context, orderRef, code string) error {
	ok, err := s.otp.Verify(ctx, strings.TrimSpace(orderRef), strings.TrimSpace(code))
	if err != nil {
		log.Printf("[auth] otp verify failed: %v", err)
		return ErrOTPUnavailable
	}
	if !ok {
		return ErrInvalidCode
	}
	return nil
}

// Register verifies the code and creates a verified, password-less user.
func (s *AuthService) Register(ctx context.Context, phone, name, orderRef, code string) (*models.User, string, error) {
	exists, err := s.userRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrDuplicatePhone
	}
	if err := s.verifyCode(ctx, orderRef, code); err != nil {
		return nil, "", err
	}
	u := &models.User{
		Phone:      phone,
		Name:       strings.TrimSpace(name),
		Role:       domain.RoleUser,
		IsVerified: true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		// Lost a race with a concurrent registration of the same phone.
		if taken, _ := s.userRepo.ExistsByPhone(ctx, phone); taken {
			return nil, "", ErrDuplicatePhone
		}
		return nil, "", err
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LoginWithPassword never reveals whether the phone exists or has a password.
// Banned users still get a token; the session validator rejects it.
func (s *AuthService) LoginWithPassword(ctx context.Context, phone, password string) (*models.User, string, error) {
	u, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !u.HasPassword() {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) LoginWithOTP(ctx context.Context, phone, orderRef, code string) (*models.User, string, error) {
	u, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPhoneNotRegistered
		}
		return nil, "", err
	}
	if err := s.verifyCode(ctx, orderRef, code); err != nil {
		return nil, "", err
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ChangePassword sets a new password. Accounts without one may set it with an empty current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(currentPassword)); err != nil {
			return ErrInvalidCredentials
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"password": string(hash)})
}

func (s *AuthService) SavePushToken(ctx context.Context, userID uint, token string) error {
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"push_token": strings.TrimSpace(token)})
}

func (s *AuthService) issue(u *models.User) (string, error) {
	return auth.GenerateToken(&s.cfg.JWT, u.ID, u.Phone, u.Role)
}

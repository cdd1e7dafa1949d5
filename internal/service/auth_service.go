package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
	"github.com/gikomplain/backend/pkg/apperror"
	"github.com/gikomplain/backend/pkg/credentials"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const registeredMessage = "Account created successfully. Please check your email to verify your account."

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (string, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResult, error)
	VerifyEmail(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
	mailer   Mailer

	secret   string
	tokenTTL time.Duration
	baseURL  string
}

func NewAuthService(
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	mailer Mailer,
	secret string,
	tokenTTL time.Duration,
	baseURL string,
) AuthService {
	return &authService{
		userRepo: userRepo,
		deptRepo: deptRepo,
		mailer:   mailer,
		secret:   secret,
		tokenTTL: tokenTTL,
		baseURL:  baseURL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return "", apperror.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	role := model.RoleStudent
	if input.Role != nil && *input.Role != "" {
		parsed, ok := model.ParseRole(*input.Role)
		if !ok {
			return "", fmt.Errorf("%w: unknown role %s", apperror.ErrBadRequest, *input.Role)
		}
		role = parsed
	}

	var departmentID *uuid.UUID
	if input.DepartmentID != nil && *input.DepartmentID != "" {
		id, err := uuid.Parse(*input.DepartmentID)
		if err != nil {
			return "", fmt.Errorf("%w: invalid department id", apperror.ErrBadRequest)
		}
		if _, err := s.deptRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("%w: department not found", apperror.ErrBadRequest)
			}
			return "", err
		}
		departmentID = &id
	}

	hashedPassword, err := credentials.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	verificationToken := uuid.NewString()
	user := &model.User{
		Email:             input.Email,
		PasswordHash:      hashedPassword,
		Name:              input.Name,
		Role:              role,
		DepartmentID:      departmentID,
		EmailVerifiedAt:   nil,
		VerificationToken: &verificationToken,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.baseURL, verificationToken)
	if err := s.mailer.SendVerification(ctx, user.Email, link); err != nil {
		// Registration already succeeded; the user can request a new mail.
		log.Printf("failed to send verification mail to %s: %v", user.Email, err)
	}

	return registeredMessage, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !credentials.ComparePassword(input.Password, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.Verified() {
		return nil, apperror.ErrEmailNotVerified
	}

	claims := credentials.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	}
	if user.DepartmentID != nil {
		deptID := user.DepartmentID.String()
		claims.DepartmentID = &deptID
	}

	token, err := credentials.SignToken(s.secret, s.tokenTTL, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResult{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// VerifyEmail consumes a single-use token and flips the account to
// verified. The token is cleared in the same write, so repeating the call
// fails with the same error as an unknown token.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperror.ErrInvalidVerificationToken
	}

	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidVerificationToken
		}
		return err
	}

	return s.userRepo.MarkVerified(ctx, user.ID, time.Now())
}

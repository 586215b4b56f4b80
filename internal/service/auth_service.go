package service

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/util"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	Cfg       *config.Config
	Blacklist TokenBlacklist

	mu          sync.RWMutex
	adminEmails map[string]struct{}
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config, blacklist TokenBlacklist) *AuthService {
	s := &AuthService{
		UserRepo:  userRepo,
		Cfg:       cfg,
		Blacklist: blacklist,
	}
	s.SetAdminEmails(cfg.Auth.AdminEmails)
	return s
}

// SetAdminEmails swaps the admin allow-list. Called again on config reload.
func (s *AuthService) SetAdminEmails(emails []string) {
	set := make(map[string]struct{}, len(emails))
	for _, e := range config.NormalizeEmails(emails) {
		set[e] = struct{}{}
	}

	s.mu.Lock()
	s.adminEmails = set
	s.mu.Unlock()
}

func (s *AuthService) IsAdminEmail(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.Student
	if s.IsAdminEmail(email) {
		role = model.Admin
	}

	user := &model.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Logout revokes the token carried by claims until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.Blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) IsRevoked(ctx context.Context, claims *util.Claims) (bool, error) {
	if claims.ID == "" {
		return false, nil
	}
	return s.Blacklist.IsRevoked(ctx, claims.ID)
}

func (s *AuthService) GetCurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error) {
	if claims == nil {
		return nil, util.ErrUnauthenticated
	}
	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

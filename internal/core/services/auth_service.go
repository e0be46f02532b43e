package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_management_app/internal/core/ports/services"
	"github.com/SscSPs/expense_management_app/internal/core/state"
	"github.com/SscSPs/expense_management_app/internal/dto"
	"github.com/SscSPs/expense_management_app/internal/platform/config"
	"github.com/SscSPs/expense_management_app/internal/refdata"
	"github.com/SscSPs/expense_management_app/internal/utils"
	"github.com/google/uuid"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token bound to the user's session.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User, sessionID string) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, sessionID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

type authService struct {
	BaseService
	tokens portssvc.TokenSvcFacade
}

// NewAuthService creates the registration and session service.
func NewAuthService(store portsrepo.StateStore, tokens portssvc.TokenSvcFacade, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(store, options...),
		tokens:      tokens,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*domain.AuthResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var result *domain.AuthResult
	err = s.store.Update(ctx, func(st state.State) (state.State, error) {
		if st.Company != nil {
			return st, fmt.Errorf("a company is already registered: %w", apperrors.ErrDuplicate)
		}
		if _, taken := st.FindUserByEmail(req.Email); taken {
			return st, fmt.Errorf("email %s is already registered: %w", req.Email, apperrors.ErrDuplicate)
		}

		now := s.now()
		country := strings.ToUpper(req.Country)
		company := domain.Company{
			CompanyID: uuid.NewString(),
			Name:      req.CompanyName,
			Country:   country,
			Currency:  refdata.CurrencyByCountry(country),
			CreatedAt: now,
		}
		admin := domain.User{
			UserID:       uuid.NewString(),
			Email:        req.Email,
			Name:         req.Name,
			Role:         domain.RoleAdmin,
			PasswordHash: hash,
			CompanyName:  company.Name,
			Country:      company.Country,
			Currency:     company.Currency,
			CreatedAt:    now,
			IsActive:     true,
		}
		company.AdminID = admin.UserID

		next := state.RegisterCompany(st, company, admin)
		var err error
		next, result, err = s.startSession(ctx, next, admin, now)
		if err != nil {
			return st, err
		}
		return next, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register admin", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "Company registered",
		slog.String("user_id", result.User.UserID),
		slog.String("currency", result.User.Currency))
	return result, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.AuthResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	user, found := s.store.Snapshot(ctx).FindUserByEmail(req.Email)
	if !found || !user.IsActive || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	var result *domain.AuthResult
	err := s.store.Update(ctx, func(st state.State) (state.State, error) {
		current, ok := st.FindUser(user.UserID)
		if !ok || !current.IsActive {
			return st, apperrors.ErrInvalidCredentials
		}
		next, res, err := s.startSession(ctx, st, current, s.now())
		if err != nil {
			return st, err
		}
		result = res
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return result, nil
}

func (s *authService) startSession(ctx context.Context, st state.State, user domain.User, now time.Time) (state.State, *domain.AuthResult, error) {
	session := domain.Session{SessionID: uuid.NewString(), UserID: user.UserID, CreatedAt: now}
	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, &user, session.SessionID)
	if err != nil {
		return st, nil, err
	}
	return state.StartSession(st, session), &domain.AuthResult{
		User:        user,
		Session:     session,
		AccessToken: token,
		ExpiresAt:   expiresAt,
		LandingView: user.LandingView(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Update(ctx, func(st state.State) (state.State, error) {
		return state.EndSession(st, sessionID), nil
	})
}

func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	user, err := s.authenticate(s.store.Snapshot(ctx), sessionID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

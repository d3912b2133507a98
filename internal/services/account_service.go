package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"travelwise/internal/models/db_models"
	"travelwise/internal/models/request_models"
	"travelwise/internal/models/response_models"
	"travelwise/internal/repositories"
	"travelwise/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountServiceInterface interface {
	SignUp(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
	Logout(ctx context.Context, accountID string) error
	RequireSession(ctx context.Context, accountID string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	sessionRepo repositories.SessionRepository
	tokens      *utils.TokenManager
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
	tokens *utils.TokenManager,
	logger *zap.Logger,
) AccountServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		logger:      logger.Named("account"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) SignUp(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)

	exists, err := a.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", utils.ErrDatabaseError)
	}
	if exists {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", utils.ErrDatabaseError)
	}

	account := &db_models.Account{
		FullName:     strings.TrimSpace(request.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(request.Phone),
		PasswordHash: hashedPassword,
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		a.logger.Error("insert account failed", zap.Error(err))
		return nil, fmt.Errorf("insert account: %w", utils.ErrDatabaseError)
	}

	a.logger.Info("account created", zap.String("account_id", account.ID.String()))
	return toAccountResponse(account), nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {

	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("find account: %w", utils.ErrDatabaseError)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	accountID := account.ID.String()
	token, expiresAt, err := a.tokens.CreateToken(accountID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	session := &db_models.Session{
		AccountID: accountID,
		FullName:  account.FullName,
		Email:     account.Email,
		IssuedAt:  time.Now().Unix(),
	}
	if err := a.sessionRepo.Save(ctx, session, a.tokens.TTL()); err != nil {
		return nil, fmt.Errorf("save session: %w", utils.ErrStorageError)
	}

	a.logger.Info("login", zap.String("account_id", accountID), zap.Duration("took", time.Since(startTime)))

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// RequireSession returns ErrSessionNotFound once the account has logged out
// or its session expired, even while the token itself is still valid.
func (a *AccountService) RequireSession(ctx context.Context, accountID string) error {
	_, err := a.liveSession(ctx, accountID)
	return err
}

func (a *AccountService) liveSession(ctx context.Context, accountID string) (*db_models.Session, error) {
	session, err := a.sessionRepo.Find(ctx, accountID)
	if err != nil {
		a.logger.Warn("session lookup failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, fmt.Errorf("find session: %w", utils.ErrStorageError)
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

// GetProfile requires a live session and reads the account from the
// database. The session snapshot answers when the row is gone.
func (a *AccountService) GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	session, err := a.liveSession(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		a.logger.Warn("account lookup failed, serving session snapshot", zap.String("account_id", accountID), zap.Error(err))
		return &response_models.AccountResponse{
			ID:       session.AccountID,
			FullName: session.FullName,
			Email:    session.Email,
		}, nil
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) Logout(ctx context.Context, accountID string) error {
	if err := a.sessionRepo.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("delete session: %w", utils.ErrStorageError)
	}
	return nil
}

func (a *AccountService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := a.accountRepo.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("check email: %w", utils.ErrDatabaseError)
	}
	return exists, nil
}

func toAccountResponse(account *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:       account.ID.String(),
		FullName: account.FullName,
		Email:    account.Email,
		Phone:    account.Phone,
	}
}

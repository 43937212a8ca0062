package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interview-stories/internal/domain"
	"interview-stories/internal/repository"
)

// AccountService coordina registro y verificacion de credenciales.
type AccountService struct {
	logger    *zap.Logger
	accounts  repository.AccountRepository
	throttle  LoginThrottle
	cost      int
	dummyHash []byte
}

func NewAccountService(logger *zap.Logger, accounts repository.AccountRepository, throttle LoginThrottle, cost int) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Hash de relleno: un email desconocido cuesta lo mismo que un password incorrecto.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		logger.Warn("dummy hash generation failed", zap.Error(err))
	}
	return &AccountService{
		logger:    logger,
		accounts:  accounts,
		throttle:  throttle,
		cost:      cost,
		dummyHash: dummy,
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register crea una cuenta nueva. El chequeo previo de email es solo un atajo;
// el indice unico de la base es la garantia real.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (domain.Account, error) {
	if s.accounts == nil {
		return domain.Account{}, errors.New("account service not configured")
	}

	email := strings.TrimSpace(input.Email)
	if verr := missingFields("email", email, "password", input.Password); verr != nil {
		return domain.Account{}, verr
	}

	_, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.Account{}, ErrDuplicateAccount
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.Account{}, ErrDuplicateAccount
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.PasswordHash = ""
	return account, nil
}

// Authenticate devuelve ErrInvalidCredentials tanto para email desconocido
// como para password incorrecto.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	if s.accounts == nil {
		return domain.Account{}, errors.New("account service not configured")
	}

	email = strings.TrimSpace(email)
	if verr := missingFields("email", email, "password", password); verr != nil {
		return domain.Account{}, verr
	}

	if s.throttle != nil && s.throttle.Blocked(email) {
		return domain.Account{}, ErrTooManyAttempts
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("lookup account: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.recordFailure(email)
		return domain.Account{}, ErrInvalidCredentials
	}

	if account.PasswordHash == "" {
		s.recordFailure(email)
		return domain.Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(email)
		return domain.Account{}, ErrInvalidCredentials
	}

	if s.throttle != nil {
		s.throttle.Reset(email)
	}
	account.PasswordHash = ""
	return account, nil
}

func (s *AccountService) recordFailure(email string) {
	if s.throttle != nil {
		s.throttle.Fail(email)
	}
}

package repository

import (
	"context"

	"interview-stories/internal/domain"
)

// AccountRepository define el contrato de persistencia para cuentas.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}

// PgAccountRepository implementa AccountRepository sobre DBTX (un *pgxpool.Pool en produccion).
type PgAccountRepository struct {
	db DBTX
}

func NewPgAccountRepository(db DBTX) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

func (r *PgAccountRepository) Create(ctx context.Context, account domain.Account) error {
	const query = `
		INSERT INTO accounts (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	var name any
	if account.Name != "" {
		name = account.Name
	}
	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Email,
		name,
		account.PasswordHash,
		account.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

// GetByEmail devuelve pgx.ErrNoRows si no existe la cuenta.
func (r *PgAccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	const query = `
		SELECT id, email, COALESCE(name, ''), password_hash, created_at
		FROM accounts
		WHERE email = $1
	`
	var a domain.Account
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"workspace_chat_service/internal/account/domain"
)

// AccountRepository definition get Account info
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	UpdateAccountStatus(ctx context.Context, account *domain.Account) error
	FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error)
}

type accountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository create a AccountRepository
func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO account(user_id, user_name, email, password) VALUES ($1, $2, $3, $4)",
		account.UserID, account.UserName, account.Email, account.Password)
	return err
}

func (r *accountRepository) UpdateAccountStatus(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx,
		"UPDATE account SET status = $1 WHERE user_id = $2",
		account.Status, account.UserID)
	return err
}

func (r *accountRepository) FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error) {
	queryStr := "SELECT id, user_id, user_name, email, password FROM account WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if query.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *query.Email)
		paramCount++
	}
	if query.UserID != nil {
		queryStr += fmt.Sprintf(" AND user_id = $%d", paramCount)
		params = append(params, *query.UserID)
		paramCount++
	}
	if query.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *query.ID)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var account domain.Account
	err := row.Scan(&account.ID, &account.UserID, &account.UserName, &account.Email, &account.Password)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("no account found with given criteria")
		}
		return nil, err
	}

	return &account, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

type TransactionRepositoryImpl struct {
	db     *pgxpool.Pool
	logger *zerolog.Logger
}

// NewTransactionRepositoryImpl creates new instance of TransactionRepositoryImpl.
func NewTransactionRepositoryImpl(db *pgxpool.Pool) repositories.TransactionRepository {
	l := log.GetLogger()
	return &TransactionRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

const transactionColumns = `id, COALESCE(page_request_uid, ''), payment_status, COALESCE(confirmation_token, ''), COALESCE(metadata, '{}'::jsonb), created_at, updated_at`

func (r *TransactionRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return r.getOne(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = $1", id)
}

func (r *TransactionRepositoryImpl) GetByPageRequestUID(ctx context.Context, uid string) (*models.Transaction, error) {
	return r.getOne(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE page_request_uid = $1", uid)
}

func (r *TransactionRepositoryImpl) GetByLegacyUID(ctx context.Context, uid string) (*models.Transaction, error) {
	return r.getOne(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE metadata->>'legacy_uid' = $1", uid)
}

const markCompletedIfPending = `
UPDATE transactions
SET payment_status = 'completed',
    confirmation_token = COALESCE(NULLIF(confirmation_token, ''), NULLIF($2, '')),
    updated_at = now()
WHERE id = $1 AND payment_status = 'pending';`

// MarkCompletedIfPending is conditional on the row still being pending:
// a terminal status written by the webhook handler wins and this becomes
// a no-op.
func (r *TransactionRepositoryImpl) MarkCompletedIfPending(ctx context.Context, id, confirmationToken string) (bool, error) {
	tag, err := r.db.Exec(ctx, markCompletedIfPending, id, confirmationToken)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", id).Msg("failed to mark transaction completed")
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransactionRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID,
		&t.PageRequestUID,
		&t.PaymentStatus,
		&t.ConfirmationToken,
		&t.Metadata,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction")
		}
		return nil, err
	}
	return t, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

type PurchaseRepositoryImpl struct {
	db     *pgxpool.Pool
	logger *zerolog.Logger
}

// NewPurchaseRepositoryImpl creates new instance of PurchaseRepositoryImpl.
func NewPurchaseRepositoryImpl(db *pgxpool.Pool) repositories.PurchaseRepository {
	l := log.GetLogger()
	return &PurchaseRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

const purchaseColumns = `id, COALESCE(transaction_id, ''), COALESCE(product_id, ''), user_id, purchasable_type, purchasable_id, payment_status, payment_amount, access_expires_at, COALESCE(metadata, '{}'::jsonb), created_at, updated_at`

func (r *PurchaseRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	row := r.db.QueryRow(ctx, "SELECT "+purchaseColumns+" FROM purchases WHERE id = $1", id)
	p, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("purchase")
		}
		return nil, err
	}
	return p, nil
}

func (r *PurchaseRepositoryImpl) ListByTransactionID(ctx context.Context, transactionID string) ([]models.Purchase, error) {
	return r.list(ctx, "SELECT "+purchaseColumns+" FROM purchases WHERE transaction_id = $1 ORDER BY created_at", transactionID)
}

func (r *PurchaseRepositoryImpl) ListByProductID(ctx context.Context, productID string) ([]models.Purchase, error) {
	return r.list(ctx, "SELECT "+purchaseColumns+" FROM purchases WHERE product_id = $1 ORDER BY created_at", productID)
}

func (r *PurchaseRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	return r.list(ctx, "SELECT "+purchaseColumns+" FROM purchases WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

const insertPurchase = `
INSERT INTO purchases (id, transaction_id, product_id, user_id, purchasable_type, purchasable_id, payment_status, payment_amount, access_expires_at, metadata)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10);`

func (r *PurchaseRepositoryImpl) Insert(ctx context.Context, p *models.Purchase) error {
	_, err := r.db.Exec(ctx, insertPurchase,
		p.ID,
		p.TransactionID,
		p.ProductID,
		p.UserID,
		p.PurchasableType,
		p.PurchasableID,
		p.PaymentStatus,
		p.PaymentAmount,
		p.AccessExpiresAt,
		p.Metadata,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.UniqueViolationError {
			return apperrors.NewPurchaseDuplicateError()
		}
		r.logger.Error().Err(err).Str("purchase_id", p.ID).Msg("failed to insert purchase")
		return err
	}
	return nil
}

// MarkPendingByTransaction pins a transaction's purchases to 'pending'
// and refreshes updated_at, shielding them from stale-purchase cleanup
// while a completion race is being arbitrated. Completed purchases are
// never touched: client writes do not downgrade.
func (r *PurchaseRepositoryImpl) MarkPendingByTransaction(ctx context.Context, transactionID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE purchases SET payment_status = 'pending', updated_at = now() WHERE transaction_id = $1 AND payment_status <> 'completed'",
		transactionID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PurchaseRepositoryImpl) SettlePendingByTransaction(ctx context.Context, transactionID string, status models.PaymentStatus) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE purchases SET payment_status = $2, updated_at = now() WHERE transaction_id = $1 AND payment_status = 'pending'",
		transactionID, status,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PurchaseRepositoryImpl) RevertAbandoned(ctx context.Context, transactionID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE purchases SET payment_status = 'cancelled', updated_at = now() WHERE transaction_id = $1 AND payment_status = 'pending'",
		transactionID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PurchaseRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]models.Purchase, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	p := &models.Purchase{}
	err := row.Scan(
		&p.ID,
		&p.TransactionID,
		&p.ProductID,
		&p.UserID,
		&p.PurchasableType,
		&p.PurchasableID,
		&p.PaymentStatus,
		&p.PaymentAmount,
		&p.AccessExpiresAt,
		&p.Metadata,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

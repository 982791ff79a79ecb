package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
)

// entityTables is the dispatch table for polymorphic entity lookup.
// Adding a purchasable type is one registration here (plus the model
// constant).
var entityTables = map[models.PurchasableType]string{
	models.PurchasableWorkshop: "workshops",
	models.PurchasableCourse:   "courses",
	models.PurchasableFile:     "files",
	models.PurchasableTool:     "tools",
	models.PurchasableGame:     "games",
}

type CatalogRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewCatalogRepositoryImpl(db *pgxpool.Pool) repositories.CatalogRepository {
	return &CatalogRepositoryImpl{
		db: db,
	}
}

func (r *CatalogRepositoryImpl) FindEntity(ctx context.Context, t models.PurchasableType, id string) (*models.PurchasableEntity, error) {
	table, ok := entityTables[t]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("purchasable type %q", t))
	}

	entity := &models.PurchasableEntity{Type: t}
	err := r.db.QueryRow(
		ctx,
		fmt.Sprintf("SELECT id, title, price FROM %s WHERE id = $1", table),
		id,
	).Scan(&entity.ID, &entity.Title, &entity.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(string(t))
		}
		return nil, err
	}
	return entity, nil
}

func (r *CatalogRepositoryImpl) FindEntityByProduct(ctx context.Context, productID string) (*models.PurchasableEntity, error) {
	var t models.PurchasableType
	var entityID string
	err := r.db.QueryRow(
		ctx,
		"SELECT purchasable_type, purchasable_id FROM products WHERE id = $1",
		productID,
	).Scan(&t, &entityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product")
		}
		return nil, err
	}

	entity, err := r.FindEntity(ctx, t, entityID)
	if err != nil {
		return nil, err
	}
	entity.ProductID = productID
	return entity, nil
}

func (r *CatalogRepositoryImpl) FindProductByEntity(ctx context.Context, t models.PurchasableType, id string) (string, error) {
	var productID string
	err := r.db.QueryRow(
		ctx,
		"SELECT id FROM products WHERE purchasable_type = $1 AND purchasable_id = $2",
		t, id,
	).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("product")
		}
		return "", err
	}
	return productID, nil
}

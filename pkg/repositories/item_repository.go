package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/database"
	"github.com/restgate/registry-engine/pkg/models"
)

// ItemRepository defines data access for inventory items.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, objID string) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, objID string) error
}

type itemRepository struct {
	db *database.DB
}

// NewItemRepository creates an item repository.
func NewItemRepository(db *database.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = "obj_id, item_nm, qty, price_cents, item_desc, " + auditColumns

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.ObjID == "" {
		item.ObjID = uuid.NewString()
	}
	item.Touch(time.Now().UTC())

	query := r.db.Rebind(`
		INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	args := append([]any{
		item.ObjID,
		item.Name,
		item.Quantity,
		item.PriceCents,
		ns(item.Description),
	}, auditBind(&item.Audit)...)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classify(r.db, err, "create item")
	}
	return nil
}

func (r *itemRepository) Get(ctx context.Context, objID string) (*models.Item, error) {
	query := r.db.Rebind(`SELECT ` + itemColumns + ` FROM items WHERE obj_id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, objID))
}

func (r *itemRepository) List(ctx context.Context) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY item_nm, obj_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE items
		SET item_nm = ?, qty = ?, price_cents = ?, item_desc = ?,
		    mdfy_dt = ?, mdfy_user_id = ?, use_stat_cd = ?, rsn_cd = ?, trns_cm = ?
		WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Quantity,
		item.PriceCents,
		ns(item.Description),
		item.UpdatedAt,
		ns(item.UpdatedBy),
		string(item.UseStatus),
		ns(item.ReasonCode),
		ns(item.TransformComment),
		item.ObjID,
	)
	if err != nil {
		return classify(r.db, err, "update item")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, objID string) error {
	query := r.db.Rebind(`DELETE FROM items WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query, objID)
	if err != nil {
		return classify(r.db, err, "delete item")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *itemRepository) scanOne(row rowScanner) (*models.Item, error) {
	var (
		item models.Item
		desc sql.NullString
		audi auditScan
	)

	targets := append([]any{
		&item.ObjID,
		&item.Name,
		&item.Quantity,
		&item.PriceCents,
		&desc,
	}, audi.targets(&item.Audit)...)

	if err := row.Scan(targets...); err != nil {
		return nil, classify(r.db, err, "scan item")
	}

	item.Description = str(desc)
	audi.apply(&item.Audit)
	return &item, nil
}

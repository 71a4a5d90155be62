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

// UriPathRepository defines data access for URI path segments.
type UriPathRepository interface {
	Create(ctx context.Context, path *models.UriPath) error
	Get(ctx context.Context, objID string) (*models.UriPath, error)
	ListByAPIID(ctx context.Context, apiID string) ([]*models.UriPath, error)
	GetByAPIIDAndOrder(ctx context.Context, apiID string, pathOrder int) (*models.UriPath, error)
	ListByUseStatus(ctx context.Context, status models.UseStatus) ([]*models.UriPath, error)
	CountByAPIID(ctx context.Context, apiID string) (int, error)
	Update(ctx context.Context, path *models.UriPath) error
	Delete(ctx context.Context, objID string) error
}

type uriPathRepository struct {
	db *database.DB
}

// NewUriPathRepository creates a URI path repository.
func NewUriPathRepository(db *database.DB) UriPathRepository {
	return &uriPathRepository{db: db}
}

const uriPathColumns = "obj_id, api_id, path_order, path_value, is_param_use, param_nm, param_typ, param_desc, example_val, " + auditColumns

// Create inserts a path row. A row referencing an api_id with no uri_defs
// parent is rejected by the storage layer and surfaces as ErrForeignKey.
func (r *uriPathRepository) Create(ctx context.Context, path *models.UriPath) error {
	if path.ObjID == "" {
		path.ObjID = uuid.NewString()
	}
	path.Touch(time.Now().UTC())

	query := r.db.Rebind(`
		INSERT INTO uri_paths (` + uriPathColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	args := append([]any{
		path.ObjID,
		path.APIID,
		path.PathOrder,
		path.PathValue,
		path.IsParamUse,
		ns(path.ParamName),
		ns(path.ParamType),
		ns(path.ParamDesc),
		ns(path.ExampleValue),
	}, auditBind(&path.Audit)...)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classify(r.db, err, "create uri path")
	}
	return nil
}

func (r *uriPathRepository) Get(ctx context.Context, objID string) (*models.UriPath, error) {
	query := r.db.Rebind(`SELECT ` + uriPathColumns + ` FROM uri_paths WHERE obj_id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, objID))
}

func (r *uriPathRepository) ListByAPIID(ctx context.Context, apiID string) ([]*models.UriPath, error) {
	query := r.db.Rebind(`
		SELECT ` + uriPathColumns + `
		FROM uri_paths
		WHERE api_id = ?
		ORDER BY path_order`)
	return r.scanAll(ctx, query, apiID)
}

func (r *uriPathRepository) GetByAPIIDAndOrder(ctx context.Context, apiID string, pathOrder int) (*models.UriPath, error) {
	query := r.db.Rebind(`
		SELECT ` + uriPathColumns + `
		FROM uri_paths
		WHERE api_id = ? AND path_order = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, apiID, pathOrder))
}

func (r *uriPathRepository) ListByUseStatus(ctx context.Context, status models.UseStatus) ([]*models.UriPath, error) {
	query := r.db.Rebind(`
		SELECT ` + uriPathColumns + `
		FROM uri_paths
		WHERE use_stat_cd = ?
		ORDER BY api_id, path_order`)
	return r.scanAll(ctx, query, string(status))
}

func (r *uriPathRepository) CountByAPIID(ctx context.Context, apiID string) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM uri_paths WHERE api_id = ?`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, apiID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count uri paths: %w", err)
	}
	return count, nil
}

func (r *uriPathRepository) Update(ctx context.Context, path *models.UriPath) error {
	path.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE uri_paths
		SET path_order = ?, path_value = ?, is_param_use = ?, param_nm = ?,
		    param_typ = ?, param_desc = ?, example_val = ?, mdfy_dt = ?,
		    mdfy_user_id = ?, use_stat_cd = ?, rsn_cd = ?, trns_cm = ?
		WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		path.PathOrder,
		path.PathValue,
		path.IsParamUse,
		ns(path.ParamName),
		ns(path.ParamType),
		ns(path.ParamDesc),
		ns(path.ExampleValue),
		path.UpdatedAt,
		ns(path.UpdatedBy),
		string(path.UseStatus),
		ns(path.ReasonCode),
		ns(path.TransformComment),
		path.ObjID,
	)
	if err != nil {
		return classify(r.db, err, "update uri path")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update uri path: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *uriPathRepository) Delete(ctx context.Context, objID string) error {
	query := r.db.Rebind(`DELETE FROM uri_paths WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query, objID)
	if err != nil {
		return classify(r.db, err, "delete uri path")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete uri path: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *uriPathRepository) scanAll(ctx context.Context, query string, args ...any) ([]*models.UriPath, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uri paths: %w", err)
	}
	defer rows.Close()

	var paths []*models.UriPath
	for rows.Next() {
		path, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

func (r *uriPathRepository) scanOne(row rowScanner) (*models.UriPath, error) {
	var (
		path      models.UriPath
		isParam   sql.NullBool
		paramName sql.NullString
		paramType sql.NullString
		paramDesc sql.NullString
		example   sql.NullString
		audit     auditScan
	)

	targets := append([]any{
		&path.ObjID,
		&path.APIID,
		&path.PathOrder,
		&path.PathValue,
		&isParam,
		&paramName,
		&paramType,
		&paramDesc,
		&example,
	}, audit.targets(&path.Audit)...)

	if err := row.Scan(targets...); err != nil {
		return nil, classify(r.db, err, "scan uri path")
	}

	path.IsParamUse = isParam.Valid && isParam.Bool
	path.ParamName = str(paramName)
	path.ParamType = str(paramType)
	path.ParamDesc = str(paramDesc)
	path.ExampleValue = str(example)
	audit.apply(&path.Audit)
	return &path, nil
}

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

// UriDefRepository defines data access for URI definitions.
type UriDefRepository interface {
	Create(ctx context.Context, def *models.UriDef) error
	Get(ctx context.Context, objID string) (*models.UriDef, error)
	GetByAPIID(ctx context.Context, apiID string) (*models.UriDef, error)
	List(ctx context.Context) ([]*models.UriDef, error)
	Update(ctx context.Context, def *models.UriDef) error
	// DeleteByAPIID removes the definition and all its paths in one
	// transaction, returning the number of child paths removed.
	DeleteByAPIID(ctx context.Context, apiID string) (int64, error)
}

type uriDefRepository struct {
	db *database.DB
}

// NewUriDefRepository creates a URI definition repository.
func NewUriDefRepository(db *database.DB) UriDefRepository {
	return &uriDefRepository{db: db}
}

const uriDefColumns = "obj_id, api_id, site_id, srv_nm, method_nm, api_nm, api_desc, base_uri, version_inf, " + auditColumns

func (r *uriDefRepository) Create(ctx context.Context, def *models.UriDef) error {
	if def.ObjID == "" {
		def.ObjID = uuid.NewString()
	}
	def.Touch(time.Now().UTC())

	query := r.db.Rebind(`
		INSERT INTO uri_defs (` + uriDefColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	args := append([]any{
		def.ObjID,
		def.APIID,
		def.SiteID,
		def.ServiceName,
		ns(string(def.Method)),
		ns(def.APIName),
		ns(def.Description),
		ns(def.BaseURI),
		ns(def.VersionInfo),
	}, auditBind(&def.Audit)...)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classify(r.db, err, "create uri definition")
	}
	return nil
}

func (r *uriDefRepository) Get(ctx context.Context, objID string) (*models.UriDef, error) {
	query := r.db.Rebind(`SELECT ` + uriDefColumns + ` FROM uri_defs WHERE obj_id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, objID))
}

func (r *uriDefRepository) GetByAPIID(ctx context.Context, apiID string) (*models.UriDef, error) {
	query := r.db.Rebind(`SELECT ` + uriDefColumns + ` FROM uri_defs WHERE api_id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, apiID))
}

func (r *uriDefRepository) List(ctx context.Context) ([]*models.UriDef, error) {
	query := `SELECT ` + uriDefColumns + ` FROM uri_defs ORDER BY api_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list uri definitions: %w", err)
	}
	defer rows.Close()

	var defs []*models.UriDef
	for rows.Next() {
		def, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *uriDefRepository) Update(ctx context.Context, def *models.UriDef) error {
	def.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE uri_defs
		SET site_id = ?, srv_nm = ?, method_nm = ?, api_nm = ?, api_desc = ?,
		    base_uri = ?, version_inf = ?, mdfy_dt = ?, mdfy_user_id = ?,
		    use_stat_cd = ?, rsn_cd = ?, trns_cm = ?
		WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		def.SiteID,
		def.ServiceName,
		ns(string(def.Method)),
		ns(def.APIName),
		ns(def.Description),
		ns(def.BaseURI),
		ns(def.VersionInfo),
		def.UpdatedAt,
		ns(def.UpdatedBy),
		string(def.UseStatus),
		ns(def.ReasonCode),
		ns(def.TransformComment),
		def.ObjID,
	)
	if err != nil {
		return classify(r.db, err, "update uri definition")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update uri definition: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByAPIID deletes children explicitly before the parent inside one
// transaction. The FK also declares ON DELETE CASCADE; doing the delete
// explicitly keeps the behavior identical on backends where the constraint
// is advisory, and lets the caller report how many paths went with the
// definition.
func (r *uriDefRepository) DeleteByAPIID(ctx context.Context, apiID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	childResult, err := tx.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM uri_paths WHERE api_id = ?`), apiID)
	if err != nil {
		return 0, classify(r.db, err, "delete uri paths")
	}
	children, err := childResult.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete uri paths: %w", err)
	}

	parentResult, err := tx.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM uri_defs WHERE api_id = ?`), apiID)
	if err != nil {
		return 0, classify(r.db, err, "delete uri definition")
	}
	affected, err := parentResult.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete uri definition: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit cascade delete: %w", err)
	}
	return children, nil
}

func (r *uriDefRepository) scanOne(row rowScanner) (*models.UriDef, error) {
	var (
		def     models.UriDef
		method  sql.NullString
		apiName sql.NullString
		desc    sql.NullString
		baseURI sql.NullString
		version sql.NullString
		audit   auditScan
	)

	targets := append([]any{
		&def.ObjID,
		&def.APIID,
		&def.SiteID,
		&def.ServiceName,
		&method,
		&apiName,
		&desc,
		&baseURI,
		&version,
	}, audit.targets(&def.Audit)...)

	if err := row.Scan(targets...); err != nil {
		return nil, classify(r.db, err, "scan uri definition")
	}

	def.Method = models.HTTPMethod(str(method))
	def.APIName = str(apiName)
	def.Description = str(desc)
	def.BaseURI = str(baseURI)
	def.VersionInfo = str(version)
	audit.apply(&def.Audit)
	return &def, nil
}

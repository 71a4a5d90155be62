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

// NoteRepository defines data access for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, objID string) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, objID string) error
}

type noteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a note repository.
func NewNoteRepository(db *database.DB) NoteRepository {
	return &noteRepository{db: db}
}

const noteColumns = "obj_id, title, content, " + auditColumns

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ObjID == "" {
		note.ObjID = uuid.NewString()
	}
	note.Touch(time.Now().UTC())

	query := r.db.Rebind(`
		INSERT INTO notes (` + noteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	args := append([]any{
		note.ObjID,
		note.Title,
		ns(note.Content),
	}, auditBind(&note.Audit)...)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classify(r.db, err, "create note")
	}
	return nil
}

func (r *noteRepository) Get(ctx context.Context, objID string) (*models.Note, error) {
	query := r.db.Rebind(`SELECT ` + noteColumns + ` FROM notes WHERE obj_id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, objID))
}

func (r *noteRepository) List(ctx context.Context) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY crt_dt, obj_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE notes
		SET title = ?, content = ?, mdfy_dt = ?, mdfy_user_id = ?,
		    use_stat_cd = ?, rsn_cd = ?, trns_cm = ?
		WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		note.Title,
		ns(note.Content),
		note.UpdatedAt,
		ns(note.UpdatedBy),
		string(note.UseStatus),
		ns(note.ReasonCode),
		ns(note.TransformComment),
		note.ObjID,
	)
	if err != nil {
		return classify(r.db, err, "update note")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, objID string) error {
	query := r.db.Rebind(`DELETE FROM notes WHERE obj_id = ?`)

	result, err := r.db.ExecContext(ctx, query, objID)
	if err != nil {
		return classify(r.db, err, "delete note")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *noteRepository) scanOne(row rowScanner) (*models.Note, error) {
	var (
		note    models.Note
		content sql.NullString
		audit   auditScan
	)

	targets := append([]any{
		&note.ObjID,
		&note.Title,
		&content,
	}, audit.targets(&note.Audit)...)

	if err := row.Scan(targets...); err != nil {
		return nil, classify(r.db, err, "scan note")
	}

	note.Content = str(content)
	audit.apply(&note.Audit)
	return &note, nil
}

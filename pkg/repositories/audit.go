package repositories

import (
	"database/sql"

	"github.com/restgate/registry-engine/pkg/models"
)

// auditColumns is the shared tail of every table's column list, in bind and
// scan order.
const auditColumns = "crt_dt, mdfy_dt, crt_user_id, mdfy_user_id, tid, use_stat_cd, rsn_cd, trns_cm"

// auditBind returns bind values for the audit tail.
func auditBind(a *models.Audit) []any {
	return []any{
		a.CreatedAt,
		a.UpdatedAt,
		ns(a.CreatedBy),
		ns(a.UpdatedBy),
		ns(a.TID),
		string(a.UseStatus),
		ns(a.ReasonCode),
		ns(a.TransformComment),
	}
}

// auditScan collects nullable audit columns during a row scan; apply copies
// them onto the model once the scan succeeded.
type auditScan struct {
	createdBy sql.NullString
	updatedBy sql.NullString
	tid       sql.NullString
	useStatus sql.NullString
	reason    sql.NullString
	transform sql.NullString
}

// targets returns scan destinations for the audit tail, timestamps first.
func (s *auditScan) targets(a *models.Audit) []any {
	return []any{
		&a.CreatedAt,
		&a.UpdatedAt,
		&s.createdBy,
		&s.updatedBy,
		&s.tid,
		&s.useStatus,
		&s.reason,
		&s.transform,
	}
}

func (s *auditScan) apply(a *models.Audit) {
	a.CreatedBy = str(s.createdBy)
	a.UpdatedBy = str(s.updatedBy)
	a.TID = str(s.tid)
	a.UseStatus = models.UseStatus(str(s.useStatus))
	a.ReasonCode = str(s.reason)
	a.TransformComment = str(s.transform)
}

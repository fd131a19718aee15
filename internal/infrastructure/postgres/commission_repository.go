package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Camilo196/Vendly/internal/domain/entity"
	"github.com/Camilo196/Vendly/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

const commissionColumns = `id, user_id, employee_id, type, reference_id, description, base_amount,
	commission_rate, commission_amount, status, date, approved_date, paid_date, notes,
	created_at, updated_at`

// CommissionRepo implementación del puerto CommissionRepository sobre PostgreSQL (usable con pool o tx).
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador de comisiones. Pasar pool o tx (Querier).
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

func scanCommissionRows(rows pgx.Rows) ([]*entity.Commission, error) {
	defer rows.Close()
	var list []*entity.Commission
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.EmployeeID, &c.Type, &c.ReferenceID, &c.Description, &c.BaseAmount,
			&c.CommissionRate, &c.CommissionAmount, &c.Status, &c.Date, &c.ApprovedDate, &c.PaidDate,
			&c.Notes, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Create persiste una comisión.
func (r *CommissionRepo) Create(commission *entity.Commission) error {
	query := `
		INSERT INTO commissions (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		commission.ID, commission.UserID, commission.EmployeeID, commission.Type,
		commission.ReferenceID, commission.Description, commission.BaseAmount,
		commission.CommissionRate, commission.CommissionAmount, commission.Status, commission.Date,
		commission.ApprovedDate, commission.PaidDate, commission.Notes,
		commission.CreatedAt, commission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

// GetByID obtiene una comisión del tenant por ID.
func (r *CommissionRepo) GetByID(userID, id string) (*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE user_id = $1 AND id = $2`
	var c entity.Commission
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&c.ID, &c.UserID, &c.EmployeeID, &c.Type, &c.ReferenceID, &c.Description, &c.BaseAmount,
		&c.CommissionRate, &c.CommissionAmount, &c.Status, &c.Date, &c.ApprovedDate, &c.PaidDate,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return &c, nil
}

// Update actualiza una comisión existente.
func (r *CommissionRepo) Update(commission *entity.Commission) error {
	query := `
		UPDATE commissions SET
			base_amount = $3, commission_rate = $4, commission_amount = $5, status = $6,
			approved_date = $7, paid_date = $8, notes = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		commission.UserID, commission.ID, commission.BaseAmount, commission.CommissionRate,
		commission.CommissionAmount, commission.Status, commission.ApprovedDate,
		commission.PaidDate, commission.Notes, commission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update commission: %w", err)
	}
	return nil
}

// List lista comisiones con filtros opcionales, más recientes primero.
func (r *CommissionRepo) List(userID string, filter repository.CommissionFilter) ([]*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE user_id = $1`
	args := []any{userID}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += ` AND employee_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY date DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	return scanCommissionRows(rows)
}

// ListByReferences lista comisiones cuyo reference_id esté en refIDs y cuyo
// estado esté en statuses (vacío = todos).
func (r *CommissionRepo) ListByReferences(userID string, refIDs []string, statuses []string) ([]*entity.Commission, error) {
	if len(refIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE user_id = $1 AND reference_id = ANY($2)`
	args := []any{userID, refIDs}
	if len(statuses) > 0 {
		args = append(args, statuses)
		query += ` AND status = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commissions by reference: %w", err)
	}
	return scanCommissionRows(rows)
}

// DeleteByReference borra las comisiones de un tipo que referencian a un origen.
func (r *CommissionRepo) DeleteByReference(userID, referenceID, commissionType string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM commissions WHERE user_id = $1 AND reference_id = $2 AND type = $3`,
		userID, referenceID, commissionType,
	)
	if err != nil {
		return fmt.Errorf("delete commissions by reference: %w", err)
	}
	return nil
}

// CancelByReference marca como cancelled las comisiones de un origen eliminado.
func (r *CommissionRepo) CancelByReference(userID, referenceID, commissionType string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE commissions SET status = $4, updated_at = now()
		 WHERE user_id = $1 AND reference_id = $2 AND type = $3 AND status <> $4`,
		userID, referenceID, commissionType, entity.CommissionCancelled,
	)
	if err != nil {
		return 0, fmt.Errorf("cancel commissions by reference: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// PayBatch marca como pagadas las comisiones indicadas que estén en pending o
// approved; las demás se omiten sin error.
func (r *CommissionRepo) PayBatch(userID string, ids []string, notes string, paidAt time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE commissions SET status = $3, paid_date = $4,
			notes = CASE WHEN $5 <> '' THEN $5 ELSE notes END, updated_at = $4
		 WHERE user_id = $1 AND id = ANY($2) AND status IN ($6, $7)`,
		userID, ids, entity.CommissionPaid, paidAt, notes,
		entity.CommissionPending, entity.CommissionApproved,
	)
	if err != nil {
		return 0, fmt.Errorf("pay commissions batch: %w", err)
	}
	return cmd.RowsAffected(), nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
)

const billColumns = `b.id, b.name, b.amount, b.currency, b.due_date, b.category, b.notes,
	b.created_by, COALESCE(b.group_id, ''), b.paid, b.paid_at, b.split_method,
	b.created_at, b.updated_at`

// billOrder lists bills soonest due first.
const billOrder = `b.due_date ASC, b.created_at ASC, b.id ASC`

// CreateBill persists a new bill and its participants.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	if bill.UpdatedAt == 0 {
		bill.UpdatedAt = bill.CreatedAt
	}
	if bill.Currency == "" {
		bill.Currency = money.DefaultCurrency
	}
	if bill.Name == "" {
		bill.Name = generateTitle(bill.Participants, time.Unix(bill.CreatedAt, 0))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, name, amount, currency, due_date, category, notes, created_by,
			group_id, paid, paid_at, split_method, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Name, bill.Amount.Float64(), bill.Currency, bill.DueDate.Unix(),
		bill.Category, bill.Notes, bill.CreatedBy, nullIfEmpty(bill.GroupID),
		bill.Paid, bill.PaidAt, bill.SplitMethod, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertParticipants(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its participants.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills b WHERE b.id = ?`, billID)
	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := s.loadParticipants(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// UpdateBill replaces a bill's fields and its participant list.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()
	if bill.Currency == "" {
		bill.Currency = money.DefaultCurrency
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE bills SET name = ?, amount = ?, currency = ?, due_date = ?, category = ?,
			notes = ?, group_id = ?, paid = ?, paid_at = ?, split_method = ?, updated_at = ?
		 WHERE id = ?`,
		bill.Name, bill.Amount.Float64(), bill.Currency, bill.DueDate.Unix(), bill.Category,
		bill.Notes, nullIfEmpty(bill.GroupID), bill.Paid, bill.PaidAt, bill.SplitMethod,
		bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if err := requireAffected(res, "bill", bill.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_participants WHERE bill_id = ?`, bill.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetBillPaid marks a bill paid at paidAt, or unpaid.
func (s *SQLiteStore) SetBillPaid(ctx context.Context, billID string, paid bool, paidAt int64) error {
	if !paid {
		paidAt = 0
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET paid = ?, paid_at = ?, updated_at = ? WHERE id = ?`,
		paid, paidAt, time.Now().Unix(), billID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	return requireAffected(res, "bill", billID)
}

// DeleteBill removes a bill; participants cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ?`, billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return requireAffected(res, "bill", billID)
}

// ListBills retrieves the bills created by createdBy, soonest due first.
func (s *SQLiteStore) ListBills(ctx context.Context, createdBy string, filter storage.BillFilter) ([]*models.Bill, error) {
	where := []string{"b.created_by = ?"}
	args := []any{createdBy}
	if filter.Paid != nil {
		where = append(where, "b.paid = ?")
		args = append(args, *filter.Paid)
	}
	if filter.Category != "" {
		where = append(where, "b.category = ?")
		args = append(args, filter.Category)
	}
	if filter.NameContains != "" {
		where = append(where, `b.name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.NameContains)+"%")
	}
	if !filter.DueFrom.IsZero() {
		where = append(where, "b.due_date >= ?")
		args = append(args, filter.DueFrom.Unix())
	}
	if !filter.DueTo.IsZero() {
		where = append(where, "b.due_date <= ?")
		args = append(args, filter.DueTo.Unix())
	}

	return s.queryBills(ctx,
		`SELECT `+billColumns+` FROM bills b WHERE `+strings.Join(where, " AND ")+` ORDER BY `+billOrder,
		args...,
	)
}

// ListBillsByGroup retrieves all bills for a group.
func (s *SQLiteStore) ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error) {
	return s.queryBills(ctx,
		`SELECT `+billColumns+` FROM bills b WHERE b.group_id = ? ORDER BY `+billOrder,
		groupID,
	)
}

// ListParticipations retrieves every participant row for email, joined to its bill.
func (s *SQLiteStore) ListParticipations(ctx context.Context, email string) ([]storage.ParticipationRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.email, p.share, `+billColumns+`
		 FROM bill_participants p
		 JOIN bills b ON b.id = p.bill_id
		 WHERE p.email = ?
		 ORDER BY `+billOrder,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	defer rows.Close()

	var out []storage.ParticipationRow
	for rows.Next() {
		var (
			row   storage.ParticipationRow
			share sql.NullFloat64
		)
		bill, err := scanBill(rows, &row.Email, &share)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		row.Share = shareValue(share)
		row.Bill = bill
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participations: %w", err)
	}
	return out, nil
}

// ListCreatedSplitBills retrieves the split bills created by email with all
// of their participant rows as stored.
func (s *SQLiteStore) ListCreatedSplitBills(ctx context.Context, email string) ([]storage.LedgerRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.email, p.name, p.share, `+billColumns+`
		 FROM bills b
		 JOIN bill_participants p ON p.bill_id = b.id
		 WHERE b.created_by = ? AND b.split_method != ''
		 ORDER BY `+billOrder+`, p.position ASC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list split bills: %w", err)
	}
	defer rows.Close()

	var out []storage.LedgerRow
	for rows.Next() {
		var (
			sr    storage.ShareRow
			share sql.NullFloat64
		)
		bill, err := scanBill(rows, &sr.Email, &sr.Name, &share)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split bill: %w", err)
		}
		sr.Share = shareValue(share)

		if n := len(out); n == 0 || out[n-1].Bill.ID != bill.ID {
			out = append(out, storage.LedgerRow{Bill: *bill})
		}
		last := &out[len(out)-1]
		last.Shares = append(last.Shares, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split bills: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) queryBills(ctx context.Context, query string, args ...any) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		if err := s.loadParticipants(ctx, bill); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, bill *models.Bill) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, name, share, percentage, paid, paid_amount
		 FROM bill_participants WHERE bill_id = ? ORDER BY position`,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	bill.Participants = nil
	for rows.Next() {
		p := models.BillParticipant{BillID: bill.ID}
		var share sql.NullFloat64
		var paidAmount float64
		if err := rows.Scan(&p.Email, &p.Name, &share, &p.Percentage, &p.Paid, &paidAmount); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if p.Share, err = readMoney(shareValue(share), "share", bill.ID); err != nil {
			return err
		}
		if p.PaidAmount, err = readMoney(paidAmount, "paid amount", bill.ID); err != nil {
			return err
		}
		bill.Participants = append(bill.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for i := range bill.Participants {
		p := &bill.Participants[i]
		p.BillID = bill.ID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bill_participants (bill_id, position, email, name, share, percentage, paid, paid_amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, i, p.Email, p.Name, p.Share.Float64(), int64(p.Percentage), p.Paid, p.PaidAmount.Float64(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// scanBill scans billColumns, after any leading destinations in prefix.
func scanBill(row rowScanner, prefix ...any) (*models.Bill, error) {
	var (
		b      models.Bill
		amount float64
		due    int64
	)
	dest := append(prefix,
		&b.ID, &b.Name, &amount, &b.Currency, &due, &b.Category, &b.Notes,
		&b.CreatedBy, &b.GroupID, &b.Paid, &b.PaidAt, &b.SplitMethod,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if b.Amount, err = readMoney(amount, "amount", b.ID); err != nil {
		return nil, err
	}
	b.DueDate = time.Unix(due, 0).UTC()
	return &b, nil
}

// generateTitle creates a bill name from its participants.
func generateTitle(participants []models.BillParticipant, created time.Time) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Bill - %s", created.Format("Jan 2, 2006"))
	}
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
		if names[i] == "" {
			names[i] = p.Email
		}
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}

// escapeLike escapes the LIKE wildcards in s for use with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// shareValue maps a NULL share to NaN so the balance engine rejects it.
func shareValue(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

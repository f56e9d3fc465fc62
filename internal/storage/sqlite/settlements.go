package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
)

// settlementColumns is the SELECT list; group_id reads back as "" when NULL.
const settlementColumns = `id, COALESCE(group_id, ''), payer_email, payee_email, amount, currency,
	notes, settled_at, created_at`

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.SettledAt == 0 {
		settlement.SettledAt = settlement.CreatedAt
	}
	if settlement.Currency == "" {
		settlement.Currency = money.DefaultCurrency
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, payer_email, payee_email, amount, currency,
			notes, settled_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, nullIfEmpty(settlement.GroupID), settlement.PayerEmail, settlement.PayeeEmail,
		settlement.Amount.Float64(), settlement.Currency, settlement.Notes,
		settlement.SettledAt, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// ListSettlementsForUser retrieves settlements the user paid or received, newest first.
func (s *SQLiteStore) ListSettlementsForUser(ctx context.Context, email string) ([]*models.Settlement, error) {
	return s.querySettlements(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE payer_email = ? OR payee_email = ?
		 ORDER BY settled_at DESC, created_at DESC`,
		email, email,
	)
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.querySettlements(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE group_id = ?
		 ORDER BY settled_at DESC, created_at DESC`,
		groupID,
	)
}

func (s *SQLiteStore) querySettlements(ctx context.Context, query string, args ...any) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		st := &models.Settlement{}
		var amount float64
		if err := rows.Scan(&st.ID, &st.GroupID, &st.PayerEmail, &st.PayeeEmail, &amount,
			&st.Currency, &st.Notes, &st.SettledAt, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		if st.Amount, err = readMoney(amount, "amount", st.ID); err != nil {
			return nil, err
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

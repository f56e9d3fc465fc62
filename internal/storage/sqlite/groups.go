package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/storage"
)

// CreateGroup persists a new group and its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, description, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.Description, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := addMembers(ctx, tx, group.ID, group.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including its members in join order.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_by, created_at FROM groups WHERE id = ?`,
		groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadMembers(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsForMember retrieves the groups email belongs to, newest first.
func (s *SQLiteStore) ListGroupsForMember(ctx context.Context, email string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.description, g.created_by, g.created_at
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.email = ?
		 ORDER BY g.created_at DESC, g.id ASC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := s.loadMembers(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// AddGroupMembers appends members to a group. Existing members are ignored.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, members []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM groups WHERE id = ?`, groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}

	if err := addMembers(ctx, tx, groupID, members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateGroup changes a group's name and description. Members are unchanged.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE groups SET name = ?, description = ? WHERE id = ?`,
		group.Name, group.Description, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return requireAffected(res, "group", group.ID)
}

// DeleteGroup removes a group and its members. Its bills and settlements
// are kept and become personal.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireAffected(res, "group", groupID)
}

// RemoveGroupMember removes one member from a group.
func (s *SQLiteStore) RemoveGroupMember(ctx context.Context, groupID, email string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND email = ?`,
		groupID, email,
	)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return requireAffected(res, "group member", email)
}

func addMembers(ctx context.Context, tx *sql.Tx, groupID string, members []string) error {
	for _, email := range members {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO group_members (group_id, email, position)
			 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM group_members WHERE group_id = ?))`,
			groupID, email, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email FROM group_members WHERE group_id = ? ORDER BY position`,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	group.Members = nil
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		group.Members = append(group.Members, email)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}
	return nil
}

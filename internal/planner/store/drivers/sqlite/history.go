package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
)

type historyRepo struct {
	db dbtx
}

const historyColumns = `id, user_id, destination, check_in, check_out, plan, is_pinned, is_archived, created_at, updated_at`

func scanHistory(row interface{ Scan(...any) error }) (domain.HistoryEntry, error) {
	var (
		h                domain.HistoryEntry
		plan             string
		created, updated int64
	)
	err := row.Scan(&h.ID, &h.UserID, &h.Destination, &h.CheckIn, &h.CheckOut, &plan,
		&h.IsPinned, &h.IsArchived, &created, &updated)
	if err != nil {
		return domain.HistoryEntry{}, mapNotFound(err)
	}
	h.Plan = json.RawMessage(plan)
	h.CreatedAt = fromMillis(created)
	h.UpdatedAt = fromMillis(updated)
	return h, nil
}

func (r *historyRepo) CreateHistory(ctx context.Context, h domain.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO histories (`+historyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.Destination, h.CheckIn, h.CheckOut, string(h.Plan),
		h.IsPinned, h.IsArchived, toMillis(h.CreatedAt), toMillis(h.UpdatedAt))
	return mapUnique(err)
}

func (r *historyRepo) GetHistory(ctx context.Context, userID, id string) (domain.HistoryEntry, error) {
	return scanHistory(r.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM histories WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *historyRepo) ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM histories WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *historyRepo) UpdateHistoryPlan(
	ctx context.Context,
	userID, id, checkIn, checkOut string,
	plan json.RawMessage,
	now time.Time,
) error {
	return requireOne(r.db.ExecContext(ctx,
		`UPDATE histories SET check_in = ?, check_out = ?, plan = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		checkIn, checkOut, string(plan), toMillis(now), id, userID))
}

func (r *historyRepo) UpdateHistoryFlags(
	ctx context.Context,
	userID, id string,
	patch domain.HistoryPatch,
	now time.Time,
) error {
	sets := []string{"updated_at = ?"}
	args := []any{toMillis(now)}
	if patch.IsPinned != nil {
		sets = append(sets, "is_pinned = ?")
		args = append(args, *patch.IsPinned)
	}
	if patch.IsArchived != nil {
		sets = append(sets, "is_archived = ?")
		args = append(args, *patch.IsArchived)
	}
	args = append(args, id, userID)

	return requireOne(r.db.ExecContext(ctx,
		`UPDATE histories SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`, args...))
}

func (r *historyRepo) DeleteHistory(ctx context.Context, userID, id string) error {
	return requireOne(r.db.ExecContext(ctx,
		`DELETE FROM histories WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *historyRepo) CountHistory(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM histories WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

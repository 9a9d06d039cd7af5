package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
)

type otpsRepo struct {
	db dbtx
}

func (r *otpsRepo) CreateOTP(ctx context.Context, rec domain.OTPRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otps (id, email, code_hash, purpose, issued_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Email, rec.CodeHash, string(rec.Purpose), toMillis(rec.IssuedAt))
	return mapUnique(err)
}

func (r *otpsRepo) FindActiveOTP(
	ctx context.Context,
	email, codeHash string,
	purpose domain.OTPPurpose,
	issuedAfter time.Time,
) (domain.OTPRecord, error) {
	var (
		rec    domain.OTPRecord
		p      string
		issued int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, code_hash, purpose, issued_at FROM otps
		 WHERE email = ?1 AND code_hash = ?2 AND (?3 = '' OR purpose = ?3) AND issued_at > ?4
		 ORDER BY issued_at DESC
		 LIMIT 1`,
		email, codeHash, string(purpose), toMillis(issuedAfter),
	).Scan(&rec.ID, &rec.Email, &rec.CodeHash, &p, &issued)
	if err != nil {
		return domain.OTPRecord{}, mapNotFound(err)
	}
	rec.Purpose = domain.OTPPurpose(p)
	rec.IssuedAt = fromMillis(issued)
	return rec, nil
}

func (r *otpsRepo) DeleteOTPsByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE email = ?`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *otpsRepo) CountOTPsByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM otps WHERE email = ?`, email).Scan(&n)
	return n, err
}

func (r *otpsRepo) DeleteOTPsIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE issued_at <= ?`, toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

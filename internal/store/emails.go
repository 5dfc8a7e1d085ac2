package store

import (
	"context"
	"database/sql"
	"time"
)

// GetEmail reports a cached finder result. ok is true even for a cached miss
// (empty email), so callers skip the paid lookup either way.
func (d *DB) GetEmail(ctx context.Context, first, last, domain string) (string, bool, error) {
	first, last, domain = normalizeKey(first), normalizeKey(last), normalizeKey(domain)
	if first == "" || domain == "" {
		return "", false, nil
	}

	var email string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT email FROM emails WHERE first = ? AND last = ? AND domain = ? LIMIT 1;`,
		first, last, domain,
	).Scan(&email)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return email, true, nil
}

func (d *DB) PutEmail(ctx context.Context, first, last, domain, email string) error {
	first, last, domain = normalizeKey(first), normalizeKey(last), normalizeKey(domain)
	if first == "" || domain == "" {
		return nil
	}

	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO emails(first, last, domain, email, fetched_at)
VALUES(?,?,?,?,?)
ON CONFLICT(first, last, domain) DO UPDATE SET
  email = excluded.email,
  fetched_at = excluded.fetched_at;
`, first, last, domain, email, time.Now().UTC().Format(time.RFC3339))

	return err
}

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/iliyamo/table-reservation-web/internal/utils"
)

// MySQLStore persists sessions in the web_sessions table (single
// 'sid_hash' key column):
//
//	CREATE TABLE web_sessions (
//	  sid_hash   CHAR(64)  NOT NULL PRIMARY KEY,
//	  payload    JSON      NOT NULL,
//	  expires_at DATETIME  NOT NULL,
//	  updated_at DATETIME  NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
//	  KEY idx_web_sessions_expires (expires_at)
//	);
type MySQLStore struct{ DB *sql.DB }

func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{DB: db} }

// EnsureSchema creates the table when it does not exist.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS web_sessions (
		sid_hash   CHAR(64) NOT NULL PRIMARY KEY,
		payload    JSON     NOT NULL,
		expires_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_web_sessions_expires (expires_at)
	)`)
	return err
}

// Load returns the session if a non-expired row exists.
func (s *MySQLStore) Load(ctx context.Context, sid string) (*Data, error) {
	var (
		payload   []byte
		expiresAt time.Time
	)
	err := s.DB.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM web_sessions WHERE sid_hash=? LIMIT 1",
		utils.HashSessionID(sid)).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().UTC().After(expiresAt) {
		return nil, ErrNotFound
	}
	var d Data
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save upserts the row and pushes its expiry forward.
func (s *MySQLStore) Save(ctx context.Context, sid string, d *Data, ttl time.Duration) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO web_sessions (sid_hash, payload, expires_at) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE payload=VALUES(payload), expires_at=VALUES(expires_at)`,
		utils.HashSessionID(sid), payload, time.Now().UTC().Add(ttl))
	return err
}

func (s *MySQLStore) Delete(ctx context.Context, sid string) error {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM web_sessions WHERE sid_hash=?", utils.HashSessionID(sid))
	return err
}

// PurgeExpired removes rows past their expiry.
func (s *MySQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM web_sessions WHERE expires_at < UTC_TIMESTAMP()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Package localstore persists per-user form drafts in a SQLite file on
// the application host, surviving restarts without requiring PostgreSQL.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	user_id    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

type Store struct {
	db *sqlx.DB
}

var _ session.DraftRepository = (*Store)(nil)

// Open creates the draft database at conf.LocalStore.Path if needed,
// enabling WAL mode so concurrent handler reads do not block writes.
func Open(conf *core.Config) (*Store, error) {
	path := conf.LocalStore.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating draft store directory")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening draft store")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err = db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "executing %q", pragma)
		}
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating draft schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveDraft(ctx context.Context, userID string, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "marshalling draft")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (user_id, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return errors.Wrap(err, "saving draft")
}

func (s *Store) GetDraft(ctx context.Context, userID string) (session.Session, error) {
	var data string
	err := s.db.GetContext(ctx, &data, `SELECT data FROM drafts WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return session.Session{}, session.ErrDraftNotFound
		}
		return session.Session{}, errors.Wrap(err, "getting draft")
	}

	var sess session.Session
	if err = json.Unmarshal([]byte(data), &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "unmarshalling draft")
	}
	return sess, nil
}

func (s *Store) DeleteDraft(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE user_id = $1`, userID)
	return errors.Wrap(err, "deleting draft")
}

package history

import "database/sql"

// PostgresStore persists anonymous session state in a single key-value table.
// Last-write-wins on concurrent updates of the same key is acceptable for the
// single-tab session assumption.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresStore) EnsureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS session_history (
		key TEXT PRIMARY KEY,
		value jsonb NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT now()
	)`)
	return err
}

func (s *PostgresStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM session_history WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO session_history (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	return err
}

func (s *PostgresStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session_history WHERE key = $1`, key)
	return err
}

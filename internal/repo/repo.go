package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Conduit/internal/calc/conduit"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type Calculation struct {
	ID          uuid.UUID           `json:"id"`
	UserID      int                 `json:"user_id"`
	ConduitType conduit.ConduitType `json:"conduit_type"`
	Input       conduit.Input       `json:"input"`
	Result      *conduit.Result     `json:"result,omitempty"`
	Outcome     string              `json:"outcome"`
	CreatedAt   time.Time           `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	SaveCalculation(ctx context.Context, c Calculation) error
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
	GetCalculation(ctx context.Context, userID int, id uuid.UUID) (Calculation, error)
}

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT UNIQUE NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS calculations (
	id           UUID PRIMARY KEY,
	user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	conduit_type TEXT NOT NULL,
	request      JSONB NOT NULL,
	result       JSONB,
	outcome      TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS calculations_user_created_idx ON calculations (user_id, created_at DESC);
`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) SaveCalculation(ctx context.Context, c Calculation) error {
	req, err := json.Marshal(c.Input)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	var res []byte
	if c.Result != nil {
		if res, err = json.Marshal(c.Result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}
	query := `INSERT INTO calculations (id, user_id, conduit_type, request, result, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, c.ID, c.UserID, string(c.ConduitType), req, nullJSON(res), c.Outcome, c.CreatedAt)
	return err
}

func (r *PostgresUserRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	query := `SELECT id, user_id, conduit_type, request, result, outcome, created_at
		FROM calculations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) GetCalculation(ctx context.Context, userID int, id uuid.UUID) (Calculation, error) {
	query := `SELECT id, user_id, conduit_type, request, result, outcome, created_at
		FROM calculations WHERE user_id=$1 AND id=$2`
	c, err := scanCalculation(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, ErrNotFound
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (Calculation, error) {
	var (
		c        Calculation
		ct       string
		req, res []byte
	)
	if err := s.Scan(&c.ID, &c.UserID, &ct, &req, &res, &c.Outcome, &c.CreatedAt); err != nil {
		return Calculation{}, err
	}
	c.ConduitType = conduit.ConduitType(ct)
	if err := json.Unmarshal(req, &c.Input); err != nil {
		return Calculation{}, fmt.Errorf("decode request %s: %w", c.ID, err)
	}
	if len(res) > 0 {
		c.Result = &conduit.Result{}
		if err := json.Unmarshal(res, c.Result); err != nil {
			return Calculation{}, fmt.Errorf("decode result %s: %w", c.ID, err)
		}
	}
	return c, nil
}

func nullJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

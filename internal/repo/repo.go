package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Profile struct {
	ID           int    `json:"id"`
	Login        string `json:"login"`
	Email        string `json:"email"`
	Organisation string `json:"organisation"`
	About        string `json:"about"`
}

// Preset is a named design-parameter set saved by a user. Params holds the
// parameter record as JSON so the schema never chases the calculation core.
type Preset struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Params    json.RawMessage `json:"params"`
	CreatedAt time.Time       `json:"created_at"`
}

// Run is one saved grid-run summary.
type Run struct {
	ID        string          `json:"id"`
	Params    json.RawMessage `json:"params"`
	MaxUtil   float64         `json:"max_util"`
	Failures  int             `json:"failures"`
	Checks    int             `json:"checks"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, login, organisation, about string) (int64, error)

	SavePreset(ctx context.Context, userID int, name string, params []byte) (int, error)
	ListPresets(ctx context.Context, userID int) ([]Preset, error)
	DeletePreset(ctx context.Context, userID, id int) (int64, error)

	SaveRun(ctx context.Context, userID int, id string, params []byte, maxUtil float64, failures, checks int) error
	ListRuns(ctx context.Context, userID int) ([]Run, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
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

func (r *PostgresUserRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := "SELECT id, login, email, COALESCE(organisation, ''), COALESCE(about, '') FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Login, &p.Email, &p.Organisation, &p.About)
	return p, err
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int, login, organisation, about string) (int64, error) {
	query := "UPDATE users SET login=$2, organisation=$3, about=$4 WHERE id=$1"
	res, err := r.db.ExecContext(ctx, query, id, login, organisation, about)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresUserRepository) SavePreset(ctx context.Context, userID int, name string, params []byte) (int, error) {
	var id int
	query := "INSERT INTO presets (user_id, name, params) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, params).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) ListPresets(ctx context.Context, userID int) ([]Preset, error) {
	query := "SELECT id, name, params, created_at FROM presets WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.Name, &p.Params, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) DeletePreset(ctx context.Context, userID, id int) (int64, error) {
	query := "DELETE FROM presets WHERE id=$1 AND user_id=$2"
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresUserRepository) SaveRun(ctx context.Context, userID int, id string, params []byte, maxUtil float64, failures, checks int) error {
	query := "INSERT INTO runs (id, user_id, params, max_util, failures, checks) VALUES ($1, $2, $3, $4, $5, $6)"
	_, err := r.db.ExecContext(ctx, query, id, userID, params, maxUtil, failures, checks)
	return err
}

func (r *PostgresUserRepository) ListRuns(ctx context.Context, userID int) ([]Run, error) {
	query := "SELECT id, params, max_util, failures, checks, created_at FROM runs WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Params, &run.MaxUtil, &run.Failures, &run.Checks, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

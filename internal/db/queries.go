package db

import (
	"context"
	"time"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Plan struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Snapshot struct {
	ID        string
	PlanID    string
	Version   int32
	Document  []byte
	CreatedAt time.Time
}

func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password, display_name, created_at`,
		u.ID, u.Email, u.Password, u.DisplayName)

	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at
		 FROM users WHERE email = $1`, email)

	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at
		 FROM users WHERE id = $1`, id)

	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

func (s *Store) CreatePlan(ctx context.Context, p Plan) (Plan, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO plans (id, name, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, owner_id, created_at, updated_at`,
		p.ID, p.Name, p.OwnerID)

	var out Plan
	err := row.Scan(&out.ID, &out.Name, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (s *Store) GetPlan(ctx context.Context, id string) (Plan, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at, updated_at
		 FROM plans WHERE id = $1`, id)

	var out Plan
	err := row.Scan(&out.ID, &out.Name, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (s *Store) ListPlansForUser(ctx context.Context, ownerID string) ([]Plan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, owner_id, created_at, updated_at
		 FROM plans WHERE owner_id = $1
		 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) DeletePlan(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	return err
}

func (s *Store) CreateSnapshot(ctx context.Context, snap Snapshot) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO snapshots (id, plan_id, version, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, plan_id, version, document, created_at`,
		snap.ID, snap.PlanID, snap.Version, snap.Document)

	var out Snapshot
	err := row.Scan(&out.ID, &out.PlanID, &out.Version, &out.Document, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	_, err = s.pool.Exec(ctx, `UPDATE plans SET updated_at = now() WHERE id = $1`, snap.PlanID)
	return out, err
}

func (s *Store) GetLatestSnapshot(ctx context.Context, planID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, plan_id, version, document, created_at
		 FROM snapshots WHERE plan_id = $1
		 ORDER BY version DESC LIMIT 1`, planID)

	var out Snapshot
	err := row.Scan(&out.ID, &out.PlanID, &out.Version, &out.Document, &out.CreatedAt)
	return out, err
}

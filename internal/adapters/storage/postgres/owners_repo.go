package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"horse-registry/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO owners (first_name, last_name, email, description)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`,
		o.FirstName,
		o.LastName,
		o.Email,
		o.Description,
	).Scan(&o.ID)
	if err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, description
		FROM owners
		WHERE id = $1
	`, id)

	var o owners.Owner
	if err := row.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) GetAllByID(ctx context.Context, ids []int64) ([]owners.Owner, error) {
	if len(ids) == 0 {
		return []owners.Owner{}, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	return r.query(ctx, `
		SELECT id, first_name, last_name, email, description
		FROM owners
		WHERE id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY id ASC
	`, args...)
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	return r.Search(ctx, "", 0)
}

func (r *OwnersRepo) Search(ctx context.Context, name string, limit int) ([]owners.Owner, error) {
	q := `
		SELECT id, first_name, last_name, email, description
		FROM owners
		WHERE (first_name || ' ' || last_name) ILIKE $1
		ORDER BY id ASC
	`
	args := []any{"%" + escapeLike(name) + "%"}
	if limit > 0 {
		q += " LIMIT $2"
		args = append(args, limit)
	}
	return r.query(ctx, q, args...)
}

func (r *OwnersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) query(ctx context.Context, q string, args ...any) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Description); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

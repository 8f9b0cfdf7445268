package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"horse-registry/internal/domain/horses"
)

const horseColumns = `
	id,
	name, description, date_of_birth, sex, image,
	owner_id, parent_female_id, parent_male_id,
	created_at, updated_at
`

type HorsesRepo struct {
	db *sql.DB
}

func NewHorsesRepo(db *sql.DB) *HorsesRepo {
	return &HorsesRepo{db: db}
}

func (r *HorsesRepo) Create(ctx context.Context, h horses.Horse) (horses.Horse, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO horses (
			name, description, date_of_birth, sex, image,
			owner_id, parent_female_id, parent_male_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		h.Name,
		h.Description,
		h.DateOfBirth,
		string(h.Sex),
		h.Image,
		toNullInt64(h.OwnerID),
		toNullInt64(h.ParentFemaleID),
		toNullInt64(h.ParentMaleID),
		h.CreatedAt,
		h.UpdatedAt,
	).Scan(&h.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return horses.Horse{}, fmt.Errorf("%w: referenced owner or parent no longer exists", horses.ErrInvalidInput)
		}
		return horses.Horse{}, err
	}
	return h, nil
}

func (r *HorsesRepo) Update(ctx context.Context, h horses.Horse) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE horses
		SET
			name = $2,
			description = $3,
			date_of_birth = $4,
			sex = $5,
			image = $6,
			owner_id = $7,
			parent_female_id = $8,
			parent_male_id = $9,
			updated_at = $10
		WHERE id = $1
	`,
		h.ID,
		h.Name,
		h.Description,
		h.DateOfBirth,
		string(h.Sex),
		h.Image,
		toNullInt64(h.OwnerID),
		toNullInt64(h.ParentFemaleID),
		toNullInt64(h.ParentMaleID),
		h.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced owner or parent no longer exists", horses.ErrInvalidInput)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return horses.ErrNotFound
	}
	return nil
}

func (r *HorsesRepo) GetByID(ctx context.Context, id int64) (horses.Horse, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+horseColumns+` FROM horses WHERE id = $1`, id)

	h, err := scanHorse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return horses.Horse{}, horses.ErrNotFound
		}
		return horses.Horse{}, err
	}
	return h, nil
}

func (r *HorsesRepo) List(ctx context.Context) ([]horses.Horse, error) {
	return r.Search(ctx, horses.Filter{})
}

func (r *HorsesRepo) Search(ctx context.Context, f horses.Filter) ([]horses.Horse, error) {
	if f.FilterOwners && len(f.OwnerIDs) == 0 {
		return []horses.Horse{}, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + horseColumns + ` FROM horses WHERE 1=1`)

	args := []any{}
	argN := 1

	if f.Name != "" {
		sb.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argN))
		args = append(args, "%"+escapeLike(f.Name)+"%")
		argN++
	}
	if f.Description != "" {
		sb.WriteString(fmt.Sprintf(" AND description ILIKE $%d", argN))
		args = append(args, "%"+escapeLike(f.Description)+"%")
		argN++
	}
	if f.BornBefore != nil {
		sb.WriteString(fmt.Sprintf(" AND date_of_birth < $%d", argN))
		args = append(args, *f.BornBefore)
		argN++
	}
	if f.Sex != "" {
		sb.WriteString(fmt.Sprintf(" AND sex = $%d", argN))
		args = append(args, string(f.Sex))
		argN++
	}
	if f.FilterOwners {
		placeholders := make([]string, 0, len(f.OwnerIDs))
		for _, id := range f.OwnerIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, id)
			argN++
		}
		sb.WriteString(" AND owner_id IN (" + strings.Join(placeholders, ",") + ")")
	}

	sb.WriteString(" ORDER BY id ASC")
	if f.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]horses.Horse, 0)
	for rows.Next() {
		h, err := scanHorse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HorsesRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM horses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return horses.ErrNotFound
	}
	return nil
}

// DetachParent es redundante con ON DELETE SET NULL, pero deja el mismo
// comportamiento explícito que el repo in-memory.
func (r *HorsesRepo) DetachParent(ctx context.Context, parentID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE horses
		SET
			parent_female_id = CASE WHEN parent_female_id = $1 THEN NULL ELSE parent_female_id END,
			parent_male_id   = CASE WHEN parent_male_id = $1 THEN NULL ELSE parent_male_id END
		WHERE parent_female_id = $1 OR parent_male_id = $1
	`, parentID)
	return err
}

func (r *HorsesRepo) DetachOwner(ctx context.Context, ownerID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE horses SET owner_id = NULL WHERE owner_id = $1`, ownerID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHorse(s rowScanner) (horses.Horse, error) {
	var (
		h                         horses.Horse
		sex                       string
		owner, female, maleParent sql.NullInt64
	)
	if err := s.Scan(
		&h.ID,
		&h.Name,
		&h.Description,
		&h.DateOfBirth, // date => time.Time 00:00 UTC
		&sex,
		&h.Image,
		&owner,
		&female,
		&maleParent,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return horses.Horse{}, err
	}
	h.Sex = horses.Sex(sex)
	h.OwnerID = fromNullInt64(owner)
	h.ParentFemaleID = fromNullInt64(female)
	h.ParentMaleID = fromNullInt64(maleParent)
	return h, nil
}

// escapeLike evita que % y _ del usuario actúen como comodines.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

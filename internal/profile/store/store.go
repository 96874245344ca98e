package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cvwatch/sunlight/internal/normalize"
	"github.com/cvwatch/sunlight/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is the profiles_normalized_name_type
// unique index rejecting a write.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const selectProfileColumns = `
	id, name, type, city, description, image_url, created_at, updated_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*profile.Profile, error) {
	var p profile.Profile

	var typeStr string

	var city, description, imageURL sql.NullString

	if err := s.Scan(
		&p.ID, &p.Name, &typeStr, &city, &description, &imageURL,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = profile.Type(typeStr)
	p.City = city.String
	p.Description = description.String
	p.ImageURL = imageURL.String

	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (name, normalized_name, type, city, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		normalize.Name(p.Name),
		p.Type,
		nullable(p.City),
		nullable(p.Description),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrDuplicateName
		}

		return fmt.Errorf("creating profile: %w", err)
	}

	return nil
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context, filter profile.ListFilter) ([]profile.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM profiles WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.City != nil {
		query += fmt.Sprintf(" AND city = $%d", argIdx)

		args = append(args, *filter.City)
		argIdx++
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}

	return profiles, nil
}

// UpdateName renames a profile, keeping the normalized_name column (and the
// uniqueness index built on it) in sync with the display name.
func (s *Store) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	query := `
		UPDATE profiles
		SET name = $1, normalized_name = $2, updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, name, normalize.Name(name), id)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrDuplicateName
		}

		return fmt.Errorf("updating profile name: %w", err)
	}

	return checkFound(res)
}

func (s *Store) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	return s.updateColumn(ctx, id, "description", description)
}

func (s *Store) UpdateCity(ctx context.Context, id uuid.UUID, city string) error {
	return s.updateColumn(ctx, id, "city", city)
}

func (s *Store) UpdateImageURL(ctx context.Context, id uuid.UUID, url string) error {
	return s.updateColumn(ctx, id, "image_url", url)
}

// updateColumn writes one of the fixed editable columns. The column name is a
// compile-time constant supplied by the typed update methods above, never
// caller input.
func (s *Store) updateColumn(ctx context.Context, id uuid.UUID, column, value string) error {
	query := fmt.Sprintf(`UPDATE profiles SET %s = $1, updated_at = NOW() WHERE id = $2`, column)

	res, err := s.db.ExecContext(ctx, query, nullable(value), id)
	if err != nil {
		return fmt.Errorf("updating profile %s: %w", column, err)
	}

	return checkFound(res)
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return profile.ErrNotFound
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package store

import (
	"context"

	"planner-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1,$2,$3)`,
		u.ID, u.Email, u.PasswordHash,
	)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *model.Profile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, username, email, full_name) VALUES ($1,$2,$3,$4)`,
		p.ID, p.Username, p.Email, p.FullName,
	)
	return err
}

func (s *Store) ProfileByID(ctx context.Context, userID string) (*model.Profile, error) {
	p := &model.Profile{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, full_name, phone, gender,
		        to_char(birth_date, 'YYYY-MM-DD'), is_premium, is_active, joined_date
		 FROM profiles WHERE id = $1`, userID,
	).Scan(&p.ID, &p.Username, &p.Email, &p.FullName, &p.Phone, &p.Gender,
		&p.BirthDate, &p.IsPremium, &p.IsActive, &p.JoinedDate)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ProfilePatch carries the optional fields of a partial update; nil means
// "leave as is".
type ProfilePatch struct {
	Username  *string
	FullName  *string
	Phone     *string
	Gender    *string
	BirthDate *string
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles
		 SET username   = COALESCE($2, username),
		     full_name  = COALESCE($3, full_name),
		     phone      = COALESCE($4, phone),
		     gender     = COALESCE($5, gender),
		     birth_date = COALESCE($6::date, birth_date)
		 WHERE id = $1`,
		userID, patch.Username, patch.FullName, patch.Phone, patch.Gender, patch.BirthDate,
	)
	return err
}

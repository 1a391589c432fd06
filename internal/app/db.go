package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (a *App) CreateUser(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	q := `INSERT INTO users (google_id, email, name, google_refresh_token, created_at)
	      VALUES ($1,$2,$3,$4,$5) RETURNING id`
	row := a.DB.QueryRow(ctx, q, u.GoogleID, u.Email, u.Name, u.GoogleRefreshToken, now)
	if err := row.Scan(&u.ID); err != nil {
		return err
	}
	u.CreatedAt = now
	return nil
}

func (a *App) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	q := `SELECT id,google_id,email,name,google_refresh_token,created_at
	      FROM users WHERE email=$1`
	var u User
	err := a.DB.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.GoogleRefreshToken, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *App) FindUserByID(ctx context.Context, id int64) (*User, error) {
	q := `SELECT id,google_id,email,name,google_refresh_token,created_at
	      FROM users WHERE id=$1`
	var u User
	err := a.DB.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.GoogleRefreshToken, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *App) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	q := `UPDATE users SET google_refresh_token=$1 WHERE id=$2`
	_, err := a.DB.Exec(ctx, q, refreshToken, userID)
	return err
}

func (a *App) CreateMeeting(ctx context.Context, m *Meeting) error {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	q := `INSERT INTO meetings (id, user_id, agenda, date_time, created_at)
	      VALUES ($1,$2,$3,$4,$5)`
	_, err := a.DB.Exec(ctx, q, m.ID, m.UserID, m.Agenda, m.DateTime, m.CreatedAt)
	return err
}

func (a *App) GetMeetingsByUser(ctx context.Context, userID int64) ([]Meeting, error) {
	q := `SELECT id,user_id,agenda,date_time,created_at
	      FROM meetings WHERE user_id=$1 ORDER BY date_time DESC`
	rows, err := a.DB.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Meeting
	for rows.Next() {
		var m Meeting
		if err := rows.Scan(&m.ID, &m.UserID, &m.Agenda, &m.DateTime, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

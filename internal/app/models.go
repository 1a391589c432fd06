package app

import "time"

type User struct {
	ID                 int64     `json:"id"`
	GoogleID           string    `json:"google_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	GoogleRefreshToken string    `json:"-"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

type Meeting struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Agenda    string    `json:"agenda"`
	DateTime  time.Time `json:"date_time"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

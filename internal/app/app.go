package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"assistant-service/internal/assistant"
	"assistant-service/internal/calendar"
)

// App wires the HTTP handlers to their collaborators. All fields are set
// once at startup and never mutated afterwards.
type App struct {
	DB         *pgxpool.Pool
	Config     *Config
	Log        *zap.Logger
	Provider   calendar.Provider
	Classifier *assistant.Classifier
	Assistant  *assistant.Assistant
	Location   *time.Location
}

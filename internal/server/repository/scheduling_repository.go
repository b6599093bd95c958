package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maynagashev/ignitecall/models"
)

// SchedulingRepository определяет методы для работы с бронированиями.
type SchedulingRepository interface {
	CreateScheduling(ctx context.Context, s *models.Scheduling) error
	ListSchedulingsBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Scheduling, error)
}

type postgresSchedulingRepository struct {
	db *sqlx.DB
}

// NewPostgresSchedulingRepository создает репозиторий бронирований.
func NewPostgresSchedulingRepository(db *sqlx.DB) SchedulingRepository {
	return &postgresSchedulingRepository{db: db}
}

// CreateScheduling сохраняет бронирование и заполняет CreatedAt.
// Если время у пользователя уже занято, возвращает ErrSlotTaken.
func (r *postgresSchedulingRepository) CreateScheduling(ctx context.Context, s *models.Scheduling) error {
	query := `INSERT INTO schedulings (id, user_id, date, name, email, observations)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query, s.ID, s.UserID, s.Date, s.Name, s.Email, s.Observations).
		Scan(&s.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Printf("[SchedulingRepo] Время %s пользователя %d уже занято", s.Date.Format(time.RFC3339), s.UserID)
			return ErrSlotTaken
		}
		log.Printf("[SchedulingRepo] Ошибка создания бронирования: %v", err)
		return fmt.Errorf("ошибка выполнения запроса на создание бронирования: %w", err)
	}

	log.Printf("[SchedulingRepo] Бронирование %s создано для пользователя %d", s.ID, s.UserID)
	return nil
}

// ListSchedulingsBetween возвращает бронирования пользователя в полуинтервале [from, to).
func (r *postgresSchedulingRepository) ListSchedulingsBetween(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) ([]models.Scheduling, error) {
	query := `SELECT id, user_id, date, name, email, observations, created_at
	          FROM schedulings WHERE user_id=$1 AND date >= $2 AND date < $3 ORDER BY date`
	var schedulings []models.Scheduling

	if err := r.db.SelectContext(ctx, &schedulings, query, userID, from, to); err != nil {
		log.Printf("[SchedulingRepo] Ошибка получения бронирований пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение бронирований: %w", err)
	}
	return schedulings, nil
}

// ErrSlotTaken - время уже забронировано.
var ErrSlotTaken = errors.New("время уже забронировано")

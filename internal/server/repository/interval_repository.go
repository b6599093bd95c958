package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/ignitecall/models"
)

// TimeIntervalRepository определяет методы для работы с интервалами доступности.
type TimeIntervalRepository interface {
	ReplaceTimeIntervals(ctx context.Context, userID int64, intervals []models.TimeInterval) error
	ListTimeIntervals(ctx context.Context, userID int64) ([]models.TimeInterval, error)
}

type postgresTimeIntervalRepository struct {
	db *sqlx.DB
}

// NewPostgresTimeIntervalRepository создает репозиторий интервалов доступности.
func NewPostgresTimeIntervalRepository(db *sqlx.DB) TimeIntervalRepository {
	return &postgresTimeIntervalRepository{db: db}
}

// ReplaceTimeIntervals атомарно заменяет все интервалы пользователя.
func (r *postgresTimeIntervalRepository) ReplaceTimeIntervals(
	ctx context.Context,
	userID int64,
	intervals []models.TimeInterval,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() {
		// После Commit откат вернет sql.ErrTxDone, это нормально
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_time_intervals WHERE user_id=$1`, userID); err != nil {
		log.Printf("[IntervalRepo] Ошибка удаления интервалов пользователя %d: %v", userID, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление интервалов: %w", err)
	}

	insert := `INSERT INTO user_time_intervals (user_id, week_day, time_start_in_minutes, time_end_in_minutes)
	           VALUES ($1, $2, $3, $4)`
	for _, in := range intervals {
		if _, err = tx.ExecContext(ctx, insert, userID, in.WeekDay, in.StartTimeInMinutes, in.EndTimeInMinutes); err != nil {
			log.Printf("[IntervalRepo] Ошибка вставки интервала пользователя %d: %v", userID, err)
			return fmt.Errorf("ошибка выполнения запроса на создание интервала: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	log.Printf("[IntervalRepo] Сохранено %d интервалов для пользователя %d", len(intervals), userID)
	return nil
}

// ListTimeIntervals возвращает интервалы пользователя, упорядоченные по дню недели и началу.
func (r *postgresTimeIntervalRepository) ListTimeIntervals(
	ctx context.Context,
	userID int64,
) ([]models.TimeInterval, error) {
	query := `SELECT id, user_id, week_day, time_start_in_minutes, time_end_in_minutes
	          FROM user_time_intervals WHERE user_id=$1 ORDER BY week_day, time_start_in_minutes`
	var intervals []models.TimeInterval

	if err := r.db.SelectContext(ctx, &intervals, query, userID); err != nil {
		log.Printf("[IntervalRepo] Ошибка получения интервалов пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение интервалов: %w", err)
	}
	return intervals, nil
}

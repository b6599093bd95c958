package models

import "time"

// TimeInterval описывает интервал доступности пользователя в один день недели.
// Время задается в минутах от начала суток.
type TimeInterval struct {
	ID                 int64 `db:"id" json:"-"`
	UserID             int64 `db:"user_id" json:"-"`
	WeekDay            int   `db:"week_day" json:"week_day"` // 0 - воскресенье
	StartTimeInMinutes int   `db:"time_start_in_minutes" json:"start_time_in_minutes"`
	EndTimeInMinutes   int   `db:"time_end_in_minutes" json:"end_time_in_minutes"`
}

// TimeIntervalsRequest представляет тело запроса PUT /users/time-intervals.
type TimeIntervalsRequest struct {
	Intervals []TimeInterval `json:"intervals"`
}

// Availability представляет доступные часы на конкретную дату.
type Availability struct {
	PossibleTimes  []int `json:"possible_times"`
	AvailableTimes []int `json:"available_times"`
}

// BlockedDates представляет недоступные дни месяца.
type BlockedDates struct {
	BlockedWeekDays []int `json:"blocked_week_days"`
	BlockedDates    []int `json:"blocked_dates"`
}

// Scheduling представляет подтвержденное бронирование.
type Scheduling struct {
	ID           string    `db:"id" json:"id"` // UUID
	UserID       int64     `db:"user_id" json:"-"`
	Date         time.Time `db:"date" json:"date"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Observations string    `db:"observations" json:"observations"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CreateSchedulingRequest представляет тело запроса POST /users/{username}/schedule.
type CreateSchedulingRequest struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Observations string    `json:"observations"`
	Date         time.Time `json:"date"`
}

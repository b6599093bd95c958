package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/maynagashev/ignitecall/internal/forms"
	"github.com/maynagashev/ignitecall/internal/server/repository"
	"github.com/maynagashev/ignitecall/internal/server/storage"
	"github.com/maynagashev/ignitecall/models"
)

// Параметры хранения приглашений.
const (
	inviteKeyPrefix   = "invites/"
	inviteContentType = "text/calendar; charset=utf-8"
	slotDuration      = time.Hour
)

// ScheduleService определяет интерфейс сервиса бронирований.
type ScheduleService interface {
	// Availability возвращает возможные и свободные часы на день.
	// Из date используются только год, месяц и день.
	Availability(ctx context.Context, username string, date time.Time) (*models.Availability, error)
	// BlockedDates возвращает недоступные дни недели и полностью занятые дни месяца.
	BlockedDates(ctx context.Context, username string, year int, month time.Month) (*models.BlockedDates, error)
	// Schedule проверяет и сохраняет бронирование.
	Schedule(ctx context.Context, username string, req models.CreateSchedulingRequest) (*models.Scheduling, error)
	// Invite возвращает файл приглашения .ics. Вызывающий должен закрыть reader.
	Invite(ctx context.Context, schedulingID string) (io.ReadCloser, error)
}

// Убедимся, что scheduleService удовлетворяет интерфейсу ScheduleService.
var _ ScheduleService = (*scheduleService)(nil)

type scheduleService struct {
	userRepo       repository.UserRepository
	intervalRepo   repository.TimeIntervalRepository
	schedulingRepo repository.SchedulingRepository
	files          storage.FileStorage // nil, если хранилище приглашений не настроено
	loc            *time.Location
	now            func() time.Time
}

// NewScheduleService создает сервис бронирований.
// Все расчеты по дням и часам выполняются в часовом поясе loc (nil означает UTC).
func NewScheduleService(
	userRepo repository.UserRepository,
	intervalRepo repository.TimeIntervalRepository,
	schedulingRepo repository.SchedulingRepository,
	files storage.FileStorage,
	loc *time.Location,
) ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleService{
		userRepo:       userRepo,
		intervalRepo:   intervalRepo,
		schedulingRepo: schedulingRepo,
		files:          files,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *scheduleService) Availability(
	ctx context.Context,
	username string,
	date time.Time,
) (*models.Availability, error) {
	empty := &models.Availability{PossibleTimes: []int{}, AvailableTimes: []int{}}

	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	now := s.now().In(s.loc)
	if dayStart.Before(startOfDay(now)) {
		return empty, nil
	}

	intervals, err := s.intervalRepo.ListTimeIntervals(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения интервалов: %w", err)
	}
	possible := possibleHours(intervals, dayStart.Weekday())
	if len(possible) == 0 {
		return empty, nil
	}

	booked, err := s.bookedHours(ctx, user.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	available := make([]int, 0, len(possible))
	for _, h := range possible {
		slot := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), h, 0, 0, 0, s.loc)
		if booked[dayStart.Day()][h] || !slot.After(now) {
			continue
		}
		available = append(available, h)
	}

	return &models.Availability{PossibleTimes: possible, AvailableTimes: available}, nil
}

func (s *scheduleService) BlockedDates(
	ctx context.Context,
	username string,
	year int,
	month time.Month,
) (*models.BlockedDates, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}

	intervals, err := s.intervalRepo.ListTimeIntervals(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения интервалов: %w", err)
	}

	result := &models.BlockedDates{BlockedWeekDays: []int{}, BlockedDates: []int{}}
	hoursByWeekDay := make(map[time.Weekday][]int, daysInWeek)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		hours := possibleHours(intervals, wd)
		if len(hours) == 0 {
			result.BlockedWeekDays = append(result.BlockedWeekDays, int(wd))
			continue
		}
		hoursByWeekDay[wd] = hours
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	booked, err := s.bookedHours(ctx, user.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		hours, ok := hoursByWeekDay[day.Weekday()]
		if !ok || len(booked[day.Day()]) == 0 {
			continue
		}
		if allBooked(hours, booked[day.Day()]) {
			result.BlockedDates = append(result.BlockedDates, day.Day())
		}
	}

	return result, nil
}

func (s *scheduleService) Schedule(
	ctx context.Context,
	username string,
	req models.CreateSchedulingRequest,
) (*models.Scheduling, error) {
	form := &forms.ConfirmSchedulingForm{Name: req.Name, Email: req.Email, Observations: req.Observations}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}

	date := req.Date.In(s.loc)
	if date.Minute() != 0 || date.Second() != 0 || date.Nanosecond() != 0 {
		return nil, ErrInvalidDate
	}
	if !date.After(s.now()) {
		return nil, ErrDateInPast
	}

	intervals, err := s.intervalRepo.ListTimeIntervals(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения интервалов: %w", err)
	}
	if !containsHour(possibleHours(intervals, date.Weekday()), date.Hour()) {
		return nil, ErrSlotUnavailable
	}

	scheduling := &models.Scheduling{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Date:         date.UTC(),
		Name:         form.Name,
		Email:        form.Email,
		Observations: form.Observations,
	}
	if err = s.schedulingRepo.CreateScheduling(ctx, scheduling); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("ошибка сохранения бронирования: %w", err)
	}

	log.Printf("[ScheduleService] Бронирование %s у '%s' на %s", scheduling.ID, user.Username,
		date.Format(time.RFC3339))
	s.storeInvite(ctx, user, scheduling)
	return scheduling, nil
}

func (s *scheduleService) Invite(ctx context.Context, schedulingID string) (io.ReadCloser, error) {
	if _, err := uuid.Parse(schedulingID); err != nil {
		return nil, ErrInviteNotFound
	}
	if s.files == nil {
		return nil, ErrInviteNotAvailable
	}

	rc, err := s.files.DownloadFile(ctx, inviteKey(schedulingID))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("ошибка получения приглашения: %w", err)
	}
	return rc, nil
}

// storeInvite загружает приглашение в хранилище. Ошибка загрузки не отменяет бронирование.
func (s *scheduleService) storeInvite(ctx context.Context, host *models.User, scheduling *models.Scheduling) {
	if s.files == nil {
		return
	}

	data := BuildInvite(host, scheduling, slotDuration, s.now())
	err := s.files.UploadFile(ctx, inviteKey(scheduling.ID), bytes.NewReader(data), int64(len(data)),
		inviteContentType)
	if err != nil {
		log.Printf("[ScheduleService] Не удалось сохранить приглашение %s: %v", scheduling.ID, err)
	}
}

func (s *scheduleService) getUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return user, nil
}

// bookedHours возвращает занятые часы в разбивке по дню месяца для [from, to).
func (s *scheduleService) bookedHours(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) (map[int]map[int]bool, error) {
	schedulings, err := s.schedulingRepo.ListSchedulingsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения бронирований: %w", err)
	}

	booked := make(map[int]map[int]bool)
	for _, sch := range schedulings {
		d := sch.Date.In(s.loc)
		if booked[d.Day()] == nil {
			booked[d.Day()] = make(map[int]bool)
		}
		booked[d.Day()][d.Hour()] = true
	}
	return booked, nil
}

// possibleHours возвращает отсортированные часы h, для которых start <= h*60 < end
// хотя бы в одном интервале этого дня недели.
func possibleHours(intervals []models.TimeInterval, weekDay time.Weekday) []int {
	seen := make(map[int]bool)
	hours := []int{}
	for _, in := range intervals {
		if in.WeekDay != int(weekDay) {
			continue
		}
		first := (in.StartTimeInMinutes + minutesInHour - 1) / minutesInHour
		for h := first; h*minutesInHour < in.EndTimeInMinutes; h++ {
			if !seen[h] {
				seen[h] = true
				hours = append(hours, h)
			}
		}
	}
	sort.Ints(hours)
	return hours
}

func allBooked(hours []int, booked map[int]bool) bool {
	for _, h := range hours {
		if !booked[h] {
			return false
		}
	}
	return true
}

func containsHour(hours []int, hour int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inviteKey(schedulingID string) string {
	return inviteKeyPrefix + schedulingID + ".ics"
}

package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/client/session"
	"github.com/maynagashev/ignitecall/models"
)

const (
	requestTimeout         = 15 * time.Second
	statusMessageTimeout   = 3 * time.Second
	defaultWorkdayStartMin = 8 * 60
	defaultWorkdayEndMin   = 18 * 60
)

// --- Сообщения результатов запросов ---

type userCreatedMsg struct {
	user  *models.User
	token string
}

type createUserErrorMsg struct{ err error }

type sessionSavedMsg struct{}

type sessionSaveErrorMsg struct{ err error }

type intervalsSavedMsg struct{}

type intervalsErrorMsg struct{ err error }

type profileLoadedMsg struct{ profile *models.PublicProfile }

type blockedDatesLoadedMsg struct {
	month   time.Time
	blocked *models.BlockedDates
}

type availabilityLoadedMsg struct {
	day          time.Time
	availability *models.Availability
}

// scheduleLoadErrorMsg - ошибка загрузки данных страницы бронирования.
type scheduleLoadErrorMsg struct{ err error }

type schedulingCreatedMsg struct{ scheduling *models.Scheduling }

type schedulingErrorMsg struct{ err error }

// dateTimeSelectedMsg - шаг календаря выбрал дату и время.
type dateTimeSelectedMsg struct{ at time.Time }

// schedulingCanceledMsg - шаг подтверждения отменен.
type schedulingCanceledMsg struct{}

// --- Команды ---

func (m *model) makeCreateUserCmd(name, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		slog.Info("Регистрация пользователя", "username", username)
		user, err := m.apiClient.CreateUser(ctx, name, username)
		if err != nil {
			return createUserErrorMsg{err: err}
		}
		return userCreatedMsg{user: user, token: m.apiClient.AuthToken()}
	}
}

func (m *model) makeSaveSessionCmd(username, token string) tea.Cmd {
	if m.sessionStore == nil || token == "" {
		return nil
	}
	store := m.sessionStore
	savedAt := m.now()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := store.Save(ctx, session.Session{Username: username, Token: token, SavedAt: savedAt})
		if err != nil {
			return sessionSaveErrorMsg{err: err}
		}
		return sessionSavedMsg{}
	}
}

func (m *model) makeSetIntervalsCmd(intervals []models.TimeInterval) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.apiClient.SetTimeIntervals(ctx, intervals); err != nil {
			return intervalsErrorMsg{err: err}
		}
		return intervalsSavedMsg{}
	}
}

func (m *model) makeLoadProfileCmd(username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := m.apiClient.GetProfile(ctx, username)
		if err != nil {
			return scheduleLoadErrorMsg{err: err}
		}
		return profileLoadedMsg{profile: profile}
	}
}

func (m *model) makeLoadBlockedDatesCmd(username string, month time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		blocked, err := m.apiClient.GetBlockedDates(ctx, username, month.Year(), month.Month())
		if err != nil {
			return scheduleLoadErrorMsg{err: err}
		}
		return blockedDatesLoadedMsg{month: month, blocked: blocked}
	}
}

func (m *model) makeLoadAvailabilityCmd(username string, day time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		availability, err := m.apiClient.GetAvailability(ctx, username, day)
		if err != nil {
			return scheduleLoadErrorMsg{err: err}
		}
		return availabilityLoadedMsg{day: day, availability: availability}
	}
}

func (m *model) makeScheduleCmd(username string, req models.CreateSchedulingRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		scheduling, err := m.apiClient.Schedule(ctx, username, req)
		if err != nil {
			return schedulingErrorMsg{err: err}
		}
		return schedulingCreatedMsg{scheduling: scheduling}
	}
}

// clearStatusCmd возвращает команду для очистки статуса seq через delay.
func clearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// defaultWorkingHours возвращает рабочие часы по умолчанию: пн-пт 08:00-18:00.
func defaultWorkingHours() []models.TimeInterval {
	intervals := make([]models.TimeInterval, 0, 5)
	for day := time.Monday; day <= time.Friday; day++ {
		intervals = append(intervals, models.TimeInterval{
			WeekDay:            int(day),
			StartTimeInMinutes: defaultWorkdayStartMin,
			EndTimeInMinutes:   defaultWorkdayEndMin,
		})
	}
	return intervals
}

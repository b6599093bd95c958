package tui

import (
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/client/api"
)

// showScheduleScreen открывает страницу бронирования пользователя username.
func (m *model) showScheduleScreen(username string) tea.Cmd {
	m.state = scheduleScreen
	m.scheduleUsername = username
	m.profile = nil
	m.selectedDateTime = nil

	today := m.today()
	m.calendar = calendarStep{
		month:  firstOfMonth(today),
		cursor: today,
	}
	return tea.Batch(
		m.makeLoadProfileCmd(username),
		m.makeLoadBlockedDatesCmd(username, m.calendar.month),
	)
}

// updateScheduleScreen передает сообщение активному шагу:
// без выбранного времени - календарю, иначе - подтверждению.
func (m *model) updateScheduleScreen(msg tea.Msg) tea.Cmd {
	if m.selectedDateTime == nil {
		return m.updateCalendarStep(msg)
	}
	return m.updateConfirmStep(msg)
}

// selectDateTime вызывается шагом календаря при выборе времени.
func (m *model) selectDateTime(at time.Time) tea.Cmd {
	m.selectedDateTime = &at
	m.confirm.inputs = initConfirmInputs()
	m.confirm.focused = confirmFieldName
	m.confirm.errors = nil
	m.confirm.isSubmitting = false
	return focusInput(m.confirm.inputs, m.confirm.focused)
}

// cancelDateTime вызывается шагом подтверждения при отмене.
func (m *model) cancelDateTime() {
	m.selectedDateTime = nil
}

func (m *model) handleScheduleLoadError(msg scheduleLoadErrorMsg) tea.Cmd {
	m.calendar.loading = false
	slog.Error("Ошибка загрузки данных бронирования", "username", m.scheduleUsername, "error", msg.err)
	if message, ok := api.ServerMessage(msg.err); ok {
		return m.setStatusMessage(message)
	}
	return m.setStatusMessage("Ошибка загрузки: " + msg.err.Error())
}

func (m *model) viewScheduleScreen() string {
	var b strings.Builder
	if m.profile != nil {
		b.WriteString(titleStyle.Render(m.profile.Name))
		b.WriteString("\n")
		if m.profile.Bio != nil && *m.profile.Bio != "" {
			b.WriteString(subtleStyle.Render(*m.profile.Bio))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(titleStyle.Render(m.scheduleUsername))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.selectedDateTime == nil {
		b.WriteString(m.viewCalendarStep())
	} else {
		b.WriteString(m.viewConfirmStep())
	}
	return b.String()
}

// today возвращает начало текущего дня в часовом поясе бронирований.
func (m *model) today() time.Time {
	now := m.now().In(m.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, m.loc)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

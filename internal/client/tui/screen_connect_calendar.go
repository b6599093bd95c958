package tui

import (
	"errors"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/client/api"
)

func (m *model) showConnectCalendarScreen() tea.Cmd {
	m.state = connectCalendarScreen
	m.intervalsSaved = false
	m.intervalsBusy = false
	return nil
}

// updateConnectCalendarScreen: первый Enter сохраняет рабочие часы,
// после успешного сохранения Enter открывает страницу бронирования пользователя.
func (m *model) updateConnectCalendarScreen(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case keyEsc:
		username := ""
		if m.registeredUser != nil {
			username = m.registeredUser.Username
		}
		return m.navigate(registerPath(username))
	case keyEnter:
		if m.intervalsSaved {
			if m.registeredUser == nil {
				return m.setStatusMessage("Сначала зарегистрируйтесь")
			}
			return m.navigate(schedulePath(m.registeredUser.Username))
		}
		if m.intervalsBusy {
			return nil
		}
		m.intervalsBusy = true
		return m.makeSetIntervalsCmd(defaultWorkingHours())
	}
	return nil
}

func (m *model) handleIntervalsSaved() tea.Cmd {
	m.intervalsBusy = false
	m.intervalsSaved = true
	return m.setStatusMessage("Рабочие часы сохранены")
}

func (m *model) handleIntervalsError(msg intervalsErrorMsg) tea.Cmd {
	m.intervalsBusy = false
	slog.Error("Ошибка сохранения интервалов", "error", msg.err)
	if errors.Is(msg.err, api.ErrAuthorization) {
		return m.setStatusMessage("Сессия не найдена, зарегистрируйтесь заново")
	}
	return m.setStatusMessage("Ошибка сохранения: " + msg.err.Error())
}

func (m *model) viewConnectCalendarScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Подключите свой календарь!"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Укажите, когда вы доступны для встреч."))
	b.WriteString("\n\n")
	b.WriteString(renderSteps(2, registerSteps))
	b.WriteString("\n\n")
	b.WriteString("Рабочие часы по умолчанию: пн-пт, 08:00-18:00\n\n")

	switch {
	case m.intervalsBusy:
		b.WriteString(subtleStyle.Render("Сохранение..."))
	case m.intervalsSaved:
		b.WriteString(successStyle.Render("Подключено ✓"))
		b.WriteString("\n\n[ Перейти к странице бронирования ]")
	default:
		b.WriteString("[ Применить рабочие часы ]")
	}
	b.WriteString("\n")
	return b.String()
}

package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Update обрабатывает входящие сообщения и обновляет модель.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return m, tea.Quit
		}
		if m.alertMessage != "" {
			return m, m.handleAlertKeys(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case clearStatusMsg:
		// Статус, установленный после запуска таймера, не трогаем
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	if cmd, handled := m.handleResultMsg(msg); handled {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case claimScreen:
		cmd = m.updateClaimScreen(msg)
	case registerScreen:
		cmd = m.updateRegisterScreen(msg)
	case connectCalendarScreen:
		cmd = m.updateConnectCalendarScreen(msg)
	case scheduleScreen:
		cmd = m.updateScheduleScreen(msg)
	}
	return m, cmd
}

// handleResultMsg обрабатывает результаты команд, не зависящие от текущего экрана.
func (m *model) handleResultMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case userCreatedMsg:
		return m.handleUserCreated(msg), true
	case createUserErrorMsg:
		return m.handleCreateUserError(msg), true
	case sessionSavedMsg:
		slog.Debug("Сессия сохранена")
		return nil, true
	case sessionSaveErrorMsg:
		slog.Error("Ошибка сохранения сессии", "error", msg.err)
		return m.setStatusMessage("Не удалось сохранить сессию"), true
	case intervalsSavedMsg:
		return m.handleIntervalsSaved(), true
	case intervalsErrorMsg:
		return m.handleIntervalsError(msg), true
	case profileLoadedMsg:
		m.profile = msg.profile
		return nil, true
	case blockedDatesLoadedMsg:
		return m.handleBlockedDatesLoaded(msg), true
	case availabilityLoadedMsg:
		return m.handleAvailabilityLoaded(msg), true
	case scheduleLoadErrorMsg:
		return m.handleScheduleLoadError(msg), true
	case dateTimeSelectedMsg:
		return m.selectDateTime(msg.at), true
	case schedulingCanceledMsg:
		m.cancelDateTime()
		return nil, true
	case schedulingCreatedMsg:
		return m.handleSchedulingCreated(msg), true
	case schedulingErrorMsg:
		return m.handleSchedulingError(msg), true
	}
	return nil, false
}

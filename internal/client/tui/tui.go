// Package tui реализует терминальный интерфейс клиента Ignite Call.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/internal/client/session"
	"github.com/maynagashev/ignitecall/models"
)

// Options - параметры запуска TUI.
type Options struct {
	ServerURL   string
	StartPath   string         // Начальный маршрут, по умолчанию "/"
	Username    string         // Если задан, открывается страница бронирования этого пользователя
	Location    *time.Location // Часовой пояс бронирований
	SessionPath string         // Файл сессии; пустая строка - без сохранения
}

// Init инициализирует модель.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialCmd)
}

// setStatusMessage устанавливает статус и возвращает команду его очистки.
func (m *model) setStatusMessage(msg string) tea.Cmd {
	m.status = msg
	m.statusSeq++
	return clearStatusCmd(m.statusSeq, statusMessageTimeout)
}

// View отрисовывает текущий экран.
func (m *model) View() string {
	var b strings.Builder

	if m.alertMessage != "" {
		b.WriteString(m.viewAlert())
		b.WriteString("\n\n")
	}

	switch m.state {
	case claimScreen:
		b.WriteString(m.viewClaimScreen())
	case registerScreen:
		b.WriteString(m.viewRegisterScreen())
	case connectCalendarScreen:
		b.WriteString(m.viewConnectCalendarScreen())
	case scheduleScreen:
		b.WriteString(m.viewScheduleScreen())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(m.status))
	}
	if help, ok := m.helpTextMap[m.state]; ok {
		b.WriteString("\n\n")
		b.WriteString(subtleStyle.Render(help))
	}

	return m.docStyle.Render(b.String())
}

// Start запускает TUI.
func Start(opts Options) error {
	var store *session.Store
	if opts.SessionPath != "" {
		store = session.NewStore(opts.SessionPath)
	}

	m := initModel(api.NewHTTPClient(opts.ServerURL), store, opts.Location)
	m.restoreSession()

	startPath := opts.StartPath
	if opts.Username != "" {
		startPath = schedulePath(opts.Username)
	}
	if startPath == "" {
		startPath = routeClaim
	}
	m.initialCmd = m.navigate(startPath)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}
	return nil
}

// restoreSession восстанавливает токен сессии из файла, если он сохранен.
func (m *model) restoreSession() {
	if m.sessionStore == nil {
		return
	}
	sess, err := m.sessionStore.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			slog.Error("Ошибка загрузки сессии", "path", m.sessionStore.Path(), "error", err)
		}
		return
	}
	m.apiClient.SetAuthToken(sess.Token)
	m.registeredUser = &models.User{Username: sess.Username}
	slog.Info("Сессия восстановлена", "username", sess.Username)
}

package tui

import (
	"log/slog"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Маршруты приложения.
const (
	routeClaim           = "/"
	routeRegister        = "/register"
	routeConnectCalendar = "/register/connect-calendar"
	routeSchedulePrefix  = "/schedule/"
)

// registerPath возвращает маршрут регистрации с предзаполненным именем.
func registerPath(username string) string {
	return routeRegister + "?username=" + url.QueryEscape(username)
}

// schedulePath возвращает маршрут страницы бронирования пользователя.
func schedulePath(username string) string {
	return routeSchedulePrefix + url.PathEscape(username)
}

// navigate переключает экран по маршруту вида /register?username=x.
func (m *model) navigate(path string) tea.Cmd {
	u, err := url.Parse(path)
	if err != nil {
		slog.Error("Некорректный маршрут", "path", path, "error", err)
		return m.setStatusMessage("Некорректный маршрут: " + path)
	}

	slog.Debug("Переход", "path", path)

	switch {
	case u.Path == "" || u.Path == routeClaim:
		return m.showClaimScreen()
	case u.Path == routeRegister:
		return m.showRegisterScreen(u.Query().Get("username"))
	case u.Path == routeConnectCalendar:
		return m.showConnectCalendarScreen()
	case strings.HasPrefix(u.Path, routeSchedulePrefix):
		username := strings.Trim(strings.TrimPrefix(u.Path, routeSchedulePrefix), "/")
		if username == "" {
			return m.setStatusMessage("Не указан пользователь для бронирования")
		}
		return m.showScheduleScreen(username)
	default:
		return m.setStatusMessage("Неизвестный маршрут: " + u.Path)
	}
}

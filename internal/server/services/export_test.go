package services

import "time"

// SetScheduleClock подменяет часы сервиса бронирований в тестах.
func SetScheduleClock(svc ScheduleService, now func() time.Time) {
	svc.(*scheduleService).now = now
}

// SetSessionClock подменяет часы менеджера сессий в тестах.
func SetSessionClock(m *SessionManager, now func() time.Time) {
	m.now = now
}

package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const daysInWeek = 7

//nolint:gochecknoglobals // Названия месяцев неизменны
var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

//nolint:gochecknoglobals // Названия дней недели неизменны
var weekDayNames = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// updateCalendarStep обрабатывает сообщения шага выбора даты и времени.
func (m *model) updateCalendarStep(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.calendar.pickingHour {
		return m.handleHourKeys(keyMsg)
	}
	return m.handleDayKeys(keyMsg)
}

func (m *model) handleDayKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEsc:
		return m.navigate(routeClaim)
	case keyLeft:
		return m.moveCursor(m.calendar.cursor.AddDate(0, 0, -1))
	case keyRight:
		return m.moveCursor(m.calendar.cursor.AddDate(0, 0, 1))
	case keyUp:
		return m.moveCursor(m.calendar.cursor.AddDate(0, 0, -daysInWeek))
	case keyDown:
		return m.moveCursor(m.calendar.cursor.AddDate(0, 0, daysInWeek))
	case keyPrevMon:
		return m.moveCursor(m.calendar.month.AddDate(0, -1, 0))
	case keyNextMon:
		return m.moveCursor(m.calendar.month.AddDate(0, 1, 0))
	case keyEnter:
		return m.chooseDay()
	}
	return nil
}

// moveCursor переводит курсор на день и при смене месяца загружает его недоступные дни.
func (m *model) moveCursor(day time.Time) tea.Cmd {
	m.calendar.cursor = day
	m.calendar.availability = nil

	month := firstOfMonth(day)
	if month.Equal(m.calendar.month) {
		return nil
	}
	m.calendar.month = month
	m.calendar.blocked = nil
	return m.makeLoadBlockedDatesCmd(m.scheduleUsername, month)
}

// chooseDay загружает доступные часы дня под курсором.
func (m *model) chooseDay() tea.Cmd {
	day := m.calendar.cursor
	if m.isDayDisabled(day) {
		return m.setStatusMessage("Этот день недоступен")
	}
	m.calendar.loading = true
	return m.makeLoadAvailabilityCmd(m.scheduleUsername, day)
}

func (m *model) handleHourKeys(msg tea.KeyMsg) tea.Cmd {
	available := m.calendar.availability.AvailableTimes
	switch msg.String() {
	case keyEsc:
		m.calendar.pickingHour = false
	case keyUp, keyLeft:
		m.calendar.hourCursor = prevField(m.calendar.hourCursor, len(available))
	case keyDown, keyRight:
		m.calendar.hourCursor = nextField(m.calendar.hourCursor, len(available))
	case keyEnter:
		hour := available[m.calendar.hourCursor]
		day := m.calendar.day
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, m.loc)
		m.calendar.pickingHour = false
		return func() tea.Msg { return dateTimeSelectedMsg{at: at} }
	}
	return nil
}

func (m *model) handleBlockedDatesLoaded(msg blockedDatesLoadedMsg) tea.Cmd {
	// Ответ для месяца, с которого пользователь уже ушел
	if !msg.month.Equal(m.calendar.month) {
		return nil
	}
	m.calendar.blocked = msg.blocked
	return nil
}

func (m *model) handleAvailabilityLoaded(msg availabilityLoadedMsg) tea.Cmd {
	m.calendar.loading = false
	if !msg.day.Equal(m.calendar.cursor) {
		return nil
	}
	m.calendar.day = msg.day
	m.calendar.availability = msg.availability
	m.calendar.hourCursor = 0
	if len(msg.availability.AvailableTimes) == 0 {
		m.calendar.pickingHour = false
		return m.setStatusMessage("В этот день нет свободного времени")
	}
	m.calendar.pickingHour = true
	return nil
}

// isDayDisabled сообщает, что день нельзя выбрать: он в прошлом,
// приходится на день недели без интервалов или полностью занят.
func (m *model) isDayDisabled(day time.Time) bool {
	if day.Before(m.today()) {
		return true
	}
	blocked := m.calendar.blocked
	if blocked == nil || !firstOfMonth(day).Equal(m.calendar.month) {
		return false
	}
	return slices.Contains(blocked.BlockedWeekDays, int(day.Weekday())) ||
		slices.Contains(blocked.BlockedDates, day.Day())
}

func (m *model) viewCalendarStep() string {
	var b strings.Builder
	month := m.calendar.month
	fmt.Fprintf(&b, "%s %d\n\n", monthNames[month.Month()-1], month.Year())

	b.WriteString(subtleStyle.Render(strings.Join(weekDayNames[:], " ")))
	b.WriteString("\n")

	offset := int(month.Weekday())
	b.WriteString(strings.Repeat("   ", offset))
	for day := month; day.Month() == month.Month(); day = day.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", day.Day())
		switch {
		case day.Equal(m.calendar.cursor):
			cell = cursorStyle.Render(cell)
		case m.isDayDisabled(day):
			cell = disabledStyle.Render(cell)
		}
		b.WriteString(cell)
		if (offset+day.Day())%daysInWeek == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.calendar.loading:
		b.WriteString(subtleStyle.Render("Загрузка..."))
		b.WriteString("\n")
	case m.calendar.availability != nil:
		b.WriteString(m.viewHours())
	}
	return b.String()
}

// viewHours показывает часы дня; занятые и прошедшие часы зачеркнуты.
func (m *model) viewHours() string {
	var b strings.Builder
	availability := m.calendar.availability
	fmt.Fprintf(&b, "%s\n", m.calendar.day.Format("02.01.2006"))

	selected := -1
	if m.calendar.pickingHour && len(availability.AvailableTimes) > 0 {
		selected = availability.AvailableTimes[m.calendar.hourCursor]
	}
	for _, hour := range availability.PossibleTimes {
		label := fmt.Sprintf("%02d:00", hour)
		switch {
		case hour == selected:
			label = cursorStyle.Render(label)
		case !slices.Contains(availability.AvailableTimes, hour):
			label = disabledStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

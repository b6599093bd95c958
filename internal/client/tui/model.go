package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/internal/client/session"
	"github.com/maynagashev/ignitecall/internal/forms"
	"github.com/maynagashev/ignitecall/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	claimScreen           screenState = iota // Резервирование имени пользователя
	registerScreen                           // Регистрация
	connectCalendarScreen                    // Подключение календаря
	scheduleScreen                           // Бронирование встречи
)

func (s screenState) String() string {
	switch s {
	case claimScreen:
		return "claim"
	case registerScreen:
		return "register"
	case connectCalendarScreen:
		return "connect-calendar"
	case scheduleScreen:
		return "schedule"
	default:
		return "unknown"
	}
}

// Константы для TUI.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keyPrevMon  = "["
	keyNextMon  = "]"
	keyCtrlC    = "ctrl+c"

	registerSteps = 4 // Количество шагов регистрации
)

// Поля формы регистрации.
const (
	registerFieldUsername = iota
	registerFieldName
	numRegisterFields
)

// Поля формы подтверждения бронирования.
const (
	confirmFieldName = iota
	confirmFieldEmail
	confirmFieldObservations
	numConfirmFields
)

// calendarStep хранит состояние шага выбора даты и времени.
type calendarStep struct {
	month        time.Time            // Первое число отображаемого месяца
	cursor       time.Time            // День под курсором
	blocked      *models.BlockedDates // Недоступные дни отображаемого месяца
	availability *models.Availability // Часы выбранного дня
	day          time.Time            // День, для которого загружены часы
	hourCursor   int                  // Индекс в availability.AvailableTimes
	pickingHour  bool                 // Фокус на списке часов
	loading      bool
}

// confirmStep хранит состояние шага подтверждения бронирования.
type confirmStep struct {
	inputs       []textinput.Model
	focused      int
	errors       forms.FieldErrors
	isSubmitting bool
}

// model представляет состояние TUI приложения.
type model struct {
	state        screenState
	apiClient    api.Client
	sessionStore *session.Store // nil, если сессию не нужно сохранять
	loc          *time.Location // Часовой пояс дат бронирования
	now          func() time.Time
	initialCmd   tea.Cmd // Команда начального маршрута

	// Резервирование имени
	claimInput     textinput.Model
	claimSubmitted bool
	claimErrors    forms.FieldErrors

	// Регистрация
	registerInputs    []textinput.Model
	registerFocused   int
	registerErrors    forms.FieldErrors
	registerSubmitted bool
	isSubmitting      bool
	registeredUser    *models.User

	// Подключение календаря
	intervalsSaved bool
	intervalsBusy  bool

	// Бронирование
	scheduleUsername string
	profile          *models.PublicProfile
	selectedDateTime *time.Time // nil - шаг календаря, иначе шаг подтверждения
	calendar         calendarStep
	confirm          confirmStep

	alertMessage string // Блокирующее сообщение, закрывается по Enter
	status       string // Статус внизу экрана
	statusSeq    int    // Номер текущего статуса, устаревшие таймеры очистки игнорируются
	width        int
	helpTextMap  map[screenState]string
	docStyle     lipgloss.Style
}

// Сообщение для очистки статуса с номером seq.
type clearStatusMsg struct{ seq int }

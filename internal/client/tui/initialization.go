package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/internal/client/session"
)

const (
	inputWidth         = 40
	observationsLength = 500
)

// initModel создает начальную модель TUI.
func initModel(client api.Client, store *session.Store, loc *time.Location) *model {
	if loc == nil {
		loc = time.UTC
	}

	m := &model{
		state:        claimScreen,
		apiClient:    client,
		sessionStore: store,
		loc:          loc,
		now:          time.Now,
		claimInput:   initClaimInput(),
		docStyle:     lipgloss.NewStyle().Margin(1, 2),
	}
	m.registerInputs = initRegisterInputs()
	m.confirm.inputs = initConfirmInputs()
	m.helpTextMap = initHelpTextMap()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = inputWidth
	return ti
}

func initClaimInput() textinput.Model {
	ti := newInput("ваше-имя")
	ti.Prompt = "ignite.com/ "
	ti.Focus()
	return ti
}

func initRegisterInputs() []textinput.Model {
	inputs := make([]textinput.Model, numRegisterFields)
	inputs[registerFieldUsername] = newInput("Имя пользователя")
	inputs[registerFieldName] = newInput("Ваше имя")
	inputs[registerFieldUsername].Focus()
	return inputs
}

func initConfirmInputs() []textinput.Model {
	inputs := make([]textinput.Model, numConfirmFields)
	inputs[confirmFieldName] = newInput("Ваше имя")
	inputs[confirmFieldEmail] = newInput("email@example.com")
	inputs[confirmFieldObservations] = newInput("Комментарий (необязательно)")
	inputs[confirmFieldObservations].CharLimit = observationsLength
	inputs[confirmFieldName].Focus()
	return inputs
}

func initHelpTextMap() map[screenState]string {
	return map[screenState]string{
		claimScreen:           "Enter: Продолжить | Ctrl+C: Выход",
		registerScreen:        "Tab/Shift+Tab: Навигация | Enter: Далее | Esc: Назад | Ctrl+C: Выход",
		connectCalendarScreen: "Enter: Продолжить | Esc: Назад | Ctrl+C: Выход",
		scheduleScreen:        "Стрелки: Выбор | [ ]: Месяц | Enter: Выбрать | Esc: Назад | Ctrl+C: Выход",
	}
}

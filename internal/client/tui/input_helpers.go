package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// focusInput переводит фокус на поле idx и снимает его с остальных полей.
func focusInput(inputs []textinput.Model, idx int) tea.Cmd {
	var cmd tea.Cmd
	for i := range inputs {
		if i == idx {
			cmd = inputs[i].Focus()
			continue
		}
		inputs[i].Blur()
	}
	return cmd
}

// nextField возвращает индекс следующего поля с переходом по кругу.
func nextField(current, total int) int {
	return (current + 1) % total
}

// prevField возвращает индекс предыдущего поля с переходом по кругу.
func prevField(current, total int) int {
	return (current - 1 + total) % total
}

// updateFocusedInput передает сообщение только полю с фокусом.
func updateFocusedInput(inputs []textinput.Model, focused int, msg tea.Msg) tea.Cmd {
	if focused < 0 || focused >= len(inputs) {
		return nil
	}
	var cmd tea.Cmd
	inputs[focused], cmd = inputs[focused].Update(msg)
	return cmd
}

// handleFormFocusKeys обрабатывает переключение фокуса между полями формы.
// Возвращает новый индекс поля и true, если клавиша относится к навигации.
func handleFormFocusKeys(inputs []textinput.Model, focused int, key string) (int, tea.Cmd, bool) {
	switch key {
	case keyTab, keyDown:
		focused = nextField(focused, len(inputs))
	case keyShiftTab, keyUp:
		focused = prevField(focused, len(inputs))
	default:
		return focused, nil, false
	}
	return focused, focusInput(inputs, focused), true
}

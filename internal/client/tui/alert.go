package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// showAlert открывает блокирующее сообщение. Пока оно открыто,
// экран под ним не получает нажатия клавиш.
func (m *model) showAlert(message string) {
	m.alertMessage = message
}

// handleAlertKeys закрывает сообщение по Enter или Esc, остальные клавиши игнорируются.
func (m *model) handleAlertKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.alertMessage = ""
	}
	return nil
}

func (m *model) viewAlert() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render(m.alertMessage))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("Enter: OK"))
	return alertStyle.Render(b.String())
}

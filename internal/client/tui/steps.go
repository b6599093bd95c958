package tui

import (
	"fmt"
	"strings"
)

// renderSteps отрисовывает индикатор шага регистрации.
func renderSteps(current, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Шаг %d из %d ", current, total)
	for i := 1; i <= total; i++ {
		if i <= current {
			b.WriteString(activeStep.Render("━━"))
		} else {
			b.WriteString(inactiveStep.Render("━━"))
		}
		if i < total {
			b.WriteString(" ")
		}
	}
	return b.String()
}

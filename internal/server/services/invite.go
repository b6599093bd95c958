package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maynagashev/ignitecall/models"
)

const (
	icsTimeLayout    = "20060102T150405Z"
	icsMaxLineOctets = 75
)

// BuildInvite формирует приглашение в формате iCalendar (RFC 5545) для бронирования.
func BuildInvite(host *models.User, s *models.Scheduling, duration time.Duration, stamp time.Time) []byte {
	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString(foldLine(fmt.Sprintf(format, args...)))
		b.WriteString("\r\n")
	}

	start := s.Date.UTC()
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//Ignite Call//RU")
	line("METHOD:REQUEST")
	line("BEGIN:VEVENT")
	line("UID:%s@ignitecall", s.ID)
	line("DTSTAMP:%s", stamp.UTC().Format(icsTimeLayout))
	line("DTSTART:%s", start.Format(icsTimeLayout))
	line("DTEND:%s", start.Add(duration).Format(icsTimeLayout))
	line("SUMMARY:%s", escapeICSText("Встреча с "+host.Name))
	if s.Observations != "" {
		line("DESCRIPTION:%s", escapeICSText(s.Observations))
	}
	line("ORGANIZER;CN=%s:mailto:%s@ignitecall.local", escapeICSParam(host.Name), host.Username)
	line("ATTENDEE;CN=%s;RSVP=TRUE:mailto:%s", escapeICSParam(s.Name), s.Email)
	line("END:VEVENT")
	line("END:VCALENDAR")
	return []byte(b.String())
}

var icsTextReplacer = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escapeICSText(s string) string {
	return icsTextReplacer.Replace(s)
}

// escapeICSParam убирает символы, недопустимые в значении параметра без кавычек.
func escapeICSParam(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', ';', ':', ',', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

// foldLine разбивает строку содержимого на части не длиннее 75 октетов.
// Каждое продолжение начинается с CRLF и пробела, многобайтные символы не разрываются.
func foldLine(line string) string {
	if len(line) <= icsMaxLineOctets {
		return line
	}

	var b strings.Builder
	limit := icsMaxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// Пробел в начале продолжения входит в лимит
		limit = icsMaxLineOctets - 1
	}
	b.WriteString(line)
	return b.String()
}

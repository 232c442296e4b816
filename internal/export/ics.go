package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/classhub/backend/internal/models"
)

// icsDate is the all-day DATE layout ICS expects.
const icsDate = "20060102"

// WriteCalendarICS writes an iCalendar feed of all-day events. Events whose
// dates fail to parse are skipped; a calendar feed with a hole beats a
// download that fails outright.
func WriteCalendarICS(w io.Writer, events []models.CalendarEvent) error {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//classhub//school calendar//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	for _, ev := range events {
		start, err := time.Parse("2006-01-02", ev.StartDate)
		if err != nil {
			continue
		}
		end := start
		if ev.EndDate != "" {
			if parsed, err := time.Parse("2006-01-02", ev.EndDate); err == nil {
				end = parsed
			}
		}
		// DTEND is exclusive for all-day events.
		end = end.AddDate(0, 0, 1)

		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s@classhub\r\n", ev.ID)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", start.Format(icsDate))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", end.Format(icsDate))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeICS(ev.Title))
		fmt.Fprintf(&b, "CATEGORIES:%s\r\n", escapeICS(ev.Category))
		if ev.Description != "" {
			fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeICS(ev.Description))
		}
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// escapeICS escapes the characters RFC 5545 treats specially in text values.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
		"\r", "",
	)
	return r.Replace(s)
}

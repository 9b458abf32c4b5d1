// Package export renders the projected event set as an iCalendar feed so
// the health calendar can be subscribed to from any regular calendar app.
package export

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/astrelina/helia/internal/models"
)

const calendarName = "Helia health calendar"

// BuildICS serializes events into a VCALENDAR document, one VEVENT per
// projected event. Analyses become all-day entries; timed events get a
// default one-hour block since records carry no duration of their own.
func BuildICS(events []models.Event, now time.Time) string {
	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId("-//helia//calendar//EN")
	calendar.SetName(calendarName)

	for _, event := range events {
		vevent := calendar.AddEvent(event.ID + "@helia")
		vevent.SetDtStampTime(now)
		vevent.SetSummary(event.Title)
		if event.AllDay {
			vevent.SetAllDayStartAt(event.Start)
			vevent.SetAllDayEndAt(event.Start.AddDate(0, 0, 1))
		} else {
			vevent.SetStartAt(event.Start)
			vevent.SetEndAt(event.Start.Add(time.Hour))
		}
		vevent.SetProperty(ics.ComponentProperty("X-HELIA-CATEGORY"), event.Category)
	}

	return calendar.Serialize()
}

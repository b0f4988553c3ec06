package notify

import (
	"fmt"
	"strings"
)

// Email template ids used by the lifecycle events.
const (
	TemplateAppointmentCreated   = "appointment_created"
	TemplateAppointmentCancelled = "appointment_cancelled"
	TemplateAppointmentCompleted = "appointment_completed"
	TemplateAppointmentReminder  = "appointment_reminder"
)

// renderTemplate produces the HTML body for an email. Templates are
// deliberately tiny; the interesting content is in body and data.
func renderTemplate(template, body string, data map[string]string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<p>%s</p>", body))

	if len(data) > 0 {
		b.WriteString("<ul>")
		for _, key := range []string{"salon", "barber", "date", "time", "position", "wait"} {
			if v, ok := data[key]; ok {
				b.WriteString(fmt.Sprintf("<li><b>%s:</b> %s</li>", key, v))
			}
		}
		b.WriteString("</ul>")
	}

	if template != "" {
		b.WriteString(fmt.Sprintf("<!-- template: %s -->", template))
	}
	b.WriteString("</body></html>")
	return b.String()
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"problem-analytics-service/internal/model"
)

var severityNames = []string{"Not classified", "Information", "Warning", "Average", "High", "Disaster"}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderTimeline prints the recent events of a trigger and their hour and weekday counts.
func RenderTimeline(w io.Writer, t model.Timeline) error {
	if _, err := fmt.Fprintf(w, "\nRecent events: %s\n", t.Trigger); err != nil {
		return err
	}
	if len(t.Events) == 0 {
		_, err := fmt.Fprintln(w, "  none")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSTATUS\tSEVERITY\tACK\tNAME")
	for _, e := range t.Events {
		status := "RESOLVED"
		if e.Kind == model.KindAlert {
			status = "PROBLEM"
		}
		ack := "No"
		if e.Acknowledged {
			ack = "Yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatClock(e.Clock), status, severityName(e.Severity), ack, singleLine(e.Name))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var hours []string
	for h, n := range t.Patterns.Hourly {
		if n > 0 {
			hours = append(hours, fmt.Sprintf("%02dh:%d", h, n))
		}
	}
	days := make([]string, 0, len(weekdayNames))
	for d, n := range t.Patterns.Weekday {
		days = append(days, fmt.Sprintf("%s:%d", weekdayNames[d], n))
	}
	_, err := fmt.Fprintf(w, "\nBy hour:    %s\nBy weekday: %s\n", strings.Join(hours, " "), strings.Join(days, " "))
	return err
}

func severityName(severity int) string {
	if severity < 0 || severity >= len(severityNames) {
		return fmt.Sprintf("%d", severity)
	}
	return severityNames[severity]
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"problem-analytics-service/internal/analytics"
	"problem-analytics-service/internal/model"
)

const ackTimeLayout = "2006-01-02 15:04"

var arrows = map[string]string{
	model.TrendUp:   "↑",
	model.TrendDown: "↓",
	model.TrendFlat: "=",
}

// Render prints the month comparison table followed by both acknowledgement feeds.
func Render(w io.Writer, c model.Comparison) error {
	if _, err := fmt.Fprintf(w, "Host:    %s\nTrigger: %s\n\n", c.Host, c.Trigger); err != nil {
		return err
	}

	cur, prev := c.CurrentMonth.Stats, c.PreviousMonth.Stats
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "METRIC\t%s\t%s\tTREND\n", c.CurrentMonth.Period, c.PreviousMonth.Period)
	fmt.Fprintf(tw, "Problems\t%d\t%d\t%s\n", cur.TotalProblems, prev.TotalProblems, trendCell(c.Trends.TotalProblems))
	fmt.Fprintf(tw, "Avg resolution\t%s\t%s\t%s\n",
		analytics.FormatResolutionTime(cur.AvgResolutionTime),
		analytics.FormatResolutionTime(prev.AvgResolutionTime),
		trendCell(c.Trends.AvgResolutionTime))
	fmt.Fprintf(tw, "Acknowledged\t%d\t%d\t%s\n", cur.AckEvents, prev.AckEvents, trendCell(c.Trends.AckEvents))
	fmt.Fprintf(tw, "Ack rate\t%.2f%%\t%.2f%%\t%s\n", cur.AckPercentage, prev.AckPercentage, trendCell(c.Trends.AckPercentage))
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nProblem count change: %.1f%%\n", c.ChangePercentage); err != nil {
		return err
	}

	if err := renderAcks(w, c.CurrentMonth); err != nil {
		return err
	}
	return renderAcks(w, c.PreviousMonth)
}

func trendCell(t model.Trend) string {
	if t.Direction == model.TrendFlat || t.Direction == "" {
		return arrows[model.TrendFlat]
	}
	cell := arrows[t.Direction] + " " + t.Label
	if t.Assessment != "" {
		cell += " (" + t.Assessment + ")"
	}
	return cell
}

func renderAcks(w io.Writer, month model.MonthReport) error {
	if _, err := fmt.Fprintf(w, "\nAcknowledgements %s\n", month.Period); err != nil {
		return err
	}
	if len(month.Stats.Acks) == 0 {
		_, err := fmt.Fprintln(w, "  none")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "PROBLEM\tACKNOWLEDGED\tUSER\tMESSAGE")
	for _, ack := range month.Stats.Acks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			formatClock(ack.EventTime), formatClock(ack.AckTime), ack.Username, singleLine(ack.Message))
	}
	return tw.Flush()
}

func formatClock(clock int64) string {
	if clock == 0 {
		return "-"
	}
	return time.Unix(clock, 0).Format(ackTimeLayout)
}

// singleLine keeps multi-line ack messages from breaking the table.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

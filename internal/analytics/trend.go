package analytics

import (
	"fmt"
	"math"

	"problem-analytics-service/internal/model"
)

// CompareMetric describes the move from previous to current. lowerIsBetter flips the
// assessment for metrics such as problem count or resolution time.
func CompareMetric(current, previous float64, lowerIsBetter bool) model.Trend {
	diff := current - previous
	if diff == 0 {
		return model.Trend{Direction: model.TrendFlat}
	}

	trend := model.Trend{Direction: model.TrendUp}
	increased := diff > 0
	if !increased {
		trend.Direction = model.TrendDown
	}

	if increased != lowerIsBetter {
		trend.Assessment = model.AssessmentBetter
	} else {
		trend.Assessment = model.AssessmentWorse
	}

	switch {
	case previous == 0:
		trend.Label = "NEW"
	case current == 0:
		trend.Label = "CLEARED"
	default:
		trend.Label = fmt.Sprintf("%.1f%%", math.Abs(diff/math.Abs(previous)*100))
	}

	return trend
}

// BuildTrends computes the indicator of every comparison row.
func BuildTrends(current, previous model.MonthSummary) model.Trends {
	return model.Trends{
		TotalProblems:     CompareMetric(float64(current.TotalProblems), float64(previous.TotalProblems), true),
		AvgResolutionTime: CompareMetric(current.AvgResolutionTime, previous.AvgResolutionTime, true),
		AckEvents:         CompareMetric(float64(current.AckEvents), float64(previous.AckEvents), false),
		AckPercentage:     CompareMetric(current.AckPercentage, previous.AckPercentage, false),
	}
}

// ChangePercentage is the month over month change of the problem count, to one decimal.
func ChangePercentage(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}

// FormatResolutionTime renders fractional hours as "2h 30m".
func FormatResolutionTime(hours float64) string {
	if hours == 0 {
		return "0m"
	}

	sign := ""
	if hours < 0 {
		sign = "-"
		hours = -hours
	}

	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}

	switch {
	case h == 0:
		return fmt.Sprintf("%s%dm", sign, m)
	case m == 0:
		return fmt.Sprintf("%s%dh", sign, h)
	default:
		return fmt.Sprintf("%s%dh %dm", sign, h, m)
	}
}

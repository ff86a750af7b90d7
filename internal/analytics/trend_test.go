package analytics

import (
	"testing"

	"problem-analytics-service/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCompareMetric(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		previous      float64
		lowerIsBetter bool
		want          model.Trend
	}{
		{
			name:    "unchanged",
			current: 4, previous: 4,
			want: model.Trend{Direction: model.TrendFlat},
		},
		{
			name:    "more problems is worse",
			current: 6, previous: 4, lowerIsBetter: true,
			want: model.Trend{Direction: model.TrendUp, Label: "50.0%", Assessment: model.AssessmentWorse},
		},
		{
			name:    "fewer problems is better",
			current: 3, previous: 4, lowerIsBetter: true,
			want: model.Trend{Direction: model.TrendDown, Label: "25.0%", Assessment: model.AssessmentBetter},
		},
		{
			name:    "more acknowledgements is better",
			current: 3, previous: 2,
			want: model.Trend{Direction: model.TrendUp, Label: "50.0%", Assessment: model.AssessmentBetter},
		},
		{
			name:    "new from zero",
			current: 2, previous: 0, lowerIsBetter: true,
			want: model.Trend{Direction: model.TrendUp, Label: "NEW", Assessment: model.AssessmentWorse},
		},
		{
			name:    "cleared to zero",
			current: 0, previous: 5, lowerIsBetter: true,
			want: model.Trend{Direction: model.TrendDown, Label: "CLEARED", Assessment: model.AssessmentBetter},
		},
		{
			name:    "negative average from zero is still new",
			current: -0.5, previous: 0, lowerIsBetter: true,
			want: model.Trend{Direction: model.TrendDown, Label: "NEW", Assessment: model.AssessmentBetter},
		},
		{
			name:    "negative average back to zero is cleared",
			current: 0, previous: -0.5, lowerIsBetter: true,
			want: model.Trend{Direction: model.TrendUp, Label: "CLEARED", Assessment: model.AssessmentWorse},
		},
		{
			name:    "negative previous uses absolute base",
			current: -1, previous: -2,
			want: model.Trend{Direction: model.TrendUp, Label: "50.0%", Assessment: model.AssessmentBetter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CompareMetric(tt.current, tt.previous, tt.lowerIsBetter))
		})
	}
}

func TestBuildTrends(t *testing.T) {
	current := model.MonthSummary{TotalProblems: 2, AvgResolutionTime: 1.5, AckEvents: 1, AckPercentage: 50}
	previous := model.MonthSummary{TotalProblems: 4, AvgResolutionTime: 1.5, AckEvents: 0, AckPercentage: 0}

	trends := BuildTrends(current, previous)

	require.Equal(t, model.AssessmentBetter, trends.TotalProblems.Assessment)
	require.Equal(t, model.TrendFlat, trends.AvgResolutionTime.Direction)
	require.Equal(t, "NEW", trends.AckEvents.Label)
	require.Equal(t, model.AssessmentBetter, trends.AckPercentage.Assessment)
}

func TestChangePercentage(t *testing.T) {
	require.Equal(t, 0.0, ChangePercentage(0, 0))
	require.Equal(t, 100.0, ChangePercentage(3, 0))
	require.Equal(t, -50.0, ChangePercentage(2, 4))
	require.Equal(t, 33.3, ChangePercentage(4, 3))
}

func TestFormatResolutionTime(t *testing.T) {
	tests := map[float64]string{
		0:       "0m",
		0.75:    "45m",
		2:       "2h",
		2.5:     "2h 30m",
		1.999:   "2h",
		-0.5:    "-30m",
		26.0833: "26h 5m",
	}

	for hours, want := range tests {
		require.Equal(t, want, FormatResolutionTime(hours), "hours=%v", hours)
	}
}

func TestBuildTrends_NegativeAverageAgainstEmptyMonth(t *testing.T) {
	current := Summarize([]model.RawEvent{
		{ID: "2", Clock: 8200, Kind: model.KindResolution},
		{ID: "1", Clock: 10000, ResolvingEventID: "2", Kind: model.KindAlert},
	}, nil)
	require.Equal(t, -0.5, current.AvgResolutionTime)

	trends := BuildTrends(current, Summarize(nil, nil))

	require.Equal(t, model.Trend{Direction: model.TrendDown, Label: "NEW", Assessment: model.AssessmentBetter}, trends.AvgResolutionTime)
	require.NotContains(t, trends.AvgResolutionTime.Label, "Inf")
}

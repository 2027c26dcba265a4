package compliance

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"

	"github.com/trucklog/hosd/hours"
	"github.com/trucklog/hosd/types"
)

// restartRecommendation summarizes cycle progress and suggests when to take
// the next 34-hour restart
func restartRecommendation(periods []types.SleeperBerthPeriod, used hours.Hours, now time.Time, limits types.CycleLimits) types.RestartRecommendation {
	recommendation := types.RestartRecommendation{
		CurrentCycleHours:    used,
		CycleLimit:           limits.CycleHours,
		CycleProgressPercent: used.PercentOf(limits.CycleHours),
		Advice:               []types.RestartAdvice{},
		SleeperBerthOptions: []types.SleeperBerthOption{
			{
				Type:         "single_period",
				Description:  "Single 8+ hour sleeper berth period",
				MinimumHours: limits.MinSleeperBerthHours,
				Benefits:     []string{"Simplest option", "Full cycle reset"},
			},
			{
				Type:         "split_period",
				Description:  "Split sleeper berth (2+2 hours)",
				MinimumHours: 4 * hours.One,
				Benefits:     []string{"More flexible", "Can be split across days"},
			},
		},
	}

	for _, period := range periods {
		if period.ValidForRestart && period.Ended {
			recommendation.LastRestart = period.End
			recommendation.HasRestart = true
			break
		}
	}
	if recommendation.HasRestart {
		recommendation.TimeSinceRestart = hours.FromDuration(now.Sub(recommendation.LastRestart))
		recommendation.Advice = append(recommendation.Advice, types.RestartAdvice{
			Type:     "time_since_restart",
			Message:  fmt.Sprintf("Last valid restart ended %s ago", durafmt.Parse(now.Sub(recommendation.LastRestart)).LimitFirstN(2)),
			Priority: "info",
		})
	}

	switch {
	case used >= limits.CycleHours.Scale(90):
		recommendation.Advice = append(recommendation.Advice, types.RestartAdvice{
			Type:           "restart_immediate",
			Message:        "Cycle limit nearly reached - 34-hour restart required immediately",
			Priority:       "critical",
			ActionRequired: true,
		})
	case used >= limits.CycleHours.Scale(80):
		recommendation.Advice = append(recommendation.Advice, types.RestartAdvice{
			Type:     "restart_soon",
			Message:  "Consider a 34-hour restart soon to reset your cycle",
			Priority: "high",
		})
	}

	if used >= limits.CycleHours.Scale(70) {
		recommendation.OptimalRestartTime = now.Add(1 * time.Hour)
		recommendation.HasOptimalTime = true
	}

	return recommendation
}

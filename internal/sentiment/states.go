package sentiment

import (
	"strings"

	"github.com/spacesedan/skypulse/internal/models"
)

var US_STATES = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut", "Delaware",
	"Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
	"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
	"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

type StateSentiment struct {
	State    string
	Compound float64
	Posts    int
}

// StateReport lists every mentioned state in first-mention order. The
// extremes are nil when no post mentions a state.
type StateReport struct {
	States       []StateSentiment
	MostPositive *StateSentiment
	MostNegative *StateSentiment
}

func (r StateReport) Found() bool {
	return len(r.States) > 0
}

// ByState averages the compound score of the original text of every post
// naming a state. Matching is a case-sensitive substring test, so a post
// about "West Virginia" also counts for "Virginia".
func (a *Analyzer) ByState(posts []models.Post) StateReport {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, p := range posts {
		var mentioned []string
		for _, state := range US_STATES {
			if strings.Contains(p.OriginalText, state) {
				mentioned = append(mentioned, state)
			}
		}
		if len(mentioned) == 0 {
			continue
		}

		compound := a.Score(p.OriginalText).Compound
		for _, state := range mentioned {
			if _, ok := counts[state]; !ok {
				order = append(order, state)
			}
			sums[state] += compound
			counts[state]++
		}
	}

	var report StateReport
	for _, state := range order {
		report.States = append(report.States, StateSentiment{
			State:    state,
			Compound: sums[state] / float64(counts[state]),
			Posts:    counts[state],
		})
	}

	for i := range report.States {
		s := &report.States[i]
		if report.MostPositive == nil || s.Compound > report.MostPositive.Compound {
			report.MostPositive = s
		}
		if report.MostNegative == nil || s.Compound < report.MostNegative.Compound {
			report.MostNegative = s
		}
	}
	return report
}

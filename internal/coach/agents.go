package coach

import (
	"fmt"
	"math"
	"strings"

	"github.com/bilalbaqar/fitness-coach/internal/athlete"
)

// PerformanceFacts are rolling averages over all available metric samples.
type PerformanceFacts struct {
	SpeedAvg float64 `json:"speed_avg"`
	AccelAvg float64 `json:"accel_avg"`
	XGAvg    float64 `json:"xg_avg"`
	PassPct  float64 `json:"pass_pct"`
}

// TacticsFacts carry a formation label and tactical note.
type TacticsFacts struct {
	Formation string `json:"formation"`
	Note      string `json:"note"`
}

// TrainingFacts carry the recommended drills and the weather note.
type TrainingFacts struct {
	Drills  []string `json:"drills"`
	Weather string   `json:"weather"`
}

// MentalFacts carry the visualization/breathing script.
type MentalFacts struct {
	Script string `json:"script"`
}

// FactBundle accumulates each invoked agent's structured contribution for one
// query. A nil field means the corresponding agent did not run; fields cannot
// collide across domains by construction.
type FactBundle struct {
	Performance *PerformanceFacts `json:"performance,omitempty"`
	Tactics     *TacticsFacts     `json:"tactics,omitempty"`
	Training    *TrainingFacts    `json:"training,omitempty"`
	Mental      *MentalFacts      `json:"mental,omitempty"`
}

// avg2 is the arithmetic mean rounded to two decimals. Empty input yields 0.
func avg2(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	n := len(xs)
	if n == 0 {
		n = 1
	}
	return math.Round(sum/float64(n)*100) / 100
}

// PerformanceAgent computes rolling averages over the athlete's samples and
// formats a one-line summary.
func PerformanceAgent(a athlete.Athlete) (string, PerformanceFacts) {
	speeds := make([]float64, 0, len(a.Metrics))
	accels := make([]float64, 0, len(a.Metrics))
	xgs := make([]float64, 0, len(a.Metrics))
	passes := make([]float64, 0, len(a.Metrics))
	for _, m := range a.Metrics {
		speeds = append(speeds, m.SpeedKMH)
		accels = append(accels, m.Accel)
		xgs = append(xgs, m.XG)
		passes = append(passes, m.PassPct)
	}
	facts := PerformanceFacts{
		SpeedAvg: avg2(speeds),
		AccelAvg: avg2(accels),
		XGAvg:    avg2(xgs),
		PassPct:  avg2(passes),
	}
	insight := fmt.Sprintf("%s — speed %v km/h, accel %v m/s², xG %v, pass %v%%.",
		a.Name, facts.SpeedAvg, facts.AccelAvg, facts.XGAvg, facts.PassPct)
	return insight, facts
}

// TacticsAgent derives formation and note from the position field alone.
func TacticsAgent(a athlete.Athlete) (string, TacticsFacts) {
	forward := strings.EqualFold(a.Position, "forward")
	facts := TacticsFacts{Formation: "4-2-3-1", Note: "Double pivot for buildup; protect transitions."}
	if forward {
		facts = TacticsFacts{Formation: "4-3-3", Note: "High press; isolate 9 in half-spaces."}
	}
	return "Tactics: " + facts.Note, facts
}

// Drill strings appended by the training rules, in rule order.
const (
	drillResistedSprints = "Resisted sprints 6×20m (walk-back recovery)"
	drillRondo           = "Rondo 6v2 two-touch 4×3min"
	drillFinishing       = "Finishing patterns: cutback & near-post 4×6 reps"
	drillReducedVolume   = "Reduce volume −10% + 10min mobility"
	drillMaintain        = "Maintain: mobility + small-sided 5v5 3×6min"
)

// TrainingAgent applies the threshold rules against the performance averages
// computed earlier in the same query (perf may be nil when the performance
// agent did not run; thresholds then see defaults that fire no rule) and the
// readiness fatigue level. Rule order is fixed so the drill list is
// deterministic. weatherNote is supplied by the caller.
func TrainingAgent(perf *PerformanceFacts, r *athlete.Readiness, weatherNote string) (string, TrainingFacts) {
	accel, pass, xg := 10.0, 100.0, 1.0
	if perf != nil {
		accel, pass, xg = perf.AccelAvg, perf.PassPct, perf.XGAvg
	}
	fatigue := "low"
	if r != nil {
		fatigue = r.Fatigue
	}

	var drills []string
	if accel < 3.3 {
		drills = append(drills, drillResistedSprints)
	}
	if pass < 85 {
		drills = append(drills, drillRondo)
	}
	if xg < 0.6 {
		drills = append(drills, drillFinishing)
	}
	if fatigue == "moderate" {
		drills = append(drills, drillReducedVolume)
	}
	if len(drills) == 0 {
		drills = append(drills, drillMaintain)
	}

	facts := TrainingFacts{Drills: drills, Weather: weatherNote}
	return "Training: " + strings.Join(drills, "; "), facts
}

// MentalAgent returns the fixed visualization script parameterized by name.
func MentalAgent(a athlete.Athlete) (string, MentalFacts) {
	script := fmt.Sprintf("Pep talk for %s: Breathe 4-4-8. Visualize first touch forward. Trust your pace.", a.Name)
	return "Mental routine prepared.", MentalFacts{Script: script}
}

package coach

import "github.com/bilalbaqar/fitness-coach/internal/athlete"

// RegimenDay is one day of the derived weekly plan.
type RegimenDay struct {
	Day    string  `json:"day"`
	Focus  string  `json:"focus"`
	Volume float64 `json:"volume"`
}

// Regimen is the weekly plan plus the drill list feeding it.
type Regimen struct {
	Plan   []RegimenDay `json:"plan"`
	Drills []string     `json:"drills"`
}

var weekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildRegimen derives a weekly plan from performance averages, goal category
// counts and readiness. Even days focus on speed (or finishing when no speed
// goal exists), odd days on passing (or conditioning); volume is reduced to
// 90% when fatigue is moderate. Drills come from the training agent evaluated
// against this athlete's current averages.
func BuildRegimen(a athlete.Athlete, r *athlete.Readiness, goals []athlete.Goal, weatherNote string) Regimen {
	_, perf := PerformanceAgent(a)

	cats := map[string]int{}
	for _, g := range goals {
		cats[g.Category]++
	}

	volume := 1.0
	if r != nil && r.Fatigue == "moderate" {
		volume = 0.9
	}

	plan := make([]RegimenDay, 0, len(weekDays))
	for i, day := range weekDays {
		focus := "passing"
		if i%2 == 0 {
			focus = "speed"
			if cats["speed"] == 0 {
				focus = "finishing"
			}
		} else if cats["passing"] == 0 {
			focus = "conditioning"
		}
		plan = append(plan, RegimenDay{Day: day, Focus: focus, Volume: volume})
	}

	_, training := TrainingAgent(&perf, r, weatherNote)
	return Regimen{Plan: plan, Drills: training.Drills}
}

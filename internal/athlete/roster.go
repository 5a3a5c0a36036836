package athlete

import "time"

// Roster is an in-memory, read-only set of athletes with readiness snapshots.
// It stands in for the telemetry collaborator; the core never writes to it.
type Roster struct {
	athletes  []Athlete
	readiness map[string]Readiness
	goals     map[string][]Goal
	diary     map[string][]DiaryEntry
}

// defaultReadiness is used when no snapshot exists for an athlete.
var defaultReadiness = Readiness{SleepScore: 75, RestingHR: 58, HRV: 70, Fatigue: "low"}

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// SeedRoster returns the demo roster used when no telemetry source is wired.
func SeedRoster() *Roster {
	return &Roster{
		athletes: []Athlete{
			{
				ID: "p1", Name: "Ava Patel", Sport: "soccer", Position: "Forward", Team: "Blue Tigers",
				Metrics: []MetricSample{
					{TS: ts("2025-08-01T10:00:00Z"), SpeedKMH: 28.1, Accel: 3.1, HR: 152, XG: 0.7, Shots: 5, PassPct: 78},
					{TS: ts("2025-08-02T10:00:00Z"), SpeedKMH: 29.4, Accel: 3.4, HR: 156, XG: 0.6, Shots: 3, PassPct: 82},
					{TS: ts("2025-08-03T10:00:00Z"), SpeedKMH: 30.2, Accel: 3.6, HR: 158, XG: 0.8, Shots: 6, PassPct: 80},
				},
			},
			{
				ID: "p2", Name: "Diego Santos", Sport: "soccer", Position: "Midfielder", Team: "Blue Tigers",
				Metrics: []MetricSample{
					{TS: ts("2025-08-01T10:00:00Z"), SpeedKMH: 26.0, Accel: 2.9, HR: 148, XG: 0.2, Shots: 1, PassPct: 89},
					{TS: ts("2025-08-02T10:00:00Z"), SpeedKMH: 27.5, Accel: 3.0, HR: 151, XG: 0.3, Shots: 2, PassPct: 90},
					{TS: ts("2025-08-03T10:00:00Z"), SpeedKMH: 27.1, Accel: 2.8, HR: 147, XG: 0.25, Shots: 2, PassPct: 88},
				},
			},
		},
		readiness: map[string]Readiness{
			"p1": {SleepScore: 78, RestingHR: 56, HRV: 78, Fatigue: "moderate"},
			"p2": {SleepScore: 88, RestingHR: 52, HRV: 92, Fatigue: "low"},
		},
		goals: map[string][]Goal{
			"p1": {
				{Category: "speed", Text: "Hit 31 km/h top speed", Created: "2025-07-30"},
				{Category: "passing", Text: "Reach 88% pass accuracy", Created: "2025-07-31"},
			},
		},
		diary: map[string][]DiaryEntry{
			"p1": {
				{Date: "2025-08-02", Type: "training", Text: "5v5 small-sided, good pop"},
				{Date: "2025-08-03", Type: "eating", Text: "Carb load pre-session"},
			},
		},
	}
}

// Athletes returns all athletes in roster order.
func (r *Roster) Athletes() []Athlete { return r.athletes }

// Get returns the athlete with the given id, or the first athlete when id is
// empty or unknown, and whether the id resolved.
func (r *Roster) Get(id string) (Athlete, bool) {
	for _, a := range r.athletes {
		if a.ID == id {
			return a, true
		}
	}
	if len(r.athletes) > 0 {
		return r.athletes[0], id == ""
	}
	return Athlete{}, false
}

// ReadinessFor returns the readiness snapshot for an athlete, falling back to
// a neutral default when none is recorded.
func (r *Roster) ReadinessFor(id string) Readiness {
	if rd, ok := r.readiness[id]; ok {
		return rd
	}
	return defaultReadiness
}

// GoalsFor returns the athlete's goals; may be empty.
func (r *Roster) GoalsFor(id string) []Goal { return r.goals[id] }

// DiaryFor returns the athlete's diary entries in append order; may be empty.
func (r *Roster) DiaryFor(id string) []DiaryEntry { return r.diary[id] }

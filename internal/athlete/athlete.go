package athlete

import "time"

// MetricSample is one timestamped performance reading for an athlete.
type MetricSample struct {
	TS       time.Time `json:"ts"`
	SpeedKMH float64   `json:"speed_kmh"`
	Accel    float64   `json:"accel"`
	HR       int       `json:"hr"`
	XG       float64   `json:"xg"`
	Shots    int       `json:"shots"`
	PassPct  float64   `json:"pass_pct"`
}

// Athlete is the identity plus telemetry consumed by the coaching agents.
// Values are treated as read-only per query.
type Athlete struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Sport    string         `json:"sport"`
	Position string         `json:"position"`
	Team     string         `json:"team"`
	Metrics  []MetricSample `json:"metrics"`
}

// Readiness is the recovery snapshot for an athlete.
type Readiness struct {
	SleepScore int    `json:"sleep_score"`
	RestingHR  int    `json:"hr_rest"`
	HRV        int    `json:"hrv"`
	Fatigue    string `json:"fatigue"` // "low" | "moderate" | "high"
}

// Goal is an athlete goal kept by an external collaborator; the core only reads it.
type Goal struct {
	Category string `json:"cat"`
	Text     string `json:"text"`
	Created  string `json:"created"`
}

// DiaryEntry is one dated diary line; append-only and owned elsewhere.
type DiaryEntry struct {
	Date string `json:"date"`
	Type string `json:"type"` // training | eating | sleep | recovery
	Text string `json:"text"`
}

package coach

import (
	"math/rand"
	"strings"

	"github.com/bilalbaqar/fitness-coach/internal/athlete"
)

// Weather notes the training agent attaches, chosen by the engine's selector.
const (
	weatherMild = "Mild (75°F). Intervals + extended warmup."
	weatherHot  = "Hot (83°F). Morning tempo + hydrate."
)

// RandomWeatherNote picks one of the two fixed weather templates. It is the
// production selector; tests inject a fixed one so Answer stays deterministic.
func RandomWeatherNote() string {
	if rand.Float64() > 0.5 {
		return weatherMild
	}
	return weatherHot
}

// Engine classifies a question, dispatches the matched agents in fixed order,
// merges their facts, and composes the final answer from insights plus the
// supplied goals/diary context. It is pure given its inputs; the only external
// variability is the injected weather-note selector.
type Engine struct {
	WeatherNote func() string
}

// NewEngine returns an engine using the given weather selector, defaulting to
// the random one when nil.
func NewEngine(weatherNote func() string) *Engine {
	if weatherNote == nil {
		weatherNote = RandomWeatherNote
	}
	return &Engine{WeatherNote: weatherNote}
}

// Run invokes the agents matched by the question and returns the ordered
// insight list plus the merged fact bundle. Performance always precedes
// training so training thresholds evaluate against this call's averages.
func (e *Engine) Run(question string, a athlete.Athlete, r *athlete.Readiness) ([]string, FactBundle) {
	topics := Classify(question)
	var insights []string
	var facts FactBundle

	if matched(topics, TopicPerformance) {
		insight, f := PerformanceAgent(a)
		insights = append(insights, insight)
		facts.Performance = &f
	}
	if matched(topics, TopicTactics) {
		insight, f := TacticsAgent(a)
		insights = append(insights, insight)
		facts.Tactics = &f
	}
	if matched(topics, TopicTraining) {
		insight, f := TrainingAgent(facts.Performance, r, e.WeatherNote())
		insights = append(insights, insight)
		facts.Training = &f
	}
	if matched(topics, TopicMental) {
		insight, f := MentalAgent(a)
		insights = append(insights, insight)
		facts.Mental = &f
	}
	return insights, facts
}

// Answer produces the full contextual answer string: a preamble built from the
// persona labels, all goals, and the three most recent diary entries, followed
// by the agents' insights joined with " | ".
func (e *Engine) Answer(question string, a athlete.Athlete, r *athlete.Readiness, goals []athlete.Goal, diary []athlete.DiaryEntry, personas []string) (string, FactBundle) {
	insights, facts := e.Run(question, a, r)

	goalParts := make([]string, 0, len(goals))
	for _, g := range goals {
		goalParts = append(goalParts, "[goal:"+g.Category+"] "+g.Text)
	}
	ctxGoals := strings.Join(goalParts, " | ")
	if ctxGoals == "" {
		ctxGoals = "—"
	}

	recent := diary
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	diaryParts := make([]string, 0, len(recent))
	for _, d := range recent {
		diaryParts = append(diaryParts, "["+d.Date+":"+d.Type+"] "+d.Text)
	}
	ctxDiary := strings.Join(diaryParts, " | ")

	var b strings.Builder
	b.WriteString(strings.Join(personas, ", "))
	b.WriteString(" — Using context from goals & diary: ")
	b.WriteString(ctxGoals)
	if ctxDiary != "" {
		b.WriteString(" | ")
		b.WriteString(ctxDiary)
	}
	b.WriteString(". ")
	b.WriteString(strings.Join(insights, " | "))
	return b.String(), facts
}

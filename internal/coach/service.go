package coach

import (
	"fmt"

	"github.com/bilalbaqar/fitness-coach/internal/athlete"
)

// Service binds the synthesis engine to the roster collaborator so callers can
// compose answers by athlete id without threading context through themselves.
type Service struct {
	engine *Engine
	roster *athlete.Roster
}

func NewService(engine *Engine, roster *athlete.Roster) *Service {
	return &Service{engine: engine, roster: roster}
}

// Compose resolves the athlete's context (readiness, goals, diary) and runs
// the synthesis engine. An empty athleteID selects the roster default.
func (s *Service) Compose(question, athleteID string, personas []string) (string, error) {
	a, ok := s.roster.Get(athleteID)
	if !ok {
		return "", fmt.Errorf("unknown athlete %q", athleteID)
	}
	r := s.roster.ReadinessFor(a.ID)
	answer, _ := s.engine.Answer(question, a, &r, s.roster.GoalsFor(a.ID), s.roster.DiaryFor(a.ID), personas)
	return answer, nil
}

// Regimen builds the weekly plan for an athlete using the engine's weather
// selector.
func (s *Service) Regimen(athleteID string) (Regimen, error) {
	a, ok := s.roster.Get(athleteID)
	if !ok {
		return Regimen{}, fmt.Errorf("unknown athlete %q", athleteID)
	}
	r := s.roster.ReadinessFor(a.ID)
	return BuildRegimen(a, &r, s.roster.GoalsFor(a.ID), s.engine.WeatherNote()), nil
}

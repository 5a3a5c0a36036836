package coach

import (
	"strings"
	"testing"

	"github.com/bilalbaqar/fitness-coach/internal/athlete"
)

func newTestService() *Service {
	return NewService(NewEngine(fixedWeather), athlete.SeedRoster())
}

func TestServiceComposeDefaultAthlete(t *testing.T) {
	svc := newTestService()
	answer, err := svc.Compose("pep talk", "", []string{"Calm mentor"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.HasPrefix(answer, "Calm mentor — Using context") {
		t.Fatalf("unexpected answer %q", answer)
	}
	// Empty id resolves to the first roster athlete.
	if !strings.Contains(answer, "Hit 31 km/h top speed") {
		t.Fatalf("answer should carry Ava's goals, got %q", answer)
	}
}

func TestServiceComposeUnknownAthlete(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Compose("pep talk", "ghost", []string{"Calm mentor"}); err == nil {
		t.Fatal("expected error for unknown athlete id")
	}
}

func TestServiceRegimen(t *testing.T) {
	svc := newTestService()
	reg, err := svc.Regimen("p2")
	if err != nil {
		t.Fatalf("Regimen: %v", err)
	}
	if len(reg.Plan) != 7 {
		t.Fatalf("plan has %d days, want 7", len(reg.Plan))
	}
	if _, err := svc.Regimen("ghost"); err == nil {
		t.Fatal("expected error for unknown athlete id")
	}
}

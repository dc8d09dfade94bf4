package constants

import "testing"

func TestNextCurrentStatus(t *testing.T) {
	steps := []struct {
		from CurrentStatus
		want CurrentStatus
	}{
		{CurrentAccepted, CurrentPickedUp},
		{CurrentPickedUp, CurrentOnTheWay},
		{CurrentOnTheWay, CurrentDelivered},
		{CurrentDelivered, CurrentCompleted},
	}
	for _, step := range steps {
		got, ok := NextCurrentStatus(step.from)
		if !ok || got != step.want {
			t.Errorf("NextCurrentStatus(%s) = %s, %v; want %s", step.from, got, ok, step.want)
		}
	}

	if _, ok := NextCurrentStatus(CurrentCompleted); ok {
		t.Error("completed must have no successor")
	}
	if _, ok := NextCurrentStatus("bogus"); ok {
		t.Error("unknown phase must have no successor")
	}
}

func TestTerminal(t *testing.T) {
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Error("completed and cancelled are terminal")
	}
	if StatusOpen.Terminal() || StatusAccepted.Terminal() {
		t.Error("open and accepted are not terminal")
	}
}

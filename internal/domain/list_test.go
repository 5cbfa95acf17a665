package domain

import (
	"reflect"
	"testing"
)

func TestNextID(t *testing.T) {
	t.Parallel()

	if got := NextID([]Timer{}); got != 1 {
		t.Errorf("Expected 1 for empty list, got %d", got)
	}
	if got := NextID([]Timer{{ID: 2}, {ID: 9}, {ID: 4}}); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

func TestNextID_NotReusedAfterDelete(t *testing.T) {
	t.Parallel()

	list := []Meditation{{ID: 3}, {ID: 2}, {ID: 1}}
	list = RemoveByID(list, 2)
	if got := NextID(list); got != 4 {
		t.Errorf("Expected 4, got %d", got)
	}
}

func TestPrependAndRemove(t *testing.T) {
	t.Parallel()

	list := []Timer{{ID: 3, Title: "a", Minutes: 1}}
	added := Prepend(list, Timer{ID: 4, Title: "Focus", Minutes: 25})

	if len(added) != 2 || added[0].ID != 4 {
		t.Fatalf("Expected new timer first, got %+v", added)
	}
	if len(list) != 1 {
		t.Errorf("Prepend must not modify its input")
	}

	removed := RemoveByID(added, 3)
	if !reflect.DeepEqual(removed, []Timer{{ID: 4, Title: "Focus", Minutes: 25}}) {
		t.Errorf("Unexpected list after remove: %+v", removed)
	}

	if got := RemoveByID(removed, 99); !reflect.DeepEqual(got, removed) {
		t.Errorf("Removing an unknown ID should keep the list, got %+v", got)
	}
}

func TestToggleByID_TwiceRestoresList(t *testing.T) {
	t.Parallel()

	list := []Prediction{{ID: 5, Text: "five"}, {ID: 1, Text: "one"}}
	x := Prediction{ID: 9, Text: "nine"}

	once, saved := ToggleByID(list, x)
	if !saved || once[0].ID != 9 {
		t.Fatalf("Expected prediction to be prepended, got %+v", once)
	}

	twice, saved := ToggleByID(once, x)
	if saved {
		t.Errorf("Expected second toggle to remove the prediction")
	}
	if !reflect.DeepEqual(twice, list) {
		t.Errorf("Expected %+v, got %+v", list, twice)
	}
}

func TestToggleByID_PresentIsRemoved(t *testing.T) {
	t.Parallel()

	list := []Prediction{{ID: 5, Text: "five"}, {ID: 1, Text: "one"}}
	out, saved := ToggleByID(list, Prediction{ID: 1})
	if saved {
		t.Errorf("Expected prediction to be removed")
	}
	if !reflect.DeepEqual(out, []Prediction{{ID: 5, Text: "five"}}) {
		t.Errorf("Unexpected list %+v", out)
	}
}

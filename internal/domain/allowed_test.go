package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuildAllowedSet_Intersection(t *testing.T) {
	owned := NewOwnedCardPool(map[string]int{
		"Lightning Bolt": 4,
		"Shock":          2,
		"Black Lotus":    1,
	})
	legal := map[string]struct{}{
		"Lightning Bolt": {},
		"Shock":          {},
		"Opt":            {},
	}

	set := BuildAllowedSet(owned, legal, "modern")

	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if set.Contains("Black Lotus") {
		t.Error("card not legal in format must not be allowed")
	}
	if set.Contains("Opt") {
		t.Error("legal but unowned card must not be allowed")
	}
	if got := set.Quantity("Lightning Bolt"); got != 4 {
		t.Errorf("Quantity(Lightning Bolt) = %d, want 4", got)
	}
	if set.Format != "modern" {
		t.Errorf("Format = %q, want modern", set.Format)
	}
}

func TestAllowedCardSet_Empty(t *testing.T) {
	set := BuildAllowedSet(NewOwnedCardPool(nil), nil, "standard")
	if !set.Empty() {
		t.Error("set built from empty inputs should be empty")
	}
}

func TestAllowedCardSet_NamesSorted(t *testing.T) {
	owned := NewOwnedCardPool(map[string]int{"Shock": 1, "Opt": 1, "Duress": 1})
	legal := map[string]struct{}{"Shock": {}, "Opt": {}, "Duress": {}}
	set := BuildAllowedSet(owned, legal, "standard")

	want := []string{"Duress", "Opt", "Shock"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestValidateCard(t *testing.T) {
	owned := NewOwnedCardPool(map[string]int{"Shock": 2})
	legal := map[string]struct{}{"Shock": {}}
	set := BuildAllowedSet(owned, legal, "standard")

	if err := ValidateCard("Shock", set, 2); err != nil {
		t.Errorf("ValidateCard with sufficient quantity returned %v", err)
	}

	err := ValidateCard("Opt", set, 1)
	var notAllowed *CardNotAllowedError
	if !errors.As(err, &notAllowed) {
		t.Fatalf("ValidateCard for missing card returned %T, want *CardNotAllowedError", err)
	}
	if notAllowed.CardName != "Opt" {
		t.Errorf("CardName = %q, want Opt", notAllowed.CardName)
	}

	err = ValidateCard("Shock", set, 3)
	if !errors.As(err, &notAllowed) {
		t.Fatalf("ValidateCard for insufficient quantity returned %T, want *CardNotAllowedError", err)
	}
	if !strings.Contains(notAllowed.Reason, "owned quantity (2) less than required (3)") {
		t.Errorf("Reason = %q, want quantity mismatch detail", notAllowed.Reason)
	}
}

func TestValidateCards_CollectsAllViolations(t *testing.T) {
	owned := NewOwnedCardPool(map[string]int{"Shock": 2})
	legal := map[string]struct{}{"Shock": {}}
	set := BuildAllowedSet(owned, legal, "standard")

	violations := ValidateCards(map[string]int{
		"Shock": 4,
		"Opt":   1,
	}, set)

	if len(violations) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(violations), violations)
	}
	// Violations are reported in sorted card-name order.
	if !strings.Contains(violations[0], "Opt") {
		t.Errorf("first violation %q should mention Opt", violations[0])
	}
	if !strings.Contains(violations[1], "Shock") {
		t.Errorf("second violation %q should mention Shock", violations[1])
	}
}

func TestValidateCards_AllValid(t *testing.T) {
	owned := NewOwnedCardPool(map[string]int{"Shock": 4})
	legal := map[string]struct{}{"Shock": {}}
	set := BuildAllowedSet(owned, legal, "standard")

	if violations := ValidateCards(map[string]int{"Shock": 4}, set); len(violations) != 0 {
		t.Errorf("got violations %v, want none", violations)
	}
}

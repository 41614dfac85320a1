package models

import "testing"

func TestParseComplaintStatus(t *testing.T) {
	cases := map[string]ComplaintStatus{
		"Pending":    StatusPending,
		"processing": StatusProcessing,
		" Resolved ": StatusResolved,
	}
	for in, want := range cases {
		got, ok := ParseComplaintStatus(in)
		if !ok || got != want {
			t.Fatalf("ParseComplaintStatus(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseComplaintStatus("Closed"); ok {
		t.Fatalf("expected Closed to be rejected")
	}
}

func TestParsePickupStatus(t *testing.T) {
	got, ok := ParsePickupStatus("in progress")
	if !ok || got != PickupInProgress {
		t.Fatalf("got %q, %v", got, ok)
	}
	if _, ok := ParsePickupStatus("Done"); ok {
		t.Fatalf("expected Done to be rejected")
	}
	if !TerminalPickup(PickupCancelled) || TerminalPickup(PickupConfirmed) {
		t.Fatalf("terminal classification wrong")
	}
}

func TestParseUrgencyFallsBackToMedium(t *testing.T) {
	if ParseUrgency("urgent") != UrgencyHigh {
		t.Fatalf("urgent should map to High")
	}
	if ParseUrgency("normal") != UrgencyMedium {
		t.Fatalf("unknown values should map to Medium")
	}
	if ParseUrgency("low") != UrgencyLow {
		t.Fatalf("low should map to Low")
	}
}

func TestCanonicalDepartmentTolerantMatching(t *testing.T) {
	cases := map[string]Department{
		"Water Department":       DepartmentWater,
		"road":                   DepartmentRoad,
		"Garbage collection":     DepartmentSanitation,
		"Electricity Department": DepartmentElectricity,
		"General Administration": DepartmentGeneral,
		"Women-Child":            DepartmentWomenChild,
		"Parks and Recreation":   DepartmentOther,
		"":                       DepartmentOther,
	}
	for in, want := range cases {
		if got := CanonicalDepartment(in); got != want {
			t.Fatalf("CanonicalDepartment(%q) = %q, want %q", in, got, want)
		}
	}
}

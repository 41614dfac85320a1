package db

import (
	"strings"
	"testing"
)

func TestBuildComplaintListQueryNoFilters(t *testing.T) {
	query, args := buildComplaintListQuery("", "", 0, 0)
	if strings.Contains(query, "LIMIT") {
		t.Fatalf("unfiltered dashboard query must not cap results: %s", query)
	}
	if strings.Contains(query, "WHERE") {
		t.Fatalf("unexpected WHERE clause: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildComplaintListQueryFilters(t *testing.T) {
	query, args := buildComplaintListQuery("Pending", "Water", 50, 100)
	if !strings.Contains(query, "status = $1") {
		t.Fatalf("missing status filter: %s", query)
	}
	if !strings.Contains(query, "department ILIKE $2") {
		t.Fatalf("missing department filter: %s", query)
	}
	if !strings.Contains(query, "LIMIT $3") || !strings.Contains(query, "OFFSET $4") {
		t.Fatalf("missing paging clauses: %s", query)
	}
	if len(args) != 4 || args[1] != "%Water%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildComplaintListQueryOffsetWithoutLimit(t *testing.T) {
	query, args := buildComplaintListQuery("", "", 0, 10)
	if strings.Contains(query, "LIMIT") {
		t.Fatalf("limit<=0 must not add LIMIT: %s", query)
	}
	if !strings.Contains(query, "OFFSET $1") {
		t.Fatalf("offset must survive without a limit: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %v", args)
	}
}

package utils

import (
	"net/http/httptest"
	"testing"
)

func TestGenerateName(t *testing.T) {
	a := GenerateName(10)
	b := GenerateName(10)
	if len(a) != 10 || len(b) != 10 {
		t.Fatalf("expected length 10, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("expected distinct strings, got %s twice", a)
	}
}

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/plants", nil)
	opts := ParseQueryOptions(r)
	if opts.Page != 1 || opts.Limit != 10 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	r = httptest.NewRequest("GET", "/api/plants?page=3&limit=25&search=monstera", nil)
	opts = ParseQueryOptions(r)
	if opts.Page != 3 || opts.Limit != 25 || opts.Search != "monstera" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

package helpers

import "testing"

func TestValueOr(t *testing.T) {
	if got := ValueOr(nil, "kept"); got != "kept" {
		t.Fatalf("nil pointer: got %q", got)
	}
	if got := ValueOr(Ptr("patched"), "kept"); got != "patched" {
		t.Fatalf("set pointer: got %q", got)
	}
}

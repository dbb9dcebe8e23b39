package server

import "testing"

func TestHumanizeParam(t *testing.T) {
	cases := map[string]string{
		"id":        "ID",
		"userId":    "user ID",
		"requestId": "request ID",
		"weird":     "weird",
	}
	for param, want := range cases {
		if got := humanizeParam(param); got != want {
			t.Errorf("humanizeParam(%q) = %q, want %q", param, got, want)
		}
	}
}

package domain

import "testing"

func TestStateOf(t *testing.T) {
	if StateOf(true) != StateUp || StateOf(false) != StateDown {
		t.Fatal("StateOf mapping wrong")
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		target MonitorTarget
		want   string
	}{
		{MonitorTarget{Name: "Production", Surface: "front-door"}, "Production (Front Door)"},
		{MonitorTarget{Name: "Staging", Surface: "vm"}, "Staging (VM)"},
		{MonitorTarget{Name: "API", Surface: "public-api"}, "API (Public Api)"},
		{MonitorTarget{Name: "Bare"}, "Bare"},
		{MonitorTarget{Env: "prod"}, "prod"},
		{MonitorTarget{URL: "https://x.example.com"}, "https://x.example.com"},
	}
	for _, c := range cases {
		if got := c.target.DisplayName(); got != c.want {
			t.Fatalf("DisplayName(%+v) = %q, want %q", c.target, got, c.want)
		}
	}
}

func TestTargetKeyString(t *testing.T) {
	k := TargetKey{Env: "prod", Surface: "front-door"}
	if k.String() != "prod/front-door" {
		t.Fatalf("unexpected key string %q", k.String())
	}
}

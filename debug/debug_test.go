package debug

import "testing"

// Test: flag parsing accepts the usual boolean spellings and treats
// anything else, including unset, as off.
func TestBoolEnv(t *testing.T) {
	cases := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"yes", false},
	}
	for _, c := range cases {
		t.Setenv("YEV_TEST_FLAG", c.val)
		if got := boolEnv("YEV_TEST_FLAG"); got != c.want {
			t.Errorf("boolEnv(%q) = %v, want %v", c.val, got, c.want)
		}
	}
}

// Test: with no environment configured every trace gate is off.
func TestDefaultsOff(t *testing.T) {
	if Events() || Emit() || Engine() {
		t.Errorf("tracing enabled by default: events=%v emit=%v engine=%v",
			Events(), Emit(), Engine())
	}
}

package hotkey

import "testing"

func TestListenRejectsUnparsableCombo(t *testing.T) {
	cases := []string{"", "alt+", "q", "alt+enter", "bogus+q"}
	for _, combo := range cases {
		l, err := Listen(combo, func() {})
		if err == nil {
			l.Stop()
			t.Errorf("Listen(%q) succeeded, want parse error", combo)
		}
	}
}

package tui

import "testing"

func TestParseKeyInput(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want KeyEvent
	}{
		{"empty", nil, KeyEvent{}},
		{"tab", []byte{9}, KeyEvent{IsSpecial: true, Special: "Tab"}},
		{"back-tab", []byte{27, '[', 'Z'}, KeyEvent{IsSpecial: true, Special: "Tab", Shift: true}},
		{"escape", []byte{27}, KeyEvent{IsSpecial: true, Special: "Escape"}},
		{"up", []byte{27, '[', 'A'}, KeyEvent{IsSpecial: true, Special: "Up"}},
		{"home", []byte{27, '[', 'H'}, KeyEvent{IsSpecial: true, Special: "Home"}},
		{"enter", []byte{13}, KeyEvent{IsSpecial: true, Special: "Enter"}},
		{"backspace", []byte{127}, KeyEvent{IsSpecial: true, Special: "Backspace"}},
		{"ctrl-n", []byte{14}, KeyEvent{Key: 'n', Ctrl: true}},
		{"lowercase", []byte{'a'}, KeyEvent{Key: 'a'}},
		{"uppercase", []byte{'A'}, KeyEvent{Key: 'A', Shift: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKeyInput(tt.buf); got != tt.want {
				t.Errorf("ParseKeyInput(%v) = %+v, want %+v", tt.buf, got, tt.want)
			}
		})
	}
}

func TestParseKeyInput_MatchesNamedKeys(t *testing.T) {
	km := DefaultKeymap()
	if got := ParseKeyInput([]byte{9}); !keyEventEquals(got, km.Forward) {
		t.Errorf("tab byte does not match forward key %s", km.Forward)
	}
	if got := ParseKeyInput([]byte{27, '[', 'Z'}); !keyEventEquals(got, km.Backward) {
		t.Errorf("back-tab sequence does not match backward key %s", km.Backward)
	}
	if got := ParseKeyInput([]byte{27}); !keyEventEquals(got, km.Reset) {
		t.Errorf("escape byte does not match reset key %s", km.Reset)
	}
}

package tui

// ParseKeyInput converts raw terminal bytes into a KeyEvent
func ParseKeyInput(buf []byte) KeyEvent {
	if len(buf) == 0 {
		return KeyEvent{}
	}

	// Handle escape sequences (arrow keys, back-tab)
	if buf[0] == 27 {
		if len(buf) > 2 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return KeyEvent{IsSpecial: true, Special: "Up"}
			case 'B':
				return KeyEvent{IsSpecial: true, Special: "Down"}
			case 'C':
				return KeyEvent{IsSpecial: true, Special: "Right"}
			case 'D':
				return KeyEvent{IsSpecial: true, Special: "Left"}
			case 'H':
				return KeyEvent{IsSpecial: true, Special: "Home"}
			case 'F':
				return KeyEvent{IsSpecial: true, Special: "End"}
			case 'Z':
				return KeyEvent{IsSpecial: true, Special: "Tab", Shift: true}
			}
		}
		return KeyEvent{IsSpecial: true, Special: "Escape"}
	}

	// Handle special keys
	switch buf[0] {
	case 9: // Tab
		return KeyEvent{IsSpecial: true, Special: "Tab"}
	case 13: // Enter
		return KeyEvent{IsSpecial: true, Special: "Enter"}
	case 127: // Backspace
		return KeyEvent{IsSpecial: true, Special: "Backspace"}
	}

	// Handle Ctrl combinations
	if buf[0] < 32 {
		return KeyEvent{
			Key:  rune(buf[0] + 'a' - 1), // Convert to letter
			Ctrl: true,
		}
	}

	// Regular character
	key := rune(buf[0])
	shift := false
	if key >= 'A' && key <= 'Z' {
		shift = true
	}

	return KeyEvent{
		Key:   key,
		Shift: shift,
	}
}

package tui

/*
Package tui connects terminal key presses to keynav navigation registries.

Key Components

1. KeyEvent: a keyboard input event:
   - Regular character keys
   - Special keys (Enter, Escape, Tab, arrow keys)
   - Modifier keys (Ctrl, Shift, Alt)

2. KeyboardHandler: the binding table:
   - Per-mode bindings (normal, insert) and global bindings
   - Conflict detection
   - Handlers run with no lock held, so a handler may rebind keys

3. Binder: installs the forward, backward and reset keys of a Keymap and
   routes them to the innermost open Scope. Opening a Scope over a modal
   registry shadows the scopes below it until the modal's Scope is closed.

Default Keys

  Tab         - Focus next item
  Shift-Tab   - Focus previous item
  Escape      - Clear focus

Usage Example

	kh := NewKeyboardHandler()
	binder := NewBinder(kh, DefaultKeymap())

	root := navigation.New()
	root.RegisterLeaf(func() { fmt.Println("first") })
	root.RegisterLeaf(func() { fmt.Println("second") })

	scope, err := binder.Bind("main", root)
	if err != nil {
		log.Fatal(err)
	}
	defer scope.Close()

	// Tab prints "first"
	if _, err := kh.HandleKey(KeyEvent{IsSpecial: true, Special: "Tab"}); err != nil {
		log.Printf("Error handling key: %v", err)
	}

Conflict Detection

Binding a key that is already bound in the same mode fails. The Binder reports
the failure as an *errors.OperationalError naming the key, and rolls back any
trigger it had already installed:

	_, err := binder.Bind("main", root)
	var opErr *errors.OperationalError
	if stderrors.As(err, &opErr) {
		fmt.Println(opErr.Key)
	}

Help System

Generate help text from registered bindings:

	fmt.Print(NewHelpFormatter().FormatByMode(kh.GetAllBindings()))
*/

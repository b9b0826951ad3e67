package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/goterm"
	"github.com/dshills/keynav/pkg/navigation"
	"github.com/dshills/keynav/pkg/tui/components"
)

// AppConfig configures the interactive demo application
type AppConfig struct {
	Keymap      Keymap
	BindingMode Mode // defaults to ModeNormal
	Logger      *slog.Logger
	Input       io.Reader // defaults to os.Stdin
}

// App is the interactive demo: a navigable list with a nested section.
// Rows can be added and removed while keyboard focus moves through them;
// removal asks for confirmation in a dialog that takes over navigation
// until it closes.
type App struct {
	screen      *goterm.Screen
	keyboard    *KeyboardHandler
	binder      *Binder
	list        *components.NavList
	panel       *components.Panel
	statusBar   *components.StatusBar
	dialog      *components.Dialog
	scope       *Scope
	dialogScope *Scope
	mode        Mode
	logger      *slog.Logger
	input       io.Reader
	ctx         context.Context
	cancel      context.CancelFunc
	inputChan   chan KeyEvent
	added       int
}

// NewApp initializes the terminal and builds the demo application
func NewApp(cfg AppConfig) (*App, error) {
	screen, err := goterm.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	app, err := newApp(screen, cfg)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return app, nil
}

// newApp builds the application around an existing screen
func newApp(screen *goterm.Screen, cfg AppConfig) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	input := cfg.Input
	if input == nil {
		input = os.Stdin
	}
	mode := cfg.BindingMode
	if mode == "" {
		mode = ModeNormal
	}

	ctx, cancel := context.WithCancel(context.Background())
	keyboard := NewKeyboardHandler()
	if mode != ModeGlobal {
		keyboard.SetMode(mode)
	}

	width, height := screen.Size()
	list := components.NewNavList(0, 0, 0, 0,
		navigation.WithName("demo"), navigation.WithLogger(logger))

	app := &App{
		screen:    screen,
		keyboard:  keyboard,
		binder:    NewBinder(keyboard, cfg.Keymap, WithBindingMode(mode), WithBinderLogger(logger)),
		list:      list,
		panel:     components.NewPanel("Items", 0, 1, width, max(3, height-2), list),
		statusBar: components.NewStatusBar(height-1, width),
		mode:      mode,
		logger:    logger,
		input:     input,
		ctx:       ctx,
		cancel:    cancel,
		inputChan: make(chan KeyEvent, 100),
	}
	app.dialog = components.NewConfirmDialog("Remove", "", app.closeDialog,
		navigation.WithName("confirm"), navigation.WithLogger(logger))

	app.statusBar.SetMode(string(mode))
	app.statusBar.SetHints("[a: Add] [d: Delete] [q: Quit]")
	app.statusBar.Flash("Ready", 1)

	seedDemo(list, logger)

	scope, err := app.binder.Bind("demo", list)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to bind navigation keys: %w", err)
	}
	app.scope = scope

	if err := app.registerKeybindings(); err != nil {
		_ = scope.Close()
		cancel()
		return nil, fmt.Errorf("failed to register keybindings: %w", err)
	}

	return app, nil
}

// seedDemo mounts the initial rows
func seedDemo(list *components.NavList, logger *slog.Logger) {
	list.Append("Inbox")
	list.Append("Drafts")

	projects := list.AddSection("Projects", navigation.WithName("projects"), navigation.WithLogger(logger))
	projects.Append("keynav")
	projects.Append("goterm")
	projects.Append("dotfiles")

	list.Append("Archive")
}

// registerKeybindings registers the demo's editing and quit keys in the
// same mode as the navigation keys
func (a *App) registerKeybindings() error {
	if err := a.keyboard.RegisterGlobalBinding(
		KeyEvent{Key: 'c', Ctrl: true},
		func(event KeyEvent) error {
			a.cancel()
			return nil
		},
		"Quit application",
	); err != nil {
		return err
	}

	bindings := []struct {
		key     KeyEvent
		handler KeyHandler
		label   string
	}{
		{KeyEvent{Key: 'q'}, a.quit, "Quit application"},
		{KeyEvent{Key: 'a'}, a.addRow, "Add a row"},
		{KeyEvent{Key: 'd'}, a.confirmRemove, "Remove the focused row"},
		{NewSpecialKeyEvent("Enter").Build(), a.pressButton, "Press the focused button"},
	}
	for _, b := range bindings {
		if err := a.keyboard.RegisterBinding(a.mode, b.key, b.handler, b.label); err != nil {
			return err
		}
	}

	return nil
}

// quit closes an open dialog first, otherwise stops the app
func (a *App) quit(KeyEvent) error {
	if a.dialog.IsVisible() {
		a.dialog.Close(false)
		return nil
	}
	a.cancel()
	return nil
}

func (a *App) addRow(KeyEvent) error {
	if a.dialog.IsVisible() {
		return nil
	}
	a.added++
	label := fmt.Sprintf("Item %d", a.added)
	a.list.Append(label)
	a.statusBar.Flash("Added "+label, 1)
	return nil
}

// confirmRemove opens the dialog and binds it as the innermost scope
func (a *App) confirmRemove(KeyEvent) error {
	if a.dialog.IsVisible() {
		return nil
	}
	label, ok := a.list.Focused()
	if !ok {
		a.statusBar.Flash("Nothing focused", 1)
		return nil
	}

	a.dialog.SetMessage(fmt.Sprintf("Remove %q from the list?", label))
	a.dialog.Open()

	scope, err := a.binder.Bind("confirm", a.dialog)
	if err != nil {
		a.dialog.Close(false)
		return err
	}
	a.dialogScope = scope
	return nil
}

func (a *App) pressButton(KeyEvent) error {
	a.dialog.Activate()
	return nil
}

// closeDialog pops the dialog scope, handing the keys back to the list
func (a *App) closeDialog(confirmed bool) {
	if a.dialogScope != nil {
		_ = a.dialogScope.Close()
		a.dialogScope = nil
	}

	label, ok := a.list.Focused()
	if !ok {
		return
	}
	if !confirmed {
		a.statusBar.Flash("Kept "+label, 1)
		return
	}
	a.list.RemoveFocused()
	a.statusBar.Flash("Removed "+label, 1)
}

// Status returns the message currently flashed in the status bar
func (a *App) Status() string {
	return a.statusBar.Message()
}

// Run starts the demo main loop and blocks until quit
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go a.readKeyboardInput()

	if err := a.render(); err != nil {
		return fmt.Errorf("initial render failed: %w", err)
	}

	for {
		select {
		case <-a.ctx.Done():
			return nil

		case <-sigChan:
			a.cancel()
			return nil

		case event := <-a.inputChan:
			if err := a.handleKeyEvent(event); err != nil {
				return err
			}
			if err := a.render(); err != nil {
				return err
			}
		}
	}
}

// handleKeyEvent processes keyboard input through the keyboard handler
func (a *App) handleKeyEvent(event KeyEvent) error {
	a.statusBar.Tick()

	handled, err := a.keyboard.HandleKey(event)
	if err != nil {
		return fmt.Errorf("keyboard handler error: %w", err)
	}
	if !handled {
		a.logger.Debug("unbound key", "key", event.String())
	}
	return nil
}

// draw lays out and draws every component without flushing
func (a *App) draw() {
	width, height := a.screen.Size()
	a.panel.SetBounds(0, 1, width, max(3, height-2))
	a.statusBar.SetPosition(height-1, width)

	a.screen.Clear()

	km := a.binder.Keymap()
	title := fmt.Sprintf("keynav demo  [%s: next] [%s: previous] [%s: clear]",
		km.Forward, km.Backward, km.Reset)
	a.screen.DrawText(0, 0, title, goterm.ColorDefault(), goterm.ColorDefault(), goterm.StyleBold)

	a.panel.Render(a.screen)

	focus := ""
	if a.dialog.IsVisible() {
		focus, _ = a.dialog.Focused()
	} else if label, ok := a.list.Focused(); ok {
		focus = label
	}
	a.statusBar.SetFocus(focus)
	a.statusBar.Render(a.screen)

	a.dialog.Render(a.screen)
}

// render draws the frame and flushes it to the terminal
func (a *App) render() error {
	a.draw()
	if err := a.screen.Show(); err != nil {
		return fmt.Errorf("screen show failed: %w", err)
	}
	return nil
}

// readKeyboardInput reads keyboard input in a background goroutine
func (a *App) readKeyboardInput() {
	buf := make([]byte, 32)

	for {
		select {
		case <-a.ctx.Done():
			return
		default:
		}

		// Blocking read - terminal is already in raw mode from goterm
		n, err := a.input.Read(buf)
		if err != nil {
			if err == io.EOF {
				a.cancel()
				return
			}
			continue
		}

		if n > 0 {
			event := ParseKeyInput(buf[:n])
			select {
			case a.inputChan <- event:
			case <-a.ctx.Done():
				return
			}
		}
	}
}

// Close unbinds navigation and restores terminal state
func (a *App) Close() error {
	a.cancel()

	if a.dialogScope != nil {
		_ = a.dialogScope.Close()
	}
	if a.scope != nil {
		_ = a.scope.Close()
	}

	if err := a.screen.Close(); err != nil {
		return fmt.Errorf("failed to close screen: %w", err)
	}
	return nil
}

// List returns the demo list
func (a *App) List() *components.NavList {
	return a.list
}

package tui

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/dshills/goterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := newApp(goterm.NewScreen(80, 24), AppConfig{
		Keymap: DefaultKeymap(),
		Input:  bytes.NewReader(nil),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		app.cancel()
		_ = app.scope.Close()
	})
	return app
}

func focusedLabel(t *testing.T, app *App) string {
	t.Helper()
	label, ok := app.List().Focused()
	require.True(t, ok, "expected a focused row")
	return label
}

func TestApp_TabWalksSeededTree(t *testing.T) {
	app := newTestApp(t)

	var order []string
	for i := 0; i < 6; i++ {
		require.NoError(t, app.handleKeyEvent(tabKey))
		order = append(order, focusedLabel(t, app))
	}
	assert.Equal(t, []string{"Inbox", "Drafts", "keynav", "goterm", "dotfiles", "Archive"}, order)

	// At the end, Tab is a no-op
	require.NoError(t, app.handleKeyEvent(tabKey))
	assert.Equal(t, "Archive", focusedLabel(t, app))

	require.NoError(t, app.handleKeyEvent(shiftTabKey))
	assert.Equal(t, "dotfiles", focusedLabel(t, app))
}

func TestApp_EscapeClearsFocus(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.handleKeyEvent(tabKey))

	require.NoError(t, app.handleKeyEvent(escapeKey))
	_, ok := app.List().Focused()
	assert.False(t, ok)
	assert.Equal(t, -1, app.List().Registry().ActiveIndex())

	// Backward from a reset tree starts at the end
	require.NoError(t, app.handleKeyEvent(shiftTabKey))
	assert.Equal(t, "Archive", focusedLabel(t, app))
}

var enterKey = KeyEvent{IsSpecial: true, Special: "Enter"}

func TestApp_AddAndDeleteRows(t *testing.T) {
	app := newTestApp(t)
	before := app.List().Len()

	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'a'}))
	assert.Equal(t, before+1, app.List().Len())
	assert.Equal(t, "Added Item 1", app.Status())

	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'd'}))
	assert.Equal(t, "Nothing focused", app.Status())
	assert.False(t, app.dialog.IsVisible())

	require.NoError(t, app.handleKeyEvent(tabKey))
	require.NoError(t, app.handleKeyEvent(tabKey))
	require.Equal(t, "Drafts", focusedLabel(t, app))

	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'd'}))
	require.True(t, app.dialog.IsVisible())
	assert.Equal(t, 2, app.binder.Depth())

	require.NoError(t, app.handleKeyEvent(enterKey))
	assert.False(t, app.dialog.IsVisible())
	assert.Equal(t, 1, app.binder.Depth())
	assert.Equal(t, "Removed Drafts", app.Status())
	assert.Equal(t, "Inbox", focusedLabel(t, app), "removal refocuses the previous row")
}

func TestApp_DialogOwnsNavigationWhileOpen(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.handleKeyEvent(tabKey))
	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'd'}))

	label, ok := app.dialog.Focused()
	require.True(t, ok)
	assert.Equal(t, "OK", label)

	// Tab moves between the dialog buttons, not the list rows
	require.NoError(t, app.handleKeyEvent(tabKey))
	label, _ = app.dialog.Focused()
	assert.Equal(t, "Cancel", label)
	assert.Equal(t, "Inbox", focusedLabel(t, app))

	// Editing keys are ignored behind the dialog
	before := app.List().Len()
	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'a'}))
	assert.Equal(t, before, app.List().Len())

	require.NoError(t, app.handleKeyEvent(enterKey))
	assert.False(t, app.dialog.IsVisible())
	assert.Equal(t, "Kept Inbox", app.Status())
	assert.Equal(t, before, app.List().Len())

	// The list scope is live again
	require.NoError(t, app.handleKeyEvent(tabKey))
	assert.Equal(t, "Drafts", focusedLabel(t, app))
}

func TestApp_QuitKeyClosesDialogFirst(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.handleKeyEvent(tabKey))
	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'd'}))

	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'q'}))
	assert.False(t, app.dialog.IsVisible())
	assert.NoError(t, app.ctx.Err(), "closing the dialog must not quit")
	assert.Equal(t, 1, app.binder.Depth())
}

func TestApp_Draw(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.handleKeyEvent(tabKey))
	assert.NotPanics(t, app.draw)

	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'd'}))
	assert.NotPanics(t, app.draw)
}

func TestApp_QuitCancelsContext(t *testing.T) {
	for _, key := range []KeyEvent{{Key: 'q'}, {Key: 'c', Ctrl: true}} {
		t.Run(key.String(), func(t *testing.T) {
			app := newTestApp(t)
			require.NoError(t, app.handleKeyEvent(key))
			select {
			case <-app.ctx.Done():
			default:
				t.Fatal("quit key did not cancel the app context")
			}
		})
	}
}

func TestApp_UnboundKeyIsIgnored(t *testing.T) {
	app := newTestApp(t)
	assert.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'z'}))
	_, ok := app.List().Focused()
	assert.False(t, ok)
}

// chunkReader returns one chunk per Read, then EOF
type chunkReader struct {
	chunks [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestReadKeyboardInput_EventDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := &App{
		ctx:       ctx,
		cancel:    cancel,
		inputChan: make(chan KeyEvent, 10),
		input: &chunkReader{chunks: [][]byte{
			{9},
			{27, '[', 'Z'},
			{27},
			{'q'},
		}},
	}

	done := make(chan struct{})
	go func() {
		app.readKeyboardInput()
		close(done)
	}()

	want := []KeyEvent{
		tabKey,
		shiftTabKey,
		escapeKey,
		{Key: 'q'},
	}
	for i, expected := range want {
		select {
		case event := <-app.inputChan:
			assert.Equal(t, expected, event, "event %d", i)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader did not exit on EOF")
	}
	assert.Error(t, ctx.Err(), "EOF cancels the app")
}

func TestReadKeyboardInput_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:       ctx,
		cancel:    cancel,
		inputChan: make(chan KeyEvent),
		input:     &chunkReader{chunks: [][]byte{{'x'}, {'y'}}},
	}

	done := make(chan struct{})
	go func() {
		app.readKeyboardInput()
		close(done)
	}()

	// Nobody drains inputChan; cancellation must unblock the send
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader did not exit after cancellation")
	}
}

func TestApp_GlobalBindingMode(t *testing.T) {
	app, err := newApp(goterm.NewScreen(80, 24), AppConfig{
		Keymap:      DefaultKeymap(),
		BindingMode: ModeGlobal,
		Input:       bytes.NewReader(nil),
	})
	require.NoError(t, err)
	defer app.scope.Close()

	app.keyboard.SetMode(ModeInsert)
	require.NoError(t, app.handleKeyEvent(tabKey))
	assert.Equal(t, "Inbox", focusedLabel(t, app))

	require.NoError(t, app.handleKeyEvent(KeyEvent{Key: 'd'}))
	require.NoError(t, app.handleKeyEvent(enterKey))
	assert.Equal(t, "Removed Inbox", app.Status())
	assert.Empty(t, app.keyboard.GetBindings(ModeNormal))
}

func TestApp_KeymapConflictFailsConstruction(t *testing.T) {
	km := DefaultKeymap()
	km.Reset = KeyEvent{Key: 'q'}

	_, err := newApp(goterm.NewScreen(80, 24), AppConfig{Keymap: km, Input: bytes.NewReader(nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register keybindings")
}

package tui

import (
	stderrors "errors"
	"testing"

	"github.com/dshills/keynav/pkg/errors"
	"github.com/dshills/keynav/pkg/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tabKey      = KeyEvent{IsSpecial: true, Special: "Tab"}
	shiftTabKey = KeyEvent{IsSpecial: true, Special: "Tab", Shift: true}
	escapeKey   = KeyEvent{IsSpecial: true, Special: "Escape"}
)

func press(t *testing.T, kh *KeyboardHandler, key KeyEvent) bool {
	t.Helper()
	handled, err := kh.HandleKey(key)
	require.NoError(t, err)
	return handled
}

func registryWith(calls *[]string, names ...string) *navigation.Registry {
	r := navigation.New()
	for _, name := range names {
		name := name
		r.RegisterLeaf(func() { *calls = append(*calls, name) })
	}
	return r
}

func TestBinder_DrivesRoot(t *testing.T) {
	var calls []string
	kh := NewKeyboardHandler()
	root := registryWith(&calls, "A", "B", "C")
	b := NewBinder(kh, DefaultKeymap())

	scope, err := b.Bind("list", root)
	require.NoError(t, err)
	assert.NotEmpty(t, scope.ID())
	assert.Equal(t, "list", scope.Name())

	press(t, kh, tabKey)
	press(t, kh, tabKey)
	press(t, kh, shiftTabKey)
	assert.Equal(t, []string{"A", "B", "A"}, calls)

	press(t, kh, escapeKey)
	assert.Equal(t, -1, root.ActiveIndex())
	assert.Len(t, calls, 3, "reset must not invoke anything")

	press(t, kh, shiftTabKey)
	assert.Equal(t, []string{"A", "B", "A", "C"}, calls)
}

func TestBinder_InnermostScopeIsLive(t *testing.T) {
	var outerCalls, innerCalls []string
	kh := NewKeyboardHandler()
	outer := registryWith(&outerCalls, "o1", "o2")
	inner := registryWith(&innerCalls, "i1", "i2")
	b := NewBinder(kh, DefaultKeymap())

	outerScope, err := b.Bind("outer", outer)
	require.NoError(t, err)
	innerScope, err := b.Bind("inner", inner)
	require.NoError(t, err)
	assert.Equal(t, innerScope, b.Active())

	press(t, kh, tabKey)
	assert.Equal(t, []string{"i1"}, innerCalls)
	assert.Empty(t, outerCalls, "one key press is handled once")

	require.NoError(t, innerScope.Close())
	assert.Equal(t, outerScope, b.Active())

	press(t, kh, tabKey)
	assert.Equal(t, []string{"o1"}, outerCalls)
	assert.Equal(t, []string{"i1"}, innerCalls)
}

func TestBinder_ClosingOuterScopeKeepsInnerLive(t *testing.T) {
	var outerCalls, innerCalls []string
	kh := NewKeyboardHandler()
	b := NewBinder(kh, DefaultKeymap())

	outerScope, err := b.Bind("outer", registryWith(&outerCalls, "o1"))
	require.NoError(t, err)
	innerScope, err := b.Bind("inner", registryWith(&innerCalls, "i1"))
	require.NoError(t, err)

	require.NoError(t, outerScope.Close())
	assert.Equal(t, innerScope, b.Active())
	assert.Equal(t, 1, b.Depth())

	press(t, kh, tabKey)
	assert.Equal(t, []string{"i1"}, innerCalls)
	assert.Empty(t, outerCalls)
}

func TestBinder_LastCloseUnbindsKeys(t *testing.T) {
	var calls []string
	kh := NewKeyboardHandler()
	b := NewBinder(kh, DefaultKeymap())

	scope, err := b.Bind("list", registryWith(&calls, "A"))
	require.NoError(t, err)
	assert.Len(t, kh.GetBindings(ModeNormal), 3)

	require.NoError(t, scope.Close())
	require.NoError(t, scope.Close())
	assert.Empty(t, kh.GetBindings(ModeNormal))
	assert.Nil(t, b.Active())

	assert.False(t, press(t, kh, tabKey))
	assert.Empty(t, calls)

	// Binding again reinstalls the keys
	_, err = b.Bind("again", registryWith(&calls, "B"))
	require.NoError(t, err)
	assert.True(t, press(t, kh, tabKey))
	assert.Equal(t, []string{"B"}, calls)
}

func TestBinder_ConflictIsOperationalError(t *testing.T) {
	kh := NewKeyboardHandler()
	require.NoError(t, kh.RegisterBinding(ModeNormal, shiftTabKey, func(KeyEvent) error { return nil }, "taken"))

	b := NewBinder(kh, DefaultKeymap())
	_, err := b.Bind("list", navigation.New())
	require.Error(t, err)

	var opErr *errors.OperationalError
	require.True(t, stderrors.As(err, &opErr))
	assert.Equal(t, "binding backward key", opErr.Operation)
	assert.Equal(t, "Shift-Tab", opErr.Key)

	// The forward key registered before the failure was rolled back
	assert.Len(t, kh.GetBindings(ModeNormal), 1)
	assert.Equal(t, 0, b.Depth())
}

func TestBinder_InvalidKeymap(t *testing.T) {
	kh := NewKeyboardHandler()
	b := NewBinder(kh, Keymap{Forward: tabKey, Backward: tabKey, Reset: escapeKey})

	_, err := b.Bind("list", navigation.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forward and backward both use Tab")
}

func TestBinder_NilRoot(t *testing.T) {
	b := NewBinder(NewKeyboardHandler(), DefaultKeymap())
	_, err := b.Bind("list", nil)
	assert.Error(t, err)
}

func TestBinder_GlobalMode(t *testing.T) {
	var calls []string
	kh := NewKeyboardHandler()
	b := NewBinder(kh, DefaultKeymap(), WithBindingMode(ModeGlobal))

	_, err := b.Bind("list", registryWith(&calls, "A"))
	require.NoError(t, err)

	kh.SetMode(ModeInsert)
	press(t, kh, tabKey)
	assert.Equal(t, []string{"A"}, calls)
	assert.Len(t, kh.GetGlobalBindings(), 3)
}

func TestBinder_InsertMode(t *testing.T) {
	var calls []string
	kh := NewKeyboardHandler()
	b := NewBinder(kh, DefaultKeymap(), WithBindingMode(ModeInsert))

	_, err := b.Bind("form", registryWith(&calls, "A"))
	require.NoError(t, err)
	assert.Len(t, kh.GetBindings(ModeInsert), 3)
	assert.Empty(t, kh.GetBindings(ModeNormal))

	assert.False(t, press(t, kh, tabKey), "triggers are not live outside insert mode")
	assert.Empty(t, calls)

	kh.SetMode(ModeInsert)
	assert.True(t, press(t, kh, tabKey))
	assert.Equal(t, []string{"A"}, calls)
}

func TestBinder_CallbackMayCloseScope(t *testing.T) {
	kh := NewKeyboardHandler()
	b := NewBinder(kh, DefaultKeymap())
	root := navigation.New()

	var scope *Scope
	root.RegisterLeaf(func() { _ = scope.Close() })

	var err error
	scope, err = b.Bind("modal", root)
	require.NoError(t, err)

	press(t, kh, tabKey)
	assert.Equal(t, 0, b.Depth())
}

func TestKeymap_Validate(t *testing.T) {
	tests := []struct {
		name    string
		keymap  Keymap
		wantErr string
	}{
		{name: "default", keymap: DefaultKeymap()},
		{name: "missing reset", keymap: Keymap{Forward: tabKey, Backward: shiftTabKey}, wantErr: "reset key is not set"},
		{name: "reset equals backward", keymap: Keymap{Forward: tabKey, Backward: escapeKey, Reset: escapeKey}, wantErr: "backward and reset both use Escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseKeymap(t *testing.T) {
	km, err := ParseKeymap("Ctrl-n", "Ctrl-p", "Escape")
	require.NoError(t, err)
	assert.Equal(t, KeyEvent{Key: 'n', Ctrl: true}, km.Forward)
	assert.Equal(t, KeyEvent{Key: 'p', Ctrl: true}, km.Backward)
	assert.Equal(t, escapeKey, km.Reset)

	_, err = ParseKeymap("Tab", "Super-Tab", "Escape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backward key")
}

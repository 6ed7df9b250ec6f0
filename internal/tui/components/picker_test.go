package components

import (
	"testing"

	"github.com/alecthomas/assert"

	"peekd/internal/command"
	"peekd/internal/config"
)

func testRegistry(t *testing.T) *command.Registry {
	t.Helper()
	registry, err := command.NewRegistry(config.NewTestConfig().Commands)
	if err != nil {
		t.Fatal(err)
	}
	return registry
}

func TestPickerChoose(t *testing.T) {
	p := NewCommandPicker(testRegistry(t))

	desc, ok := p.Choose('h')
	assert.True(t, ok)
	assert.Equal(t, "head", desc.Program)
	assert.Equal(t, "--lines", desc.LineFlag)

	desc, ok = p.Choose('s')
	assert.True(t, ok)
	assert.Equal(t, "shuf", desc.Program)
	assert.True(t, desc.SingleFileOnly)
}

func TestPickerUnregisteredKey(t *testing.T) {
	p := NewCommandPicker(testRegistry(t))

	_, ok := p.Choose('z')
	assert.False(t, ok)
}

func TestPickerHelpToggle(t *testing.T) {
	p := NewCommandPicker(testRegistry(t))

	_, ok := p.Choose('?')
	assert.False(t, ok)
	assert.Contains(t, p.View(), "head")

	// Second press goes back to the key strip
	_, ok = p.Choose('?')
	assert.False(t, ok)

	// Choosing resets the help state for the next interaction
	p.Choose('?')
	_, ok = p.Choose('t')
	assert.True(t, ok)
	assert.Contains(t, p.View(), "?: help")
}

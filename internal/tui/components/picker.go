package components

import (
	"fmt"
	"strings"

	"peekd/internal/command"
	"peekd/internal/tui/styles"
)

// CommandPicker is the interactive command selection overlay. The picker
// stays up until a registered key is pressed or the interaction is
// cancelled; the reserved help key toggles a listing of what each key
// runs instead of choosing.
type CommandPicker struct {
	registry *command.Registry
	showHelp bool
}

// NewCommandPicker creates a picker over the registry.
func NewCommandPicker(registry *command.Registry) *CommandPicker {
	return &CommandPicker{registry: registry}
}

// Choose maps a pressed key to a descriptor. The second return is false
// while the picker should stay up: either the help listing was toggled or
// the key is not registered.
func (p *CommandPicker) Choose(key rune) (command.Descriptor, bool) {
	if key == command.HelpKey {
		p.showHelp = !p.showHelp
		return command.Descriptor{}, false
	}
	desc, ok := p.registry.Lookup(key)
	if !ok {
		return command.Descriptor{}, false
	}
	p.Reset()
	return desc, true
}

// Reset hides the help listing for the next interaction.
func (p *CommandPicker) Reset() {
	p.showHelp = false
}

// View renders the key strip, or the help listing when toggled.
func (p *CommandPicker) View() string {
	var s strings.Builder

	s.WriteString(styles.Theme.Title.Render("Choose command") + "\n")

	if p.showHelp {
		for _, d := range p.registry.Descriptors() {
			line := fmt.Sprintf("  %c  %s", d.Key, d.Program)
			if d.SingleFileOnly {
				line += styles.Theme.Help.Render("  (one file)")
			}
			s.WriteString(line + "\n")
		}
		s.WriteString("\n" + styles.Theme.Help.Render("?: back • esc: cancel"))
	} else {
		keys := make([]string, 0, p.registry.Len())
		for _, k := range p.registry.Keys() {
			keys = append(keys, string(k))
		}
		s.WriteString("  " + strings.Join(keys, " ") + "\n")
		s.WriteString("\n" + styles.Theme.Help.Render("?: help • esc: cancel"))
	}

	return styles.Theme.Overlay.Render(s.String())
}

package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"peekd/internal/tui/styles"
)

// Pager displays a generated view's captured output in a scrollable
// viewport.
type Pager struct {
	viewport viewport.Model
	viewName string
	ready    bool
}

// NewPager creates an empty pager.
func NewPager() *Pager {
	return &Pager{}
}

// SetSize resizes the viewport, reserving rows for the header and status
// line.
func (p *Pager) SetSize(width, height int) {
	chrome := 4
	if height < chrome+1 {
		height = chrome + 1
	}
	if !p.ready {
		p.viewport = viewport.New(width, height-chrome)
		p.ready = true
		return
	}
	p.viewport.Width = width
	p.viewport.Height = height - chrome
}

// Show replaces the pager content and scrolls back to the top.
func (p *Pager) Show(viewName, content string) {
	if !p.ready {
		p.viewport = viewport.New(80, 24)
		p.ready = true
	}
	p.viewName = viewName
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

// ViewName returns the name of the displayed view.
func (p *Pager) ViewName() string {
	return p.viewName
}

// Update forwards scroll keys to the viewport.
func (p *Pager) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the header and the visible slice of content.
func (p *Pager) View() string {
	header := styles.Theme.ViewName.Render(p.viewName)
	scroll := styles.Theme.Help.Render(fmt.Sprintf("%3.f%%", p.viewport.ScrollPercent()*100))
	return fmt.Sprintf("%s  %s\n%s", header, scroll, p.viewport.View())
}

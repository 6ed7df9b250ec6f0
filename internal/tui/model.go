// Package tui implements the interactive front-end: a file browser for
// marking target files, a command picker, prompts, and a pager that
// displays generated views. All view mutation funnels through the
// view.Controller on the single bubbletea update goroutine.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"peekd/internal/command"
	"peekd/internal/config"
	"peekd/internal/errors"
	"peekd/internal/log"
	"peekd/internal/tui/common"
	"peekd/internal/tui/components"
	"peekd/internal/tui/messages"
	"peekd/internal/tui/styles"
	"peekd/internal/view"
	"peekd/internal/watch"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptPath
	promptLineCount
	promptDelimiter
)

type pendingOp int

const (
	opNone pendingOp = iota
	opCreate
	opSwitch
)

// Model is the root bubbletea model.
type Model struct {
	cfg        *config.Config
	registry   *command.Registry
	controller *view.Controller
	watcher    *watch.Watcher

	mode     common.Mode
	prevMode common.Mode

	fileList  *components.FileList
	statusBar *components.StatusBar
	picker    *components.CommandPicker
	pager     *components.Pager
	input     textinput.Model

	prompt      promptKind
	pending     pendingOp
	pendingDesc command.Descriptor

	width    int
	height   int
	showHelp bool
}

// New builds the TUI model. The watcher may be nil when watch mode is
// disabled.
func New(cfg *config.Config, registry *command.Registry, controller *view.Controller, watcher *watch.Watcher) *Model {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	fl := components.NewFileList()
	if err := fl.Scan(wd); err != nil {
		log.LogWithFields(log.F("dir", wd), log.F("error", err)).Warn("could not read directory")
	}

	input := textinput.New()
	input.CharLimit = 256
	input.Width = 48

	return &Model{
		cfg:        cfg,
		registry:   registry,
		controller: controller,
		watcher:    watcher,
		mode:       common.Browse,
		fileList:   fl,
		statusBar:  components.NewStatusBar(),
		picker:     components.NewCommandPicker(registry),
		pager:      components.NewPager(),
		input:      input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChange(m.watcher)
	}
	return nil
}

// waitForChange blocks on the watcher's channel, feeding file changes
// into the update loop one at a time.
func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes()
		if !ok {
			return messages.WatchStoppedMsg{}
		}
		return messages.FileChangedMsg{Path: change.Path}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pager.SetSize(msg.Width, msg.Height)
		return m, nil

	case messages.ErrorMsg:
		m.statusBar.SetError(msg.Err)
		return m, nil

	case messages.StatusMsg:
		m.statusBar.SetText(msg.Text)
		return m, nil

	case messages.FileChangedMsg:
		m.refreshViewsBackedBy(msg.Path)
		return m, waitForChange(m.watcher)

	case messages.WatchStoppedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case common.Picker:
		return m.handlePickerKeys(msg)
	case common.Prompt:
		return m.handlePromptKeys(msg)
	case common.Pager:
		return m.handlePagerKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.fileList.MoveCursor(1)
	case "k", "up":
		m.fileList.MoveCursor(-1)
	case "g":
		m.fileList.GotoTop()
	case "G":
		m.fileList.GotoBottom()

	case "h", "left":
		parent := filepath.Dir(m.fileList.CurrentDir())
		if parent != m.fileList.CurrentDir() {
			m.scanDir(parent)
		}
	case "l", "right", "enter":
		if entry, ok := m.fileList.EntryAtCursor(); ok && entry.IsDir {
			m.scanDir(entry.Path)
		}

	case " ":
		m.fileList.ToggleMark()
	case "v":
		m.fileList.ToggleVisual()
	case "esc":
		m.fileList.ClearMarks()
		m.statusBar.Clear()

	case "c":
		m.pending = opCreate
		m.picker.Reset()
		m.prevMode = common.Browse
		m.mode = common.Picker

	case "o":
		if name, ok := m.latestViewName(); ok {
			m.showView(name)
		} else {
			m.statusBar.SetText("no views open")
		}

	case "?":
		m.showHelp = !m.showHelp
	}

	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		// Cancelling the picker aborts the whole operation
		m.pending = opNone
		m.picker.Reset()
		m.mode = m.prevMode
		m.statusBar.SetText("cancelled")
		return m, nil
	}

	runes := []rune(msg.String())
	if len(runes) != 1 {
		return m, nil
	}

	desc, chosen := m.picker.Choose(runes[0])
	if !chosen {
		// Help toggled or unregistered key: the picker stays up
		return m, nil
	}

	// Leave the picker before dispatching so a follow-up prompt
	// returns to where the interaction started, not to the picker.
	m.mode = m.prevMode

	switch m.pending {
	case opCreate:
		m.startCreate(desc)
	case opSwitch:
		m.switchCurrentView(desc)
	}
	return m, nil
}

// startCreate resolves the target file set for a chosen descriptor. When
// neither marks nor the cursor yield a file, the path prompt takes over
// and the create completes on submit.
func (m *Model) startCreate(desc command.Descriptor) {
	files, err := view.ResolveFiles(m.fileList.MarkedFiles(), m.fileList.FileAtCursor(), nil)
	if err != nil {
		if errors.IsNoFileSelected(err) {
			m.pendingDesc = desc
			m.openPrompt(promptPath, "file path: ")
			return
		}
		m.abortOp(err)
		return
	}
	m.pending = opNone
	m.createView(desc, files)
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closePrompt()
		m.pending = opNone
		m.statusBar.SetText("cancelled")
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		kind := m.prompt
		m.closePrompt()
		m.submitPrompt(kind, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitPrompt(kind promptKind, value string) {
	switch kind {
	case promptPath:
		desc := m.pendingDesc
		m.pending = opNone
		// Run the typed path through the resolver's prompt source so the
		// existence check and empty-input handling match the CLI's.
		files, err := view.ResolveFiles(nil, "", func() (string, bool) { return value, true })
		if err != nil {
			m.abortOp(err)
			return
		}
		m.createView(desc, files)

	case promptLineCount:
		if value == "" {
			return
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			m.statusBar.SetError(errors.Newf("invalid line count %q", value))
			return
		}
		m.refreshCurrentView(n)

	case promptDelimiter:
		m.columnifyCurrentView(value)
	}
}

func (m *Model) handlePagerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = common.Browse
		return m, nil
	case "ctrl+c":
		return m, tea.Quit

	case "r":
		m.refreshCurrentView(0)
		return m, nil
	case "R":
		m.openPrompt(promptLineCount, "line count: ")
		return m, nil

	case "s":
		m.pending = opSwitch
		m.picker.Reset()
		m.prevMode = common.Pager
		m.mode = common.Picker
		return m, nil

	case "t":
		m.columnifyCurrentView("")
		return m, nil
	case "T":
		m.openPrompt(promptDelimiter, "delimiter: ")
		return m, nil

	case "x":
		m.closeCurrentView()
		return m, nil

	case "tab":
		m.cycleView(1)
		return m, nil
	case "shift+tab":
		m.cycleView(-1)
		return m, nil
	}

	return m, m.pager.Update(msg)
}

// View operation plumbing

func (m *Model) createView(desc command.Descriptor, files []string) {
	v, err := m.controller.Create(desc, files, 0)
	if err != nil {
		m.abortOp(err)
		if v == nil {
			return
		}
		// Invocation failed but any partial output is kept visible
		m.showView(v.Name)
		return
	}

	m.watchFiles(v.State.Files)
	m.fileList.ClearMarks()
	m.statusBar.SetText(fmt.Sprintf("created %q", v.Name))
	m.showView(v.Name)
}

func (m *Model) refreshCurrentView(lineCount int) {
	v, ok := m.currentView()
	if !ok {
		return
	}
	if err := m.controller.Refresh(v, lineCount); err != nil {
		m.statusBar.SetError(err)
	} else {
		m.statusBar.SetText(fmt.Sprintf("refreshed %q", v.Name))
	}
	m.showView(v.Name)
}

func (m *Model) switchCurrentView(desc command.Descriptor) {
	v, ok := m.currentView()
	if !ok {
		return
	}
	if err := m.controller.SwitchCommand(v, desc, 0); err != nil {
		m.statusBar.SetError(err)
		m.showView(v.Name)
		return
	}
	m.statusBar.SetText(fmt.Sprintf("switched to %q", v.Name))
	m.showView(v.Name)
}

func (m *Model) columnifyCurrentView(delimiter string) {
	v, ok := m.currentView()
	if !ok {
		return
	}
	if err := m.controller.Columnify(v, delimiter); err != nil {
		m.statusBar.SetError(err)
		return
	}
	m.statusBar.SetText("columnified")
	m.showView(v.Name)
}

func (m *Model) closeCurrentView() {
	v, ok := m.currentView()
	if !ok {
		return
	}
	m.unwatchFiles(v.State.Files)
	m.controller.Store().Close(v.Name)

	if name, ok := m.latestViewName(); ok {
		m.showView(name)
	} else {
		m.mode = common.Browse
	}
	m.statusBar.SetText(fmt.Sprintf("closed %q", v.Name))
}

func (m *Model) cycleView(delta int) {
	names := m.controller.Store().Names()
	if len(names) < 2 {
		return
	}
	current := m.pager.ViewName()
	for i, name := range names {
		if name == current {
			next := (i + delta + len(names)) % len(names)
			m.showView(names[next])
			return
		}
	}
	m.showView(names[0])
}

func (m *Model) refreshViewsBackedBy(path string) {
	st := m.controller.Store()
	for _, name := range st.Names() {
		v, ok := st.Get(name)
		if !ok || v.State == nil {
			continue
		}
		for _, f := range v.State.Files {
			if f != path {
				continue
			}
			if err := m.controller.Refresh(v, 0); err != nil {
				m.statusBar.SetError(err)
			}
			if m.mode == common.Pager && m.pager.ViewName() == v.Name {
				m.pager.Show(v.Name, v.Content())
			}
			break
		}
	}
}

// Helpers

func (m *Model) scanDir(dir string) {
	if err := m.fileList.Scan(dir); err != nil {
		m.statusBar.SetError(err)
	}
}

func (m *Model) currentView() (*view.View, bool) {
	return m.controller.Store().Get(m.pager.ViewName())
}

func (m *Model) latestViewName() (string, bool) {
	names := m.controller.Store().Names()
	if len(names) == 0 {
		return "", false
	}
	return names[len(names)-1], true
}

func (m *Model) showView(name string) {
	v, ok := m.controller.Store().Get(name)
	if !ok {
		return
	}
	m.pager.Show(v.Name, v.Content())
	m.mode = common.Pager
}

func (m *Model) openPrompt(kind promptKind, placeholder string) {
	m.prompt = kind
	m.prevMode = m.mode
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	m.mode = common.Prompt
}

func (m *Model) closePrompt() {
	m.input.Blur()
	m.prompt = promptNone
	m.mode = m.prevMode
}

// abortOp surfaces an operation error; cancellation is reported quietly.
func (m *Model) abortOp(err error) {
	if errors.IsCancelled(err) {
		m.statusBar.SetText("cancelled")
	} else {
		m.statusBar.SetError(err)
		log.LogWithError(err).Debug("operation aborted")
	}
}

func (m *Model) watchFiles(files []string) {
	if m.watcher == nil {
		return
	}
	for _, f := range files {
		if err := m.watcher.AddFile(f); err != nil {
			log.LogWithFields(log.F("file", f), log.F("error", err)).Warn("cannot watch file")
		}
	}
}

func (m *Model) unwatchFiles(files []string) {
	if m.watcher == nil {
		return
	}
	// Keep watching files still backing other views
	still := make(map[string]bool)
	st := m.controller.Store()
	for _, name := range st.Names() {
		if v, ok := st.Get(name); ok && v.State != nil {
			for _, f := range v.State.Files {
				still[f] = true
			}
		}
	}
	for _, f := range files {
		if !still[f] {
			m.watcher.RemoveFile(f)
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string

	switch m.mode {
	case common.Picker:
		body = m.picker.View()
	case common.Prompt:
		body = m.promptView()
	case common.Pager:
		body = m.pager.View()
	default:
		body = m.browseView()
	}

	sections := []string{body}
	if status := m.statusBar.View(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.keyHelp())

	return styles.Theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) browseView() string {
	var s strings.Builder
	s.WriteString(styles.Theme.Title.Render("peekd") + "\n")
	s.WriteString(m.fileList.View())
	if m.showHelp {
		s.WriteString("\n" + m.helpView())
	}
	return s.String()
}

func (m *Model) promptView() string {
	label := ""
	switch m.prompt {
	case promptPath:
		label = "File to view"
	case promptLineCount:
		label = "New line count"
	case promptDelimiter:
		label = "Column delimiter (empty = from file type)"
	}

	var s strings.Builder
	s.WriteString(styles.Theme.Title.Render(label) + "\n")
	s.WriteString(m.input.View() + "\n\n")
	s.WriteString(styles.Theme.Help.Render("enter: confirm • esc: cancel"))
	return styles.Theme.Overlay.Render(s.String())
}

func (m *Model) keyHelp() string {
	switch m.mode {
	case common.Pager:
		return styles.Theme.Help.Render(
			"r: refresh • R: refresh count • s: switch command • t: columnify • T: delimiter • tab: next view • x: close • esc: back")
	case common.Browse:
		help := "space: mark • v: visual • c: create view • o: open view • ?: help • q: quit"
		if m.fileList.VisualMode() {
			help = "VISUAL • " + help
		}
		return styles.Theme.Help.Render(help)
	default:
		return ""
	}
}

func (m *Model) helpView() string {
	var s strings.Builder
	s.WriteString(styles.Theme.Help.Render("Commands:") + "\n")
	for _, d := range m.registry.Descriptors() {
		s.WriteString(fmt.Sprintf("  %c  %s %s N\n", d.Key, d.Program, d.LineFlag))
	}
	return s.String()
}

// Run loads the interactive session and blocks until it exits.
func Run(cfg *config.Config) error {
	registry, err := command.NewRegistry(cfg.Commands)
	if err != nil {
		return err
	}

	styles.Apply(cfg)

	var watcher *watch.Watcher
	if cfg.WatchMode.Enabled {
		watcher, err = watch.New(cfg.WatchDebounce())
		if err != nil {
			return errors.Wrap(err, "watch mode unavailable")
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	controller := view.NewController(cfg, view.NewStore(), view.ExecRunner{})
	m := New(cfg, registry, controller, watcher)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

package view

import (
	"strconv"

	"peekd/internal/command"
	"peekd/internal/config"
	"peekd/internal/errors"
	"peekd/internal/log"
)

// Controller implements the four user-facing view operations. Each one is
// a transition over a view's State: Create is the only entry, Refresh
// self-loops varying the line count, SwitchCommand moves to another
// program holding the file list fixed, and Columnify reshapes displayed
// content without touching the generating state.
type Controller struct {
	cfg    *config.Config
	store  *Store
	runner Runner
}

// NewController creates a controller over the given view store.
func NewController(cfg *config.Config, store *Store, runner Runner) *Controller {
	return &Controller{cfg: cfg, store: store, runner: runner}
}

// Store exposes the controller's view store.
func (c *Controller) Store() *Store {
	return c.store
}

// Create builds a new view from a chosen descriptor and resolved file
// list, then executes the generating program into it. A lineCount of 0
// means "use the configured default". The single-file constraint is
// validated before any view or process side effect.
func (c *Controller) Create(desc command.Descriptor, files []string, lineCount int) (*View, error) {
	if lineCount <= 0 {
		lineCount = c.cfg.View.DefaultLineCount
	}

	state, err := NewState(desc, files, lineCount)
	if err != nil {
		return nil, err
	}

	name := DeriveName(state, c.store.Exists)
	v := c.store.Obtain(name)
	v.State = state

	log.LogWithFields(log.F("view", name), log.F("program", desc.Program)).Info("view created")

	if err := Execute(c.runner, v); err != nil {
		return v, err
	}
	return v, nil
}

// Refresh re-executes the view's generating program. A positive lineCount
// replaces the state's line count first; the view is then renamed by
// re-deriving its name, which is a no-op since line count does not affect
// naming.
func (c *Controller) Refresh(v *View, lineCount int) error {
	if v.State == nil {
		return errors.New("view has no generating state")
	}
	if lineCount > 0 {
		v.State.LineCount = strconv.Itoa(lineCount)
		c.rename(v)
	}
	return Execute(c.runner, v)
}

// SwitchCommand rebuilds the view's state around a new descriptor,
// carrying over the existing file list and, absent an explicit override,
// the existing line count. The single-file constraint is validated
// against the carried-over list before the prior state is touched.
func (c *Controller) SwitchCommand(v *View, desc command.Descriptor, lineCount int) error {
	if v.State == nil {
		return errors.New("view has no generating state")
	}
	if lineCount <= 0 {
		prior, err := strconv.Atoi(v.State.LineCount)
		if err != nil {
			prior = c.cfg.View.DefaultLineCount
		}
		lineCount = prior
	}

	state, err := NewState(desc, v.State.Files, lineCount)
	if err != nil {
		return err
	}

	v.State = state
	c.rename(v)

	log.LogWithFields(log.F("view", v.Name), log.F("program", desc.Program)).Info("view command switched")

	return Execute(c.runner, v)
}

// Columnify pipes the view's current content through the configured
// formatter, replacing the content with the formatted output. The column
// separator comes from the explicit delimiter when given, otherwise from
// the delimiter table keyed by the view's sole file. Views generated from
// more than one file cannot be columnified.
func (c *Controller) Columnify(v *View, delimiter string) error {
	if v.State == nil {
		return errors.New("view has no generating state")
	}
	if len(v.State.Files) > 1 {
		return errors.ErrMultiFile.WithView(v.Name)
	}

	if delimiter == "" {
		delimiter, _ = c.cfg.SeparatorFor(v.State.Files[0])
	}

	out, err := Columnify(c.runner, c.cfg.Columnify.Program, delimiter, []byte(v.Content()))
	if err != nil {
		return err
	}
	v.setContent(string(out))
	return nil
}

// Columnify runs content through the table formatter. An empty delimiter
// omits the --separator argument, leaving the formatter's whitespace
// splitting in effect.
func Columnify(runner Runner, program, delimiter string, content []byte) ([]byte, error) {
	argv := []string{program, "--table"}
	if delimiter != "" {
		argv = append(argv, "--separator", delimiter)
	}
	return runner.RunWithInput(argv, content)
}

// rename re-derives the view's name from its current state, ignoring the
// view's own name when probing for collisions so renaming is idempotent.
func (c *Controller) rename(v *View) {
	name := DeriveName(v.State, func(n string) bool {
		return n != v.Name && c.store.Exists(n)
	})
	c.store.Rename(v.Name, name)
}

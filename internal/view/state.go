// Package view implements the generated-view lifecycle: the state a view
// was produced from, the naming scheme that keeps views distinguishable,
// the executor that shells out to the generating program, and the
// controller operations (create, refresh, switch, columnify).
package view

import (
	"strconv"

	"peekd/internal/command"
	"peekd/internal/errors"
)

// State records how a view was produced. One instance exists per generated
// view and is owned by it. Only the controller mutates state: Refresh
// replaces LineCount, SwitchCommand replaces the whole record.
type State struct {
	Program        string
	LineFlag       string
	ExtraArgs      []string
	SingleFileOnly bool
	LineCount      string
	Files          []string
}

// NewState builds a state from a command descriptor and a resolved file
// list. The single-file constraint is enforced here, before any process
// invocation or view mutation.
func NewState(desc command.Descriptor, files []string, lineCount int) (*State, error) {
	if len(files) == 0 {
		return nil, errors.ErrNoFileSelected
	}
	if desc.SingleFileOnly && len(files) > 1 {
		return nil, errors.ErrTooManyFiles
	}
	if lineCount < 1 {
		return nil, errors.Newf("line count must be positive, got %d", lineCount)
	}

	return &State{
		Program:        desc.Program,
		LineFlag:       desc.LineFlag,
		ExtraArgs:      append([]string(nil), desc.ExtraArgs...),
		SingleFileOnly: desc.SingleFileOnly,
		LineCount:      strconv.Itoa(lineCount),
		Files:          append([]string(nil), files...),
	}, nil
}

// Argv assembles the full argument vector for the generating program:
// program lineFlag lineCount extraArgs... files...
func (s *State) Argv() []string {
	argv := make([]string, 0, 3+len(s.ExtraArgs)+len(s.Files))
	argv = append(argv, s.Program, s.LineFlag, s.LineCount)
	argv = append(argv, s.ExtraArgs...)
	argv = append(argv, s.Files...)
	return argv
}

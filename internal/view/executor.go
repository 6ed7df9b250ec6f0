package view

import (
	"bytes"
	"os/exec"

	"peekd/internal/errors"
	"peekd/internal/log"
)

// Runner invokes an external program. It exists as an interface so the
// controller can be tested without spawning processes.
type Runner interface {
	// Run executes argv and returns combined stdout and stderr.
	Run(argv []string) ([]byte, error)
	// RunWithInput executes argv feeding input on stdin and returns stdout.
	RunWithInput(argv []string, input []byte) ([]byte, error)
}

// ExecRunner runs programs via os/exec, synchronously and one at a time.
// No timeout is enforced; a hung program hangs the operation.
type ExecRunner struct{}

// Run executes argv and captures interleaved stdout and stderr.
func (ExecRunner) Run(argv []string) ([]byte, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, errors.NewProcessError(argv[0], argv, err)
	}
	return out, nil
}

// RunWithInput executes argv with input piped to stdin.
func (ExecRunner) RunWithInput(argv []string, input []byte) ([]byte, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), errors.NewProcessError(argv[0], argv, err)
	}
	return stdout.Bytes(), nil
}

// Execute runs the view's generating program and replaces the view content
// with whatever the capture produced. On failure the partially-filled
// content is kept and the error propagates; re-executing is idempotent, so
// there is nothing to roll back.
func Execute(runner Runner, target *View) error {
	argv := target.State.Argv()
	log.LogWithFields(log.F("view", target.Name), log.F("program", argv[0])).Debug("executing view command")

	out, err := runner.Run(argv)
	target.setContent(string(out))
	if err != nil {
		return err
	}
	return nil
}

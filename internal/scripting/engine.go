package scripting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/sadopc/endecoder/internal/core/codec"
	"github.com/sadopc/endecoder/internal/export/codegen"
)

// ErrMismatch is returned by Verify when a snippet prints the wrong value.
var ErrMismatch = errors.New("snippet output mismatch")

// Engine executes JavaScript snippets in a sandboxed runtime.
type Engine struct {
	timeout time.Duration
}

// NewEngine creates a new scripting engine with the given timeout.
func NewEngine(timeout time.Duration) *Engine {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Engine{timeout: timeout}
}

// Result holds script execution results.
type Result struct {
	Logs []string
	Err  error
}

// Run executes script and collects its console output.
func (e *Engine) Run(script string) *Result {
	api := newScriptAPI()
	err := e.run(script, api)
	return &Result{
		Logs: api.logs,
		Err:  err,
	}
}

// Verify generates the JavaScript snippet for op and input, runs it, and
// checks that it prints what the Go codec produces.
func (e *Engine) Verify(op codegen.Op, input string) (*Result, error) {
	code, err := codegen.Generate(op, codegen.LangJavaScript, input)
	if err != nil {
		return nil, err
	}

	clipped := codegen.Clip(input)
	var want string
	switch op {
	case codegen.OpEncode:
		want = codec.EncodeString(clipped)
	case codegen.OpDecode:
		want, err = codec.DecodeString(clipped)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}

	res := e.Run(code)
	if res.Err != nil {
		return res, res.Err
	}
	got := strings.Join(res.Logs, "\n")
	if got != want {
		return res, fmt.Errorf("%w: got %q, want %q", ErrMismatch, got, want)
	}
	return res, nil
}

func (e *Engine) run(script string, api *ScriptAPI) error {
	vm := goja.New()
	if err := api.registerOnRuntime(vm); err != nil {
		return fmt.Errorf("setting up runtime: %w", err)
	}

	// Set up timeout via context
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	// Interrupt VM on timeout
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt("script timeout exceeded")
		case <-done:
		}
	}()

	_, err := vm.RunString(script)
	close(done)

	if err != nil {
		return fmt.Errorf("script error: %w", err)
	}
	return nil
}

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"
)

// StdioTransport runs a server as a child process and exchanges
// newline-delimited JSON-RPC messages on its stdin/stdout.
type StdioTransport struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	stderr  io.ReadCloser
	scanner *bufio.Scanner
	encoder *json.Encoder
	logger  *slog.Logger

	mu     sync.Mutex
	closed atomic.Bool

	stderrMu  sync.Mutex
	stderrBuf []byte
}

// NewStdioTransport launches the configured command and wires up its pipes.
func NewStdioTransport(config ServerConfig, logger *slog.Logger) (*StdioTransport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.Command(config.Command, config.Args...)
	cmd.Env = os.Environ()
	for k, v := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start process: %w", err)
	}

	t := &StdioTransport{
		cmd:     cmd,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		scanner: bufio.NewScanner(stdout),
		encoder: json.NewEncoder(stdin),
		logger:  logger.With("server", config.Name),
	}
	// 1MB max message size
	t.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	go t.readStderr()
	return t, nil
}

func (t *StdioTransport) readStderr() {
	buf := make([]byte, 4096)
	for {
		n, err := t.stderr.Read(buf)
		if n > 0 {
			t.stderrMu.Lock()
			t.stderrBuf = append(t.stderrBuf, buf[:n]...)
			t.stderrMu.Unlock()
			t.logger.Debug("mcp server stderr", "output", string(buf[:n]))
		}
		if err != nil {
			if err != io.EOF {
				t.logger.Error("error reading stderr", "error", err)
			}
			return
		}
	}
}

// Send sends one message. Safe for concurrent use.
func (t *StdioTransport) Send(ctx context.Context, message *Message) error {
	if t.closed.Load() {
		return fmt.Errorf("transport is closed")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	message.Jsonrpc = "2.0"
	if err := t.encoder.Encode(message); err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return nil
}

type received struct {
	msg *Message
	err error
}

// Receive reads the next message. The blocking read happens on its own
// goroutine so a cancelled context returns immediately; a message read after
// abandonment is dropped.
func (t *StdioTransport) Receive(ctx context.Context) (*Message, error) {
	if t.closed.Load() {
		return nil, fmt.Errorf("transport is closed")
	}

	ch := make(chan received, 1)
	go func() {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				ch <- received{err: fmt.Errorf("scanner error: %w", err)}
			} else {
				ch <- received{err: io.EOF}
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(t.scanner.Bytes(), &msg); err != nil {
			ch <- received{err: fmt.Errorf("failed to unmarshal message: %w", err)}
			return
		}
		ch <- received{msg: &msg}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.msg, r.err
	}
}

// Close shuts the child process down, interrupt first, kill if it lingers.
func (t *StdioTransport) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stdin != nil {
		t.stdin.Close()
	}

	if t.cmd != nil && t.cmd.Process != nil {
		t.cmd.Process.Signal(os.Interrupt)

		done := make(chan error, 1)
		go func() { done <- t.cmd.Wait() }()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.cmd.Process.Kill()
			<-done
		}
	}

	if t.stdout != nil {
		t.stdout.Close()
	}
	if t.stderr != nil {
		t.stderr.Close()
	}
	return nil
}

// Stderr returns accumulated stderr output.
func (t *StdioTransport) Stderr() []byte {
	t.stderrMu.Lock()
	defer t.stderrMu.Unlock()
	out := make([]byte, len(t.stderrBuf))
	copy(out, t.stderrBuf)
	return out
}

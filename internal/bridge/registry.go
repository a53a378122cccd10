package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ralt/photometa/internal/models"
	"github.com/sirupsen/logrus"
)

// Handler executes a command with its raw JSON arguments
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Registry maps command names to handlers
type Registry struct {
	commands map[string]Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Handler)}
}

// NewDefaultRegistry creates a registry with the built-in commands
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(GreetCommand, func(_ context.Context, args json.RawMessage) (any, error) {
		var in GreetArgs
		if err := DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return Greet(in.Name), nil
	})
	return r
}

// Register sets the handler for cmd. It panics if cmd already exists.
func (r *Registry) Register(cmd string, h Handler) {
	if _, exists := r.commands[cmd]; exists {
		panic(fmt.Sprintf("command %s already registered", cmd))
	}
	r.commands[cmd] = h
}

// Lookup returns the handler and whether it exists
func (r *Registry) Lookup(cmd string) (Handler, bool) {
	h, ok := r.commands[cmd]
	return h, ok
}

// Commands returns the registered command names in sorted order
func (r *Registry) Commands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches payload to cmd and returns the JSON-encoded result
func (r *Registry) Invoke(ctx context.Context, cmd string, payload []byte) ([]byte, error) {
	h, ok := r.Lookup(cmd)
	if !ok {
		return nil, commandError(cmd, fmt.Errorf("unknown command"))
	}

	logrus.Debugf("Invoking %s with %d byte payload", cmd, len(payload))

	result, err := h(ctx, json.RawMessage(payload))
	if err != nil {
		return nil, commandError(cmd, err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, commandError(cmd, fmt.Errorf("failed to encode result: %w", err))
	}
	return out, nil
}

// DecodeArgs strictly decodes a JSON object into v. An empty payload
// leaves v at its zero value.
func DecodeArgs(args json.RawMessage, v any) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	// The payload must hold exactly one value
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid arguments: trailing data after JSON object")
	}
	return nil
}

func commandError(cmd string, err error) error {
	return &models.PhotoMetaError{Type: models.ErrCommand, Path: cmd, Err: err}
}

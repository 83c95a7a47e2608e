// Package mocks provides an in-memory otel.Otel for tests. Every scope it
// opens is kept so tests can inspect attributes and traced errors.
package mocks

import (
	"context"
	"seatdesk/infras/otel"
	"sync"
)

type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := NewScope()
	scope.Name = spanName

	o.mu.Lock()
	o.scopes = append(o.scopes, scope)
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns the scopes opened so far, oldest first.
func (o *Otel) Scopes() []*Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]*Scope(nil), o.scopes...)
}

func NewOtel() *Otel {
	return &Otel{}
}

type Scope struct {
	Name       string
	Ended      bool
	Events     []string
	Errors     []error
	Attributes map[string]any
}

func (s *Scope) End() {
	s.Ended = true
}

func (s *Scope) TraceError(err error) {
	s.Errors = append(s.Errors, err)
}

func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *Scope) AddEvent(name string) {
	s.Events = append(s.Events, name)
}

func (s *Scope) SetAttribute(key string, value any) {
	s.Attributes[key] = value
}

func (s *Scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

func NewScope() *Scope {
	return &Scope{Attributes: map[string]any{}}
}

// Package di provides a minimal service container with typed tokens.
//
// Services are registered lazily: a factory runs the first time its token is
// resolved, and the instance is memoized for the rest of the process lifetime.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry is the read side of the container.
type ServiceRegistry interface {
	// Get returns a service registered under name, or nil if absent.
	Get(name string) any
}

// Container is the full container interface handed to modules.
type Container interface {
	ServiceRegistry

	// Register stores a ready-made instance under name.
	Register(name string, svc any)

	// RegisterFactory stores a lazy constructor under name.
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		instances: make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
	}
}

type container struct {
	mu        sync.Mutex
	instances map[string]any
	factories map[string]func(ServiceRegistry) any
}

func (c *container) Register(name string, svc any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[name] = svc
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
}

func (c *container) Get(name string) any {
	c.mu.Lock()
	if svc, ok := c.instances[name]; ok {
		c.mu.Unlock()
		return svc
	}
	factory, ok := c.factories[name]
	c.mu.Unlock()

	if !ok {
		return nil
	}

	// Run the factory outside the lock so factories can resolve other tokens.
	svc := factory(c)

	c.mu.Lock()
	c.instances[name] = svc
	c.mu.Unlock()

	return svc
}

// Token is a typed service key.
type Token[T any] struct {
	name string
}

// NewToken creates a token for a service of type T.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the token's registry key.
func (t Token[T]) Name() string {
	return t.name
}

// RegisterToken registers a typed factory under the token's key.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a token, panicking on a missing or mistyped registration.
// Wiring mistakes are programmer errors and should fail loudly at startup.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	svc := sr.Get(token.name)
	if svc == nil {
		panic(fmt.Sprintf("di: service %q is not registered", token.name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has type %T, not the requested type", token.name, svc))
	}
	return typed
}

package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// MemoryManager keeps session state in an in-process map. Suitable for tests
// and single-instance runs without Redis; state does not survive restarts.
type MemoryManager struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{sessions: make(map[string]map[string]string)}
}

func (m *MemoryManager) Open(_ context.Context, id string) (ports.SessionContainer, error) {
	if id == "" {
		id = uuid.NewString()
	}
	return &memoryContainer{mgr: m, id: id}, nil
}

type memoryContainer struct {
	mgr *MemoryManager
	id  string
}

func (c *memoryContainer) ID() string { return c.id }

func (c *memoryContainer) Get(_ context.Context, key string) (string, bool, error) {
	if c.id == "" {
		return "", false, nil
	}
	c.mgr.mu.Lock()
	defer c.mgr.mu.Unlock()
	v, ok := c.mgr.sessions[c.id][key]
	return v, ok, nil
}

func (c *memoryContainer) Set(_ context.Context, key, value string) error {
	if c.id == "" {
		return fmt.Errorf("session set: container destroyed")
	}
	c.mgr.mu.Lock()
	defer c.mgr.mu.Unlock()
	state, ok := c.mgr.sessions[c.id]
	if !ok {
		state = make(map[string]string)
		c.mgr.sessions[c.id] = state
	}
	state[key] = value
	return nil
}

func (c *memoryContainer) RegenerateID(_ context.Context) error {
	if c.id == "" {
		return fmt.Errorf("session regenerate: container destroyed")
	}
	next := uuid.NewString()
	c.mgr.mu.Lock()
	defer c.mgr.mu.Unlock()
	if state, ok := c.mgr.sessions[c.id]; ok {
		c.mgr.sessions[next] = state
		delete(c.mgr.sessions, c.id)
	}
	c.id = next
	return nil
}

func (c *memoryContainer) Destroy(_ context.Context) error {
	if c.id == "" {
		return nil
	}
	c.mgr.mu.Lock()
	defer c.mgr.mu.Unlock()
	delete(c.mgr.sessions, c.id)
	c.id = ""
	return nil
}

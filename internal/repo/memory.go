package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps users and calculations in process memory. It backs
// the service when no DATABASE_URL is configured and is used in tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	nextID       int
	users        map[string]memoryUser
	calculations map[uuid.UUID]Calculation
}

type memoryUser struct {
	id       int
	email    string
	password string
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]memoryUser),
		calculations: make(map[uuid.UUID]Calculation),
	}
}

func (m *MemoryRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[login]; exists {
		return 0, fmt.Errorf("user %q already exists", login)
	}
	m.nextID++
	m.users[login] = memoryUser{id: m.nextID, email: email, password: password}
	return m.nextID, nil
}

func (m *MemoryRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.password, nil
}

func (m *MemoryRepository) SaveCalculation(ctx context.Context, c Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.calculations[c.ID]; exists {
		return fmt.Errorf("calculation %s already exists", c.ID)
	}
	m.calculations[c.ID] = c
	return nil
}

func (m *MemoryRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Calculation
	for _, c := range m.calculations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) GetCalculation(ctx context.Context, userID int, id uuid.UUID) (Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.calculations[id]
	if !ok || c.UserID != userID {
		return Calculation{}, ErrNotFound
	}
	return c, nil
}

// Package notice mantiene notificaciones descartables para los controladores de UI.
package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Board es seguro para uso concurrente.
type Board struct {
	mu    sync.Mutex
	items []Notice
	now   func() time.Time
}

func NewBoard() *Board {
	return &Board{now: time.Now}
}

func (b *Board) Push(level Level, msg string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   msg,
		CreatedAt: b.now(),
	}
	b.items = append(b.items, n)
	return n.ID
}

func (b *Board) Error(msg string) string { return b.Push(LevelError, msg) }

// Dismiss devuelve false si el id no existe (ya descartado).
func (b *Board) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, n := range b.items {
		if n.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Board) List() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Notice, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

// FileStore keeps the whole order collection in a single JSON array file.
// Every operation reads the file, mutates the slice and rewrites the file in
// full. The mutex serializes writers within this process only; concurrent
// processes sharing the file race last-writer-wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(order)

	orders := s.load()
	orders = append(orders, *order)

	if err := s.save(orders); err != nil {
		return errors.NewInternalError("writing order file", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(), nil
}

func (s *FileStore) ToggleProcessed(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders[i].ToggleProcessed(time.Now().UTC())
		if err := s.save(orders); err != nil {
			return nil, errors.NewInternalError("writing order file", err)
		}
		toggled := orders[i]
		return &toggled, nil
	}

	return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
}

func (s *FileStore) Delete(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		removed := orders[i]
		orders = append(orders[:i], orders[i+1:]...)
		if err := s.save(orders); err != nil {
			return nil, errors.NewInternalError("writing order file", err)
		}
		return &removed, nil
	}

	return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
}

// load treats a missing or unreadable file as an empty collection.
func (s *FileStore) load() []domain.Order {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.Order{}
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return []domain.Order{}
	}
	return orders
}

func (s *FileStore) save(orders []domain.Order) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

// prepare stamps creation fields on a fresh order: a time-plus-random id,
// the receivedAt timestamp and the unprocessed defaults.
func prepare(order *domain.Order) {
	if order.ID == "" {
		order.ID = newOrderID()
	}
	if order.ReceivedAt.IsZero() {
		order.ReceivedAt = time.Now().UTC()
	}
	order.Processed = false
	order.ProcessedAt = nil
}

func newOrderID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + uuid.NewString()[:8]
}

package favorite

import (
	"context"
	"sync"
)

// MemoryStore 未啟用 Redis 時使用，重啟後資料會消失
type MemoryStore struct {
	mu        sync.RWMutex
	favorites map[string][]string
}

// NewMemoryStore 創建記憶體收藏存放
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{favorites: make(map[string][]string)}
}

func (s *MemoryStore) Add(_ context.Context, userID, recipeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.favorites[userID] {
		if id == recipeID {
			return false, nil
		}
	}
	s.favorites[userID] = append(s.favorites[userID], recipeID)
	return true, nil
}

func (s *MemoryStore) Remove(_ context.Context, userID, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.favorites[userID]
	for i, id := range ids {
		if id != recipeID {
			continue
		}
		ids = append(ids[:i:i], ids[i+1:]...)
		if len(ids) == 0 {
			delete(s.favorites, userID)
		} else {
			s.favorites[userID] = ids
		}
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.favorites[userID]))
	copy(ids, s.favorites[userID])
	return ids, nil
}

func (s *MemoryStore) IsFavorite(_ context.Context, userID, recipeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.favorites[userID] {
		if id == recipeID {
			return true, nil
		}
	}
	return false, nil
}

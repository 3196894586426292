package kvstore

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	data  map[string]string
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) ListKeys(context.Context) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetMany(_ context.Context, keys []string) (map[string]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	res := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			res[k] = v
		}
	}
	return res, nil
}

func (s *MemoryStore) SetMany(_ context.Context, pairs map[string]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for k, v := range pairs {
		s.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]string)
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, pairs map[string]string) error {
	data := make(map[string]string, len(pairs))
	for k, v := range pairs {
		data[k] = v
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = data
	return nil
}

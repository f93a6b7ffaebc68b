package engine

// MemorySessionStore keeps snapshots in memory, scoped to the lifetime
// of the owning wizard instance.
type MemorySessionStore struct {
	values map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{values: map[string][]byte{}}
}

func (s *MemorySessionStore) Get(key string) ([]byte, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (s *MemorySessionStore) Set(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	s.values[key] = buf
	return nil
}

func (s *MemorySessionStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}

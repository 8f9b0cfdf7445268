package pedigree

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// fakeStore es un Store en memoria con conteo de llamadas e inyección de fallos.
type fakeStore struct {
	mu      sync.Mutex
	horses  []Horse
	getErr  map[int64]error
	allErr  error
	gets    map[int64]int
	allCall int
	search  []map[string]string
	nextID  int64
	created []HorseCreate
	updated map[int64]HorseUpdate
}

func newFakeStore(hs ...Horse) *fakeStore {
	s := &fakeStore{
		getErr:  map[int64]error{},
		gets:    map[int64]int{},
		updated: map[int64]HorseUpdate{},
		nextID:  100,
	}
	s.horses = append(s.horses, hs...)
	return s
}

func (s *fakeStore) Get(_ context.Context, id int64) (Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets[id]++
	if err := s.getErr[id]; err != nil {
		return Horse{}, err
	}
	for _, h := range s.horses {
		if h.ID != nil && *h.ID == id {
			return h, nil
		}
	}
	return Horse{}, fmt.Errorf("horse %d: %w", id, ErrNotFound)
}

func (s *fakeStore) All(context.Context) ([]Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allCall++
	if s.allErr != nil {
		return nil, s.allErr
	}
	return append([]Horse(nil), s.horses...), nil
}

func (s *fakeStore) Search(_ context.Context, params map[string]string) ([]Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = append(s.search, params)
	return []Horse{}, nil
}

func (s *fakeStore) Create(_ context.Context, in HorseCreate) (Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, in)
	s.nextID++
	id := s.nextID
	return Horse{ID: &id, Name: in.Name, DateOfBirth: in.DateOfBirth, Sex: in.Sex}, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, in HorseUpdate) (Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated[id] = in
	return Horse{ID: &id, Name: in.Name, DateOfBirth: in.DateOfBirth, Sex: in.Sex}, nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.horses {
		if h.ID != nil && *h.ID == id {
			s.horses = append(s.horses[:i], s.horses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var errBoom = errors.New("boom")

func id(v int64) *int64 { return &v }

func horse(hid int64, name string, sex Sex) Horse {
	return Horse{ID: id(hid), Name: name, Sex: sex, DateOfBirth: Date{Year: 2015, Month: 1, Day: 1}}
}

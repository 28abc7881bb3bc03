package database

import (
	"context"
	"errors"
	"sync"

	"github.com/travigo/caltrain/pkg/ctdf"
)

// MemoryScheduleStore keeps the schedule for the life of the process.
type MemoryScheduleStore struct {
	mu        sync.RWMutex
	facts     []ctdf.ScheduleFact
	populated bool
}

func NewMemoryScheduleStore() *MemoryScheduleStore {
	return &MemoryScheduleStore{}
}

func (s *MemoryScheduleStore) HasSchedule(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.populated, nil
}

func (s *MemoryScheduleStore) SaveSchedule(ctx context.Context, schedule ctdf.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.populated {
		return errors.New("schedule already saved")
	}

	s.facts = schedule.Facts()
	s.populated = true

	return nil
}

func (s *MemoryScheduleStore) ReplaceSchedule(ctx context.Context, schedule ctdf.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.facts = schedule.Facts()
	s.populated = true

	return nil
}

func (s *MemoryScheduleStore) DropSchedule(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.facts = nil
	s.populated = false

	return nil
}

func (s *MemoryScheduleStore) GetStops(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ctdf.StopNames(s.facts), nil
}

func (s *MemoryScheduleStore) GetConnections(ctx context.Context, dayType ctdf.DayType, fromStop string, toStop string) ([]ctdf.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ctdf.FindConnections(s.facts, dayType, fromStop, toStop), nil
}

func (s *MemoryScheduleStore) Identity() string {
	return StoreMemory
}

func (s *MemoryScheduleStore) Close(ctx context.Context) error {
	return nil
}

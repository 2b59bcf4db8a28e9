package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/uma-arai/hotel-dashboard/internal/model"
	"github.com/uma-arai/hotel-dashboard/internal/repository"
)

// MockGuestRepository はテスト用のモックリポジトリです
// all はストアが返す順序のまま保持します
type MockGuestRepository struct {
	mu             sync.Mutex
	all            []model.Guest
	listErr        error
	getErr         error
	listByIDsErr   error
	getCalls       []int64
	listByIDsCalls [][]int64
}

func (m *MockGuestRepository) ListOrderedByName(ctx context.Context) ([]model.Guest, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return slices.Clone(m.all), nil
}

func (m *MockGuestRepository) GetByID(ctx context.Context, guestID int64) (*model.Guest, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, guestID)
	m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, g := range m.all {
		if g.ID == guestID {
			return &g, nil
		}
	}
	return nil, fmt.Errorf("guests %d: %w", guestID, repository.ErrNotFound)
}

func (m *MockGuestRepository) ListByIDs(ctx context.Context, guestIDs []int64) ([]model.Guest, error) {
	m.mu.Lock()
	m.listByIDsCalls = append(m.listByIDsCalls, guestIDs)
	m.mu.Unlock()
	if m.listByIDsErr != nil {
		return nil, m.listByIDsErr
	}
	var guests []model.Guest
	for _, g := range m.all {
		if slices.Contains(guestIDs, g.ID) {
			guests = append(guests, g)
		}
	}
	return guests, nil
}

// MockReservationRepository はテスト用のモックリポジトリです
type MockReservationRepository struct {
	mu           sync.Mutex
	reservations map[int64]model.Reservation
	rows         []model.ReservationRow
	byGuest      map[int64][]model.ReservationRow
	getErr       error
	listErr      error
	getCalls     []int64
}

func (m *MockReservationRepository) GetByID(ctx context.Context, reservationID int64) (*model.Reservation, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, reservationID)
	m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.reservations[reservationID]
	if !ok {
		return nil, fmt.Errorf("reservations %d: %w", reservationID, repository.ErrNotFound)
	}
	return &r, nil
}

func (m *MockReservationRepository) ListWithGuest(ctx context.Context) ([]model.ReservationRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

func (m *MockReservationRepository) ListByGuest(ctx context.Context, guestID int64) ([]model.ReservationRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.byGuest[guestID], nil
}

// MockConsumptionRepository はテスト用のモックリポジトリです
type MockConsumptionRepository struct {
	mu    sync.Mutex
	lines map[int64][]model.ConsumptionLine
	err   error
	calls int
}

func (m *MockConsumptionRepository) ListByReservation(ctx context.Context, reservationID int64) ([]model.ConsumptionLine, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.lines[reservationID], nil
}

// MockRoomRepository はテスト用のモックリポジトリです
type MockRoomRepository struct {
	mu    sync.Mutex
	rooms map[int64][]model.RoomLine
	err   error
	calls int
}

func (m *MockRoomRepository) ListByReservation(ctx context.Context, reservationID int64) ([]model.RoomLine, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.rooms[reservationID], nil
}

// MockOccupantRepository はテスト用のモックリポジトリです
type MockOccupantRepository struct {
	mu        sync.Mutex
	occupants map[int64][]model.Occupant
	err       error
	calls     int
}

func (m *MockOccupantRepository) ListByReservation(ctx context.Context, reservationID int64) ([]model.Occupant, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.occupants[reservationID], nil
}

type mocks struct {
	guests       *MockGuestRepository
	reservations *MockReservationRepository
	consumption  *MockConsumptionRepository
	rooms        *MockRoomRepository
	occupants    *MockOccupantRepository
}

func (m *mocks) service() *Service {
	return NewService(m.guests, m.reservations, m.consumption, m.rooms, m.occupants)
}

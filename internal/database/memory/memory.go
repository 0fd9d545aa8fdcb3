// Package memory implements the storage interfaces over plain maps.
// A single mutex serializes admissions, which satisfies the same
// atomic check-and-insert contract the Postgres transaction provides.
// It backs the service tests and can run the whole app without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"
)

type Store struct {
	mu sync.RWMutex

	events      map[int64]*entity.Event
	ticketTypes map[int64]*entity.TicketType
	bookings    map[int64]*entity.Booking
	users       map[int64]*entity.User

	nextEventID      int64
	nextTicketTypeID int64
	nextBookingID    int64
	nextUserID       int64
}

func NewStore() *Store {
	return &Store{
		events:      make(map[int64]*entity.Event),
		ticketTypes: make(map[int64]*entity.TicketType),
		bookings:    make(map[int64]*entity.Booking),
		users:       make(map[int64]*entity.User),
	}
}

func (s *Store) Events() database.EventRepository           { return &eventRepository{s} }
func (s *Store) TicketTypes() database.TicketTypeRepository { return &ticketTypeRepository{s} }
func (s *Store) Bookings() database.BookingRepository       { return &bookingRepository{s} }
func (s *Store) Users() database.UserRepository             { return &userRepository{s} }

// ---- events ----

type eventRepository struct {
	store *Store
}

func (r *eventRepository) Create(_ context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextEventID++
	event.ID = r.store.nextEventID
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	copied := *event
	r.store.events[event.ID] = &copied
	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	event, ok := r.store.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *eventRepository) GetAll(_ context.Context) ([]*entity.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := make([]*entity.Event, 0, len(r.store.events))
	for _, event := range r.store.events {
		copied := *event
		events = append(events, &copied)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].DateTime.Before(events[j].DateTime) })
	return events, nil
}

// ---- ticket types ----

type ticketTypeRepository struct {
	store *Store
}

func (r *ticketTypeRepository) Create(_ context.Context, ticketType *entity.TicketType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextTicketTypeID++
	ticketType.ID = r.store.nextTicketTypeID
	ticketType.CreatedAt = time.Now()
	ticketType.UpdatedAt = ticketType.CreatedAt

	copied := *ticketType
	r.store.ticketTypes[ticketType.ID] = &copied
	return nil
}

func (r *ticketTypeRepository) GetByID(_ context.Context, id int64) (*entity.TicketType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ticketType, ok := r.store.ticketTypes[id]
	if !ok {
		return nil, entity.ErrTicketTypeNotFound
	}
	copied := *ticketType
	return &copied, nil
}

func (r *ticketTypeRepository) GetByEventID(_ context.Context, eventID int64) ([]*entity.TicketType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var ticketTypes []*entity.TicketType
	for _, ticketType := range r.store.ticketTypes {
		if ticketType.EventID == eventID {
			copied := *ticketType
			ticketTypes = append(ticketTypes, &copied)
		}
	}
	sort.Slice(ticketTypes, func(i, j int) bool { return ticketTypes[i].ID < ticketTypes[j].ID })
	return ticketTypes, nil
}

func (r *ticketTypeRepository) Update(_ context.Context, ticketType *entity.TicketType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.ticketTypes[ticketType.ID]
	if !ok {
		return entity.ErrTicketTypeNotFound
	}

	copied := *ticketType
	copied.CreatedAt = current.CreatedAt
	copied.UpdatedAt = time.Now()
	r.store.ticketTypes[ticketType.ID] = &copied
	return nil
}

func (r *ticketTypeRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.ticketTypes[id]; !ok {
		return entity.ErrTicketTypeNotFound
	}
	delete(r.store.ticketTypes, id)
	return nil
}

// ---- bookings ----

type bookingRepository struct {
	store *Store
}

// Create performs the availability checks and the insert under the store
// mutex, mirroring the transactional admission of the Postgres repository.
func (r *bookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event, ok := r.store.events[booking.EventID]
	if !ok {
		return entity.ErrEventNotFound
	}

	ticketType, ok := r.store.ticketTypes[booking.TicketTypeID]
	if !ok || ticketType.EventID != booking.EventID {
		return entity.ErrTicketTypeNotFound
	}

	typeBooked := 0
	eventBooked := 0
	for _, b := range r.store.bookings {
		if b.Status != entity.BookingStatusBooked {
			continue
		}
		if b.TicketTypeID == booking.TicketTypeID {
			typeBooked += b.Quantity
		}
		if b.EventID == booking.EventID {
			eventBooked += b.Quantity
		}
	}

	if booking.Quantity > ticketType.Limit-typeBooked {
		return &entity.CapacityError{Scope: entity.CapacityScopeTicketType, Remaining: ticketType.Limit - typeBooked}
	}
	if booking.Quantity > event.Capacity-eventBooked {
		return &entity.CapacityError{Scope: entity.CapacityScopeEvent, Remaining: event.Capacity - eventBooked}
	}

	r.store.nextBookingID++
	booking.ID = r.store.nextBookingID
	booking.CreatedAt = time.Now()

	copied := *booking
	r.store.bookings[booking.ID] = &copied
	return nil
}

func (r *bookingRepository) GetByID(_ context.Context, id int64) (*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *bookingRepository) GetByIDAndUser(_ context.Context, id, userID int64) (*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok || booking.BookedBy != userID {
		return nil, entity.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *bookingRepository) UpdateStatus(_ context.Context, id int64, status entity.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (r *bookingRepository) GetByUserID(_ context.Context, userID int64) ([]*entity.Booking, error) {
	return r.collect(func(b *entity.Booking) bool { return b.BookedBy == userID })
}

func (r *bookingRepository) GetByEventID(_ context.Context, eventID int64) ([]*entity.Booking, error) {
	return r.collect(func(b *entity.Booking) bool { return b.EventID == eventID })
}

func (r *bookingRepository) collect(match func(*entity.Booking) bool) ([]*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if match(booking) {
			copied := *booking
			bookings = append(bookings, &copied)
		}
	}
	// Newest first; IDs break ties for bookings created within the same tick.
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *bookingRepository) BookedUnits(_ context.Context, ticketTypeID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := 0
	for _, booking := range r.store.bookings {
		if booking.TicketTypeID == ticketTypeID && booking.Status == entity.BookingStatusBooked {
			sum += booking.Quantity
		}
	}
	return sum, nil
}

func (r *bookingRepository) EventBookedUnits(_ context.Context, eventID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := 0
	for _, booking := range r.store.bookings {
		if booking.EventID == eventID && booking.Status == entity.BookingStatusBooked {
			sum += booking.Quantity
		}
	}
	return sum, nil
}

func (r *bookingRepository) CountByTicketType(_ context.Context, ticketTypeID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, booking := range r.store.bookings {
		if booking.TicketTypeID == ticketTypeID {
			count++
		}
	}
	return count, nil
}

// ---- users ----

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	user.CreatedAt = time.Now()

	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

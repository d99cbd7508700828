package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
)

func roomIDs(rooms []models.Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}
	return ids
}

func TestFindByAvailability_RejectsBadRange(t *testing.T) {
	svc := NewRoomService(newTestDB(t))

	_, err := svc.FindByAvailability(date(12), date(12), true)
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.FindByAvailability(date(14), date(12), true)
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestFindByAvailability_NoBookings(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	r1 := seedRoom(t, db, 500)
	r2 := seedRoom(t, db, 700)

	available, err := svc.FindByAvailability(date(1), date(31), true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{r1.ID, r2.ID}, roomIDs(available))

	unavailable, err := svc.FindByAvailability(date(1), date(31), false)
	require.NoError(t, err)
	assert.Empty(t, unavailable)
}

func TestFindByAvailability_StrictOverlap(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	bookings := NewBookingService(db, fixedClock{now: date(1)})

	seedRoles(t, db)
	user := seedUser(t, db, "guest@example.com")
	r1 := seedRoom(t, db, 500)
	r2 := seedRoom(t, db, 700)

	// R1 is held for [Jan 10, Jan 15); R2 stays free.
	_, err := bookings.Create(BookingInput{
		Adults:       2,
		OccupiedFrom: date(10),
		OccupiedTill: date(15),
		RoomIDs:      []string{r1.ID},
		UserID:       user.ID,
	})
	require.NoError(t, err)

	// Query inside the booking: only R2 is free, only R1 is taken.
	free, err := svc.FindByAvailability(date(12), date(14), true)
	require.NoError(t, err)
	assert.Equal(t, []string{r2.ID}, roomIDs(free))

	taken, err := svc.FindByAvailability(date(12), date(14), false)
	require.NoError(t, err)
	assert.Equal(t, []string{r1.ID}, roomIDs(taken))

	// Query touching the booking's end: no overlap, everything is free.
	free, err = svc.FindByAvailability(date(15), date(16), true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{r1.ID, r2.ID}, roomIDs(free))

	// Query touching the booking's start from the left: also free.
	free, err = svc.FindByAvailability(date(8), date(10), true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{r1.ID, r2.ID}, roomIDs(free))

	// Query straddling the booking's start: R1 is taken again.
	taken, err = svc.FindByAvailability(date(9), date(11), false)
	require.NoError(t, err)
	assert.Equal(t, []string{r1.ID}, roomIDs(taken))
}

func TestFindByAvailability_CancelledBookingFreesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	bookings := NewBookingService(db, fixedClock{now: date(1)})

	seedRoles(t, db)
	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, 500)

	booking, err := bookings.Create(BookingInput{
		Adults:       1,
		OccupiedFrom: date(10),
		OccupiedTill: date(15),
		RoomIDs:      []string{room.ID},
		UserID:       user.ID,
	})
	require.NoError(t, err)

	free, err := svc.FindByAvailability(date(12), date(14), true)
	require.NoError(t, err)
	assert.Empty(t, free)

	_, err = bookings.Cancel(booking.ID)
	require.NoError(t, err)

	free, err = svc.FindByAvailability(date(12), date(14), true)
	require.NoError(t, err)
	assert.Equal(t, []string{room.ID}, roomIDs(free))
}

func TestSetClean(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, 500)

	updated, err := svc.SetClean(room.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Clean)

	_, err = svc.SetClean(room.ID, false)
	require.ErrorIs(t, err, ErrCleanUnchanged)

	updated, err = svc.SetClean(room.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Clean)

	_, err = svc.SetClean("missing", true)
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomUpdate_ProtectsIdentityColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, 500)

	err := svc.Update(room.ID, map[string]interface{}{"id": "hijack", "price": 650.0})
	require.NoError(t, err)

	reloaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 650.0, reloaded.Price)
}

func TestRoomUpdate_IdempotentAndMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, 500)

	// Writing the values the row already holds is still a successful update.
	require.NoError(t, svc.Update(room.ID, map[string]interface{}{"price": 500.0, "clean": true}))
	require.NoError(t, svc.Update(room.ID, map[string]interface{}{"price": 500.0, "clean": true}))

	// Stripping the protected columns may leave nothing to write.
	require.NoError(t, svc.Update(room.ID, map[string]interface{}{"id": "hijack"}))

	require.ErrorIs(t, svc.Update("missing", map[string]interface{}{"price": 1.0}), ErrRoomNotFound)
}

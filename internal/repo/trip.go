// Package repo contains all database access logic for the itinerary service.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so CreateMany stays atomic inside a test transaction too.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for reconstructed Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
//
// Status is never stored; trips come back with an empty Status and the
// service layer derives it.
type TripRepo interface {
	// CreateMany inserts trips and all their transports in one transaction and
	// returns them with created_at and updated_at populated. Trip and
	// transport ids are the ones the engine generated.
	CreateMany(ctx context.Context, trips []domain.Trip) ([]domain.Trip, error)

	// GetByID retrieves a single trip with its transports.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips with their transports in chronological order.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips in chronological order together
	// with the total number of trips.
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)

	// Delete removes a trip and its transports. Returns domain.ErrNotFound if
	// it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, location, start_date, end_date, icon, duration_mode, participants, created_at, updated_at`

const transportColumns = `id, trip_id, mode, origin, destination,
	departure_date, departure_time, arrival_date, arrival_time,
	provider, identifier, confirmation_code,
	seat, seat_type, cabin_class, vehicle_model, reason,
	cost, origin_lat, origin_lon, destination_lat, destination_lon`

// CreateMany inserts every trip row, then queues all transport rows in a
// single pgx.Batch on the same transaction.
func (r *pgTripRepo) CreateMany(ctx context.Context, trips []domain.Trip) ([]domain.Trip, error) {
	if len(trips) == 0 {
		return []domain.Trip{}, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.CreateMany: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertTrip = `
		INSERT INTO trips (id, subject_id, name, location, start_date, end_date, icon, duration_mode, participants)
		VALUES (@id, @subject_id, @name, @location, @start_date, @end_date, @icon, @duration_mode, @participants)
		RETURNING created_at, updated_at`

	out := make([]domain.Trip, len(trips))
	batch := &pgx.Batch{}
	for i, t := range trips {
		start, end, err := tripDates(t)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.CreateMany: %w", err)
		}
		args := pgx.NamedArgs{
			"id":            t.ID,
			"subject_id":    subjectOf(t),
			"name":          t.Name,
			"location":      t.Location,
			"start_date":    start,
			"end_date":      end,
			"icon":          t.Icon,
			"duration_mode": t.DurationMode,
			"participants":  nonNil(t.Participants),
		}
		out[i] = t
		if err := tx.QueryRow(ctx, insertTrip, args).Scan(&out[i].CreatedAt, &out[i].UpdatedAt); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.CreateMany: insert trip: %w", err)
		}
		for pos, leg := range t.Transports {
			queueTransport(batch, t.ID, pos, leg)
		}
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.CreateMany: insert transports: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.CreateMany: commit: %w", err)
	}
	return out, nil
}

func queueTransport(b *pgx.Batch, tripID uuid.UUID, pos int, leg domain.TransportRecord) {
	const q = `
		INSERT INTO transports (
			id, trip_id, position, mode, origin, destination,
			departure_date, departure_time, arrival_date, arrival_time,
			provider, identifier, confirmation_code,
			seat, seat_type, cabin_class, vehicle_model, reason,
			cost, origin_lat, origin_lon, destination_lat, destination_lon)
		VALUES (
			@id, @trip_id, @position, @mode, @origin, @destination,
			@departure_date, @departure_time, @arrival_date, @arrival_time,
			@provider, @identifier, @confirmation_code,
			@seat, @seat_type, @cabin_class, @vehicle_model, @reason,
			@cost, @origin_lat, @origin_lon, @destination_lat, @destination_lon)`

	oLat, oLon := splitCoords(leg.OriginCoords)
	dLat, dLon := splitCoords(leg.DestinationCoords)
	b.Queue(q, pgx.NamedArgs{
		"id":                leg.ID,
		"trip_id":           tripID,
		"position":          pos,
		"mode":              string(leg.Mode),
		"origin":            leg.Origin,
		"destination":       leg.Destination,
		"departure_date":    leg.DepartureDate,
		"departure_time":    leg.DepartureTime,
		"arrival_date":      leg.ArrivalDate,
		"arrival_time":      leg.ArrivalTime,
		"provider":          leg.Provider,
		"identifier":        leg.Identifier,
		"confirmation_code": leg.ConfirmationCode,
		"seat":              leg.Seat,
		"seat_type":         leg.SeatType,
		"cabin_class":       leg.CabinClass,
		"vehicle_model":     leg.VehicleModel,
		"reason":            leg.Reason,
		"cost":              leg.Cost, // nil becomes NULL
		"origin_lat":        oLat,
		"origin_lon":        oLon,
		"destination_lat":   dLat,
		"destination_lon":   dLon,
	})
}

// GetByID retrieves a trip by primary key together with its transports.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	t, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	trips := []domain.Trip{t}
	if err := r.attachTransports(ctx, trips); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trips[0], nil
}

// List returns all trips ordered by start_date ascending (oldest first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date, end_date, created_at, id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// ListPaged returns one page of trips ordered like List, plus the total count.
func (r *pgTripRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + tripColumns + ` FROM trips
		ORDER BY start_date, end_date, created_at, id
		LIMIT @limit OFFSET @offset`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// Delete removes a trip by primary key; transports go with it (ON DELETE CASCADE).
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if err := r.attachTransports(ctx, trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// attachTransports loads the transports of trips in one query and assigns
// them in position order.
func (r *pgTripRepo) attachTransports(ctx context.Context, trips []domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(trips))
	index := make(map[uuid.UUID]int, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
		index[t.ID] = i
		trips[i].Transports = []domain.TransportRecord{}
	}

	q := `SELECT ` + transportColumns + ` FROM transports
		WHERE trip_id = ANY(@ids)
		ORDER BY trip_id, position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("transports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		tripID, leg, err := scanTransport(rows)
		if err != nil {
			return fmt.Errorf("transports: scan: %w", err)
		}
		i := index[tripID]
		trips[i].Transports = append(trips[i].Transports, leg)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("transports: rows: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and date conversions back to the engine's string form.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t     domain.Trip
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	err := s.Scan(&id, &t.Name, &t.Location, &start, &end, &t.Icon, &t.DurationMode,
		&t.Participants, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = formatDate(start)
	t.EndDate = formatDate(end)
	t.Participants = nonNil(t.Participants)
	t.Accommodations = []string{}
	t.Activities = []string{}
	t.Locations = []string{}
	return t, nil
}

func scanTransport(s scanner) (uuid.UUID, domain.TransportRecord, error) {
	var (
		leg                    domain.TransportRecord
		id, tripID             pgtype.UUID
		mode                   string
		oLat, oLon, dLat, dLon *float64
	)

	err := s.Scan(&id, &tripID, &mode, &leg.Origin, &leg.Destination,
		&leg.DepartureDate, &leg.DepartureTime, &leg.ArrivalDate, &leg.ArrivalTime,
		&leg.Provider, &leg.Identifier, &leg.ConfirmationCode,
		&leg.Seat, &leg.SeatType, &leg.CabinClass, &leg.VehicleModel, &leg.Reason,
		&leg.Cost, &oLat, &oLon, &dLat, &dLon)
	if err != nil {
		return uuid.Nil, domain.TransportRecord{}, err
	}

	leg.ID = uuid.UUID(id.Bytes)
	leg.Mode = domain.Mode(mode)
	leg.OriginCoords = joinCoords(oLat, oLon)
	leg.DestinationCoords = joinCoords(dLat, dLon)
	return uuid.UUID(tripID.Bytes), leg, nil
}

// tripDates parses the engine's date strings for the DATE columns.
func tripDates(t domain.Trip) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", t.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: trip %s: start date %q", domain.ErrValidation, t.ID, t.StartDate)
	}
	end, err := time.Parse("2006-01-02", t.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: trip %s: end date %q", domain.ErrValidation, t.ID, t.EndDate)
	}
	return start, end, nil
}

func formatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// subjectOf returns the trip's single participant, the subject of the import.
func subjectOf(t domain.Trip) string {
	if len(t.Participants) == 0 {
		return ""
	}
	return t.Participants[0]
}

func splitCoords(c *domain.Coordinates) (lat, lon *float64) {
	if c == nil {
		return nil, nil
	}
	la, lo := c.Lat, c.Lon
	return &la, &lo
}

func joinCoords(lat, lon *float64) *domain.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *lat, Lon: *lon}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

const collectionReservations = "reservations"

type ReservationRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{
		col: db.Collection(collectionReservations),
		seq: newSequence(db, collectionReservations),
	}
}

// Create allocates the next id and inserts the reservation document.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	res.ID = id

	if _, err := r.col.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var res domain.Reservation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context, f ports.ReservationFilter) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "reservation_time", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, reservationFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}

	items := make([]*domain.Reservation, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	return items, nil
}

func reservationFilter(f ports.ReservationFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

// Update replaces the whole document; the last writer wins.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": res.ID}, res)
	if err != nil {
		return fmt.Errorf("replace reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the status filter and default order.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "reservation_time", Value: -1}, {Key: "_id", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

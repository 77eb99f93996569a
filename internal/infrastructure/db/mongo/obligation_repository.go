package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

const collectionObligations = "obligations"

type ObligationRepository struct {
	col *mongo.Collection
}

func NewObligationRepository(db *mongo.Database) *ObligationRepository {
	return &ObligationRepository{col: db.Collection(collectionObligations)}
}

func (r *ObligationRepository) Create(ctx context.Context, o *domain.Obligation) (*domain.Obligation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	o.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return nil, fmt.Errorf("insert obligation: %w", err)
	}
	return r.FindByID(ctx, o.ID)
}

func (r *ObligationRepository) FindByID(ctx context.Context, id string) (*domain.Obligation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Obligation
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrObligationNotFound
		}
		return nil, fmt.Errorf("find obligation: %w", err)
	}
	return &o, nil
}

func (r *ObligationRepository) Update(ctx context.Context, o *domain.Obligation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	o.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("update obligation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrObligationNotFound
	}
	return nil
}

func (r *ObligationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete obligation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrObligationNotFound
	}
	return nil
}

func (r *ObligationRepository) List(ctx context.Context, filter ports.ListObligationsFilter) ([]*domain.Obligation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.AssignedTo != "" {
		query["assigned_to"] = filter.AssignedTo
	}
	dueRange := bson.M{}
	if !filter.DueFrom.IsZero() {
		dueRange["$gte"] = filter.DueFrom
	}
	if !filter.DueTo.IsZero() {
		dueRange["$lte"] = filter.DueTo
	}
	if len(dueRange) > 0 {
		query["due_date"] = dueRange
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count obligations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list obligations: %w", err)
	}
	defer cursor.Close(ctx)

	var obligations []*domain.Obligation
	for cursor.Next(ctx) {
		var o domain.Obligation
		if err := cursor.Decode(&o); err != nil {
			return nil, 0, fmt.Errorf("decode obligation: %w", err)
		}
		obligations = append(obligations, &o)
	}
	return obligations, total, cursor.Err()
}

// UpdateStatus atomically sets the new status and appends the history entry
// in a single document update.
func (r *ObligationRepository) UpdateStatus(ctx context.Context, id string, status domain.ObligationStatus, entry domain.ObligationHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":  bson.M{"status": status, "updated_at": time.Now().UTC()},
		"$push": bson.M{"status_history": entry},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update obligation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrObligationNotFound
	}
	return nil
}

func (r *ObligationRepository) FindDueWithin(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Obligation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := openDueQuery(now, window)
	query["reminded_at"] = bson.M{"$exists": false}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find due obligations: %w", err)
	}
	defer cursor.Close(ctx)

	var obligations []*domain.Obligation
	for cursor.Next(ctx) {
		var o domain.Obligation
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("decode obligation: %w", err)
		}
		obligations = append(obligations, &o)
	}
	return obligations, cursor.Err()
}

func (r *ObligationRepository) MarkReminded(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reminded_at": at}})
	if err != nil {
		return fmt.Errorf("mark obligation reminded: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrObligationNotFound
	}
	return nil
}

func (r *ObligationRepository) CountByStatus(ctx context.Context) (map[domain.ObligationStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count obligations by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[domain.ObligationStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		counts[domain.ObligationStatus(row.Status)] = row.Count
	}
	return counts, cursor.Err()
}

func (r *ObligationRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{
		"status":   bson.M{"$in": openStatuses()},
		"due_date": bson.M{"$lt": now},
	})
}

func (r *ObligationRepository) CountDueWithin(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, openDueQuery(now, window))
}

// EnsureIndexes creates the indexes backing due-date sweeps and per-client listings.
func (r *ObligationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func openStatuses() bson.A {
	return bson.A{string(domain.ObligationPending), string(domain.ObligationInProgress)}
}

func openDueQuery(now time.Time, window time.Duration) bson.M {
	return bson.M{
		"status":   bson.M{"$in": openStatuses()},
		"due_date": bson.M{"$gt": now, "$lte": now.Add(window)},
	}
}

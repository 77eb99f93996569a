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

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type mongoClient struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	TradeName string `bson:"trade_name,omitempty"`
	CNPJ      string `bson:"cnpj"`
	Email     string `bson:"email,omitempty"`
	Phone     string `bson:"phone,omitempty"`
	Regime    string `bson:"regime"`
	Active    bool   `bson:"active"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func toMongoClient(c *domain.Client) mongoClient {
	return mongoClient{
		ID:        c.ID,
		Name:      c.Name,
		TradeName: c.TradeName,
		CNPJ:      c.CNPJ,
		Email:     c.Email,
		Phone:     c.Phone,
		Regime:    string(c.Regime),
		Active:    c.Active,
		CreatedAt: c.CreatedAt.Unix(),
		UpdatedAt: c.UpdatedAt.Unix(),
	}
}

func (m mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:        m.ID,
		Name:      m.Name,
		TradeName: m.TradeName,
		CNPJ:      m.CNPJ,
		Email:     m.Email,
		Phone:     m.Phone,
		Regime:    domain.TaxRegime(m.Regime),
		Active:    m.Active,
		CreatedAt: unixToTime(m.CreatedAt),
		UpdatedAt: unixToTime(m.UpdatedAt),
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, toMongoClient(client)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return r.FindByID(ctx, client.ID)
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoClient
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) FindByCNPJ(ctx context.Context, cnpj string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoClient
	if err := r.col.FindOne(ctx, bson.M{"cnpj": cnpj}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client by cnpj: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": client.ID}, toMongoClient(client))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrClientExists
		}
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) List(ctx context.Context, filter ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		pattern := primitiveRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"trade_name": pattern},
			bson.M{"cnpj": pattern},
		}
	}
	if filter.Regime != "" {
		query["regime"] = filter.Regime
	}
	if filter.Active != nil {
		query["active"] = *filter.Active
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	for cursor.Next(ctx) {
		var m mongoClient
		if err := cursor.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, m.toDomain())
	}
	return clients, total, cursor.Err()
}

func (r *ClientRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"active": true})
}

// EnsureIndexes creates the unique CNPJ index on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cnpj", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// primitiveRegex builds a case-insensitive contains match.
func primitiveRegex(search string) bson.M {
	return bson.M{"$regex": search, "$options": "i"}
}

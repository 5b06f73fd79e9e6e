package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

func (s *Storage) StartSession() (mongo.Session, error) {
	return s.client.StartSession()
}

// WithTransaction runs fn inside a multi-document transaction. Repository
// calls made with the ctx passed to fn join the transaction.
func (s *Storage) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// CreateIndexes is idempotent; it runs on every startup.
func (s *Storage) CreateIndexes(ctx context.Context) error {
	couponIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "valid_until", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "used_by", Value: 1}},
		},
	}
	if _, err := s.database.Collection("coupons").Indexes().CreateMany(ctx, couponIndexes); err != nil {
		return fmt.Errorf("failed to create coupons indexes: %w", err)
	}

	restaurantIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "cuisine_type", Value: "text"},
			},
		},
		{
			Keys: bson.D{{Key: "location.city", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "location.zone", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "view_count", Value: -1}, {Key: "order_count", Value: -1}},
		},
	}
	if _, err := s.database.Collection("restaurants").Indexes().CreateMany(ctx, restaurantIndexes); err != nil {
		return fmt.Errorf("failed to create restaurants indexes: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Defaults for [MongoConfig].
const (
	DefaultDatabase   = "wraplayout"
	DefaultCollection = "layouts"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string // default "wraplayout"
	Collection string // default "layouts"
}

// MongoStore stores results as documents keyed by their ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}
	s := NewMongoStoreFromClient(client, cfg)
	s.owned = true
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. Close does not
// disconnect a client the store did not create.
func NewMongoStoreFromClient(client *mongo.Client, cfg MongoConfig) *MongoStore {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}
}

func (s *MongoStore) Save(ctx context.Context, res scene.Result) (string, error) {
	res.ID = uuid.NewString()
	res.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := s.coll.InsertOne(ctx, res); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "insert layout")
	}
	return res.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (scene.Result, error) {
	var res scene.Result
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return scene.Result{}, errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
	}
	if err != nil {
		return scene.Result{}, errors.Wrap(errors.ErrCodeInternal, err, "find layout %q", id)
	}
	return res, nil
}

func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

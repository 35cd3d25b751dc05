package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tiler/pkg/cache"
	"github.com/matzehuels/tiler/pkg/layoutfile"
)

// MongoConfig configures a [Mongo] store.
type MongoConfig struct {
	URI        string
	Database   string // default "tiler"
	Collection string // default "layouts"
}

// Mongo stores records in a MongoDB collection. The definition is kept as
// its JSON encoding so that parameter values decode exactly as they would
// from a layout file.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Layout    string    `bson:"layout,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewMongo connects to MongoDB, retrying the initial ping with backoff, and
// ensures the listing index exists.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.Database == "" {
		cfg.Database = "tiler"
	}
	if cfg.Collection == "" {
		cfg.Collection = "layouts"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("%w: ping mongo: %v", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create mongo index: %w", err)
	}
	return &Mongo{client: client, coll: coll}, nil
}

func (m *Mongo) Save(ctx context.Context, def *layoutfile.Definition) (*Record, error) {
	rec, err := newRecord(def)
	if err != nil {
		return nil, err
	}
	data, err := def.JSON()
	if err != nil {
		return nil, err
	}
	doc := mongoDoc{ID: rec.ID, Name: rec.Name, Layout: string(data), CreatedAt: rec.CreatedAt}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert layout: %w", err)
	}
	return rec, nil
}

func (m *Mongo) Get(ctx context.Context, id string) (*Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find layout: %w", err)
	}
	def, err := layoutfile.Parse([]byte(doc.Layout), layoutfile.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decode stored layout %s: %w", id, err)
	}
	return &Record{ID: doc.ID, Name: doc.Name, Layout: def, CreatedAt: doc.CreatedAt.UTC()}, nil
}

func (m *Mongo) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"layout": 0})
	cur, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	out := make([]Summary, len(docs))
	for i, d := range docs {
		out[i] = Summary{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt.UTC()}
	}
	return out, nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*Mongo)(nil)

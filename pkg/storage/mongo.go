package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rubiojr/hookvault/pkg/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// hookProjection keeps the four hook fields and drops everything else,
// _id included.
var hookProjection = bson.D{
	{Key: "_id", Value: 0},
	{Key: "category", Value: 1},
	{Key: "subcategory", Value: 1},
	{Key: "hook", Value: 1},
	{Key: "generated_at", Value: 1},
}

// MongoStore reads hooks from a MongoDB collection. The driver owns
// connection pooling.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// hookDocument decodes the projected fields without assuming their BSON
// types, so a date stored natively and one stored as a string both work.
type hookDocument struct {
	Category    bson.RawValue `bson:"category"`
	Subcategory bson.RawValue `bson:"subcategory"`
	Hook        bson.RawValue `bson:"hook"`
	GeneratedAt bson.RawValue `bson:"generated_at"`
}

// OpenMongoStore connects to uri and verifies the server is reachable.
func OpenMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Collection returns the collection this store reads from.
func (s *MongoStore) Collection() string {
	return s.collection.Name()
}

// FetchAllHooks runs find({}) with the hook projection, natural order.
func (s *MongoStore) FetchAllHooks(ctx context.Context) ([]core.Hook, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetProjection(hookProjection))
	if err != nil {
		return nil, core.DataUnavailable(fmt.Errorf("querying %s: %w", s.collection.Name(), err))
	}

	var docs []hookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, core.DataUnavailable(fmt.Errorf("reading %s: %w", s.collection.Name(), err))
	}

	hooks := make([]core.Hook, len(docs))
	for i, doc := range docs {
		hooks[i] = doc.project()
	}

	logger.Debugf("fetched %d hooks from mongo collection %s", len(hooks), s.collection.Name())
	return hooks, nil
}

func (d hookDocument) project() core.Hook {
	h := core.Hook{
		Category:    rawText(d.Category),
		Subcategory: rawText(d.Subcategory),
		Hook:        rawText(d.Hook),
	}
	switch d.GeneratedAt.Type {
	case bson.TypeDateTime:
		s := d.GeneratedAt.Time().UTC().Format(time.RFC3339Nano)
		h.GeneratedAt = &s
	case bson.TypeString:
		h.GeneratedAt = core.StringPtr(d.GeneratedAt.StringValue())
	}
	return h
}

// rawText renders a BSON value as display text. Missing and null values
// become the empty string.
func rawText(v bson.RawValue) string {
	switch v.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return ""
	case bson.TypeString:
		return v.StringValue()
	default:
		return v.String()
	}
}

// InsertDocuments upserts docs by _id in a single unordered bulk write.
func (s *MongoStore) InsertDocuments(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.New().String()
		}
		body := bson.M{}
		for k, v := range doc.Body {
			body[k] = v
		}
		body["_id"] = id
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: id}}).
			SetReplacement(body).
			SetUpsert(true))
	}

	res, err := s.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("writing documents to %s: %w", s.collection.Name(), err)
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

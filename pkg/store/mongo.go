package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	lferrors "github.com/matzehuels/layerflow/pkg/errors"
	"github.com/matzehuels/layerflow/pkg/ir"
)

// mongoDoc is the BSON shape a layout is stored as. The IR itself is kept
// as its JSON encoding rather than a native BSON document: the IR's
// generic, tagged-variant shape (EdgePath's Kind/Waypoints/Controls union)
// round-trips awkwardly through BSON's driver-level struct tags, while
// ir.Graph.ToJSON/FromJSON already solve that problem once.
type mongoDoc struct {
	Name      string    `bson:"_id"`
	GraphJSON []byte    `bson:"graph_json"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore persists layouts to a MongoDB collection, for deployments
// running more than one instance against a shared history.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps an existing collection handle. Close disconnects the
// client that owns coll.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Connect dials MongoDB at uri and returns a Store backed by
// database.collection. The caller is responsible for eventually calling
// Close to release the underlying client.
func Connect(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "pinging mongodb")
	}
	return &MongoStore{coll: client.Database(database).Collection(collection)}, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, g ir.Graph[int]) error {
	data, err := g.ToJSON()
	if err != nil {
		return lferrors.Wrap(lferrors.ErrCodeJSONMalformed, err, "encoding graph for storage")
	}

	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"graph_json": data, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err = s.coll.UpdateByID(ctx, name, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "saving layout %q", name)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (Entry, error) {
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "loading layout %q", name)
	}

	g, err := ir.FromJSON[int](doc.GraphJSON)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: doc.Name, Graph: g, CreatedAt: doc.CreatedAt, UpdatedAt: doc.UpdatedAt}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "listing layouts")
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "decoding listing entry")
		}
		names = append(names, doc.Name)
	}
	return names, cur.Err()
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return lferrors.Wrap(lferrors.ErrCodeStoreNetwork, err, "deleting layout %q", name)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.coll.Database().Client().Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cygraph/pkg/graph"
)

// MongoStore persists graphs in a MongoDB collection, one document per
// graph with the graph ID as the document key.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "cygraph"
	Collection string // defaults to "graphs"
}

// graphDocument is the stored shape: the interchange records inline under
// the graph's ID.
type graphDocument struct {
	ID    string             `bson:"_id"`
	Nodes []graph.Node       `bson:"nodes"`
	Edges []graph.EdgeRecord `bson:"edges"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "cygraph"
	}
	if cfg.Collection == "" {
		cfg.Collection = "graphs"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put saves a graph under id, replacing any existing document.
func (s *MongoStore) Put(ctx context.Context, id string, g graph.Graph) error {
	doc := graphDocument{ID: id, Nodes: g.Nodes, Edges: g.Edges}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// Get retrieves the graph stored under id.
func (s *MongoStore) Get(ctx context.Context, id string) (graph.Graph, error) {
	var doc graphDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Graph{}, ErrNotFound
	}
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.Graph{Nodes: doc.Nodes, Edges: doc.Edges}, nil
}

// Delete removes the graph stored under id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the IDs of all stored graphs.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

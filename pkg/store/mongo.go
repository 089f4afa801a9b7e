package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

const (
	DefaultMongoDatabase   = "specbox"
	DefaultMongoCollection = "figures"
)

// MongoStore keeps figures in a MongoDB collection. The figure document
// is stored as a nested BSON document so it can be inspected with the
// usual MongoDB tooling.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

type mongoRecord struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name,omitempty"`
	Figure    bson.D    `bson:"figure,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to cfg.URI and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

func (s *MongoStore) Create(ctx context.Context, name string, f *figure.Figure) (*Record, error) {
	doc, err := toBSON(f)
	if err != nil {
		return nil, err
	}
	t := now()
	rec := mongoRecord{ID: NewID(), Name: name, Figure: doc, CreatedAt: t, UpdatedAt: t}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "insert figure")
	}
	return &Record{ID: rec.ID, Name: name, Figure: f, CreatedAt: t, UpdatedAt: t}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateFigureID(id); err != nil {
		return nil, err
	}
	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find figure %s", id)
	}
	f, err := fromBSON(rec.Figure)
	if err != nil {
		return nil, err
	}
	return &Record{ID: rec.ID, Name: rec.Name, Figure: f, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "figure", Value: 0}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list figures")
	}
	var recs []mongoRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decode figures")
	}
	out := make([]Summary, len(recs))
	for i, r := range recs {
		out[i] = Summary{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	}
	return out, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, f *figure.Figure) (*Record, error) {
	if err := errors.ValidateFigureID(id); err != nil {
		return nil, err
	}
	doc, err := toBSON(f)
	if err != nil {
		return nil, err
	}
	t := now()
	var rec mongoRecord
	err = s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "figure", Value: doc}, {Key: "updated_at", Value: t}}}},
		options.FindOneAndUpdate().SetProjection(bson.D{{Key: "figure", Value: 0}}),
	).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "update figure %s", id)
	}
	return &Record{ID: id, Name: rec.Name, Figure: f, CreatedAt: rec.CreatedAt, UpdatedAt: t}, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateFigureID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete figure %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// toBSON converts a figure through its JSON form, so the stored document
// uses the same attribute names as the wire format.
func toBSON(f *figure.Figure) (bson.D, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "marshal figure")
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "convert figure to bson")
	}
	return doc, nil
}

func fromBSON(doc bson.D) (*figure.Figure, error) {
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "convert bson figure")
	}
	var f figure.Figure
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode stored figure")
	}
	return &f, nil
}

var _ Store = (*MongoStore)(nil)

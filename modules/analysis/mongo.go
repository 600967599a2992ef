package analysis

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const analysesCollection = "analyses"

// MongoStorage implements Storage on the analyses collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage returns a Storage over the analyses collection of db.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(analysesCollection)}
}

// EnsureIndexes creates the created_at index backing the history sort and
// the trailing-24h count.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create analyses created_at index: %w", err)
	}
	return nil
}

// Create implements Storage.
func (s *MongoStorage) Create(ctx context.Context, record *Record) error {
	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// History implements Storage.
func (s *MongoStorage) History(ctx context.Context) ([]Record, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find analyses: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode analyses: %w", err)
	}
	return records, nil
}

// CategoryCounts implements Storage. The vocabulary filters reuse the same
// alternation patterns the in-process matchers compile, so both sides agree
// on what counts as oncology or neurology.
func (s *MongoStorage) CategoryCounts(ctx context.Context, now time.Time) (*Counts, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	today, err := s.coll.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": now.Add(-24 * time.Hour)},
	})
	if err != nil {
		return nil, fmt.Errorf("count today analyses: %w", err)
	}

	cancer, err := s.countByVocabulary(ctx, oncologyPattern)
	if err != nil {
		return nil, err
	}

	neuro, err := s.countByVocabulary(ctx, neurologyPattern)
	if err != nil {
		return nil, err
	}

	return &Counts{
		TodayCount:  today,
		TotalCount:  total,
		CancerCount: cancer,
		NeuroCount:  neuro,
	}, nil
}

func (s *MongoStorage) countByVocabulary(ctx context.Context, pattern string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{
		"results.diagnosis": bson.M{"$regex": pattern, "$options": "i"},
	})
	if err != nil {
		return 0, fmt.Errorf("count analyses by vocabulary: %w", err)
	}
	return count, nil
}

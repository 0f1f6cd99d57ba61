package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/rchitlangi/cv-site/api/internal/admin/application"
	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

// ContactEventRepository stores the contact submission audit log.
type ContactEventRepository struct {
	collection *mongo.Collection
}

// NewContactEventRepository binds the repository to collectionName.
func NewContactEventRepository(db *mongo.Database, collectionName string) *ContactEventRepository {
	return &ContactEventRepository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the createdAt index used by the admin listing.
func (r *ContactEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

// Insert appends one event.
func (r *ContactEventRepository) Insert(ctx context.Context, event domain.ContactEvent) error {
	doc := contactEventToDocument(event)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// Find returns events newest first.
func (r *ContactEventRepository) Find(ctx context.Context, filter adminapp.ContactEventFilter) ([]domain.ContactEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	mongoFilter := bson.M{}
	if filter.Status != 0 {
		mongoFilter["status"] = filter.Status
	}
	if !filter.Since.IsZero() {
		mongoFilter["createdAt"] = bson.M{"$gte": filter.Since.UTC()}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		findOpts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ContactEventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]domain.ContactEvent, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.toDomain())
	}
	return events, nil
}

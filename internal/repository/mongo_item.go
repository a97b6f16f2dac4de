package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keremsimsek1907/nova-app/internal/model"
)

type itemDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Owner     string             `bson:"owner"`
	CreatedAt time.Time          `bson:"created_at"`
}

// MongoItemRepository stores items in the "items" collection.
type MongoItemRepository struct {
	coll *mongo.Collection
}

var _ ItemRepository = (*MongoItemRepository)(nil)

func NewMongoItemRepository(db *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{coll: db.Collection(itemsCollection)}
}

// EnsureIndexes creates the owner index used by listing.
func (r *MongoItemRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_items_owner_created"),
	})
	if err != nil {
		return fmt.Errorf("create items index: %w", err)
	}
	return nil
}

func (r *MongoItemRepository) Create(ctx context.Context, item *model.Item) error {
	doc := itemDocument{
		ID:        primitive.NewObjectID(),
		Name:      item.Name,
		Owner:     item.OwnerID,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	item.ID = doc.ID.Hex()
	item.CreatedAt = doc.CreatedAt
	return nil
}

func (r *MongoItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	// ObjectIDs grow monotonically per process, so _id breaks created_at ties.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	items := make([]model.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, model.Item{
			ID:        d.ID.Hex(),
			Name:      d.Name,
			OwnerID:   d.Owner,
			CreatedAt: d.CreatedAt,
		})
	}
	return items, nil
}

func (r *MongoItemRepository) DeleteByOwner(ctx context.Context, ownerID, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "owner": ownerID})
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return res.DeletedCount > 0, nil
}

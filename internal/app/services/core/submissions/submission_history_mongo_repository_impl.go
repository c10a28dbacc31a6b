package submissions

import (
	"context"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionHistoryMongoRepository struct {
	Collection *mongo.Collection
}

func NewSubmissionHistoryMongoRepository(db *mongo.Client, dbName string) contracts.SubmissionHistoryRepository {
	return &SubmissionHistoryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSubmissionHistory),
	}
}

// AppendHistoryEntry inserts an immutable audit row. Entries are never
// updated or deleted.
func (r *SubmissionHistoryMongoRepository) AppendHistoryEntry(ctx context.Context, entry *models.SubmissionHistoryEntry) (*models.SubmissionHistoryEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := r.Collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsert(err)
	}
	return entry, nil
}

func (r *SubmissionHistoryMongoRepository) FindHistoryBySubmissionID(ctx context.Context, submissionID string) ([]models.SubmissionHistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"submissionId": submissionID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFind(err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.SubmissionHistoryEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return entries, nil
}

package submissions

import (
	"context"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSubmissionMongoRepository(db *mongo.Client, dbName string) contracts.SubmissionRepository {
	return &SubmissionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSubmissions),
	}
}

func (r *SubmissionMongoRepository) CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	submission.SetCreatedAtUpdatedAt()
	_, err := r.Collection.InsertOne(ctx, submission)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsert(err)
	}
	return submission, nil
}

func (r *SubmissionMongoRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	var submission models.Submission
	err := r.Collection.FindOne(ctx, bson.M{"_id": submissionID}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return &submission, nil
}

// FindSubmissionByInvoiceNumber correlates inbound responses; when several
// submissions share an invoice number the newest one wins.
func (r *SubmissionMongoRepository) FindSubmissionByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Submission, error) {
	var submission models.Submission
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := r.Collection.FindOne(ctx, bson.M{"invoiceNumber": invoiceNumber}, opts).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return &submission, nil
}

func (r *SubmissionMongoRepository) UpdateSubmissionStatus(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	submission.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"status":       submission.Status,
		"messageId":    submission.MessageID,
		"responseCode": submission.ResponseCode,
		"transmittedAt": submission.TransmittedAt,
		"updatedAt":    submission.UpdatedAt,
	}}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": submission.ID}, update)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdate(err)
	}
	if result.MatchedCount == 0 {
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}
	return submission, nil
}

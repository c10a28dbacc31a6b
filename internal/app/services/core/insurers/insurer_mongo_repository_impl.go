package insurers

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type InsurerMongoRepository struct {
	Collection *mongo.Collection
}

func NewInsurerMongoRepository(db *mongo.Client, dbName string) contracts.InsurerRepository {
	return &InsurerMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionInsurers),
	}
}

func (r *InsurerMongoRepository) FindInsurerByID(ctx context.Context, insurerID string) (*models.Insurer, error) {
	var insurer models.Insurer
	err := r.Collection.FindOne(ctx, bson.M{"_id": insurerID}).Decode(&insurer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return &insurer, nil
}

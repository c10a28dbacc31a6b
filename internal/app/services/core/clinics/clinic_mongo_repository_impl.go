package clinics

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClinicMongoRepository struct {
	Collection *mongo.Collection
}

func NewClinicMongoRepository(db *mongo.Client, dbName string) contracts.ClinicRepository {
	return &ClinicMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionClinicSettings),
	}
}

// GetClinicSettings reads the single settings document. The store holds one
// clinic per deployment.
func (r *ClinicMongoRepository) GetClinicSettings(ctx context.Context) (*models.ClinicSettings, error) {
	var settings models.ClinicSettings
	err := r.Collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrIncompleteInvoiceData(err)
		}
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return &settings, nil
}

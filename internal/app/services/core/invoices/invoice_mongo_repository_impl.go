package invoices

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type InvoiceMongoRepository struct {
	InvoiceCollection *mongo.Collection
	RecordCollection  *mongo.Collection
}

func NewInvoiceMongoRepository(db *mongo.Client, dbName string) contracts.InvoiceRepository {
	return &InvoiceMongoRepository{
		InvoiceCollection: db.Database(dbName).Collection(constvars.MongoCollectionInvoices),
		RecordCollection:  db.Database(dbName).Collection(constvars.MongoCollectionRecords),
	}
}

func (r *InvoiceMongoRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.InvoiceCollection.FindOne(ctx, bson.M{"_id": invoiceID}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return &invoice, nil
}

func (r *InvoiceMongoRepository) FindRecordByID(ctx context.Context, recordID string) (*models.Record, error) {
	var record models.Record
	err := r.RecordCollection.FindOne(ctx, bson.M{"_id": recordID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFind(err)
	}
	return &record, nil
}

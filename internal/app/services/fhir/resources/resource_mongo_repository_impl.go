package resources

import (
	"context"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type resourceMongoRepository struct {
	db *mongo.Database
}

func NewResourceMongoRepository(db *mongo.Database) contracts.ResourceRepository {
	return &resourceMongoRepository{db: db}
}

func (r *resourceMongoRepository) collection(resourceType string) *mongo.Collection {
	descriptor := LookupDescriptor(resourceType)
	return r.db.Collection(descriptor.Collection)
}

func (r *resourceMongoRepository) Insert(ctx context.Context, resourceType string, doc map[string]interface{}) error {
	stored := make(map[string]interface{}, len(doc)+2)
	for k, v := range doc {
		stored[k] = v
	}
	stored[constvars.MongoFieldRevision] = 1
	stored[constvars.MongoFieldCreatedAt] = utils.FhirInstant(time.Now())

	_, err := r.collection(resourceType).InsertOne(ctx, stored)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *resourceMongoRepository) FindByID(ctx context.Context, resourceType, resourceID string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	err := r.collection(resourceType).FindOne(ctx, bson.M{"id": resourceID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	sanitizeStorageFields(doc)
	return doc, nil
}

func (r *resourceMongoRepository) Search(ctx context.Context, resourceType string, query *contracts.SearchQuery) ([]map[string]interface{}, int64, error) {
	collection := r.collection(resourceType)
	filter := bson.M(query.Filter)
	if filter == nil {
		filter = bson.M{}
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().SetSkip(query.Offset).SetLimit(query.Limit)
	if query.SortField != "" {
		order := 1
		if query.SortDescending {
			order = -1
		}
		findOptions.SetSort(bson.D{{Key: query.SortField, Value: order}})
	}

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	docs := make([]map[string]interface{}, 0)
	for cursor.Next(ctx) {
		var doc map[string]interface{}
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
		}
		sanitizeStorageFields(doc)
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return docs, total, nil
}

func (r *resourceMongoRepository) Upsert(ctx context.Context, resourceType, resourceID string, doc map[string]interface{}) error {
	update := bson.M{
		"$set":         doc,
		"$inc":         bson.M{constvars.MongoFieldRevision: 1},
		"$setOnInsert": bson.M{constvars.MongoFieldCreatedAt: utils.FhirInstant(time.Now())},
	}
	_, err := r.collection(resourceType).UpdateOne(ctx, bson.M{"id": resourceID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *resourceMongoRepository) DeleteByID(ctx context.Context, resourceType, resourceID string) (int64, error) {
	result, err := r.collection(resourceType).DeleteOne(ctx, bson.M{"id": resourceID})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

// sanitizeStorageFields strips fields that only exist in the store and must
// never leak into a FHIR payload.
func sanitizeStorageFields(doc map[string]interface{}) {
	delete(doc, constvars.MongoFieldObjectID)
	delete(doc, constvars.MongoFieldRevision)
	delete(doc, constvars.MongoFieldCreatedAt)
}

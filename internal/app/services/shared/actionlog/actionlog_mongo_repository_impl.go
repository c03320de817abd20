package actionlog

import (
	"context"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActionLogMongoRepository struct {
	Collection *mongo.Collection
}

func NewActionLogMongoRepository(db *mongo.Client, dbName string) contracts.ActionLogRepository {
	return &ActionLogMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionActionLogs),
	}
}

func (repo *ActionLogMongoRepository) Insert(ctx context.Context, entry *models.ActionLogEntry) error {
	_, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return exceptions.ErrMongoInsert(err)
	}
	return nil
}

func (repo *ActionLogMongoRepository) FindByActor(ctx context.Context, actorID uint, limit int64) ([]models.ActionLogEntry, error) {
	var entries []models.ActionLogEntry
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cursor, err := repo.Collection.Find(ctx, bson.M{"actorId": actorID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoFind(err)
	}
	err = cursor.All(ctx, &entries)
	if err != nil {
		return nil, exceptions.ErrMongoFind(err)
	}
	return entries, nil
}

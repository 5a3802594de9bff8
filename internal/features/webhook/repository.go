package webhook

import (
	"context"
	"time"

	"agency-forms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DeliveryLogRepository interface {
	Create(ctx context.Context, log *DeliveryLog) error
	List(ctx context.Context, event string, limit int64) ([]DeliveryLog, error)
}

type DeliveryLogRepositoryImpl struct {
	collection *mongo.Collection
}

func NewDeliveryLogRepository(db *database.MongodbDB) DeliveryLogRepository {
	return &DeliveryLogRepositoryImpl{
		collection: db.DB.Collection("webhook_logs"),
	}
}

func (r *DeliveryLogRepositoryImpl) Create(ctx context.Context, log *DeliveryLog) error {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *DeliveryLogRepositoryImpl) List(ctx context.Context, event string, limit int64) ([]DeliveryLog, error) {
	filter := bson.M{}
	if event != "" {
		filter["event"] = event
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []DeliveryLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

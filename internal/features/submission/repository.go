package submission

import (
	"context"
	"errors"
	"time"

	apperrors "agency-forms/internal/common/errors"
	"agency-forms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepository persists form submissions. Get returns nil, nil for unknown ids.
// Every driver failure surfaces as a STORAGE_ERROR.
type SubmissionRepository interface {
	Insert(ctx context.Context, submission *FormSubmission) error
	Update(ctx context.Context, submission *FormSubmission) error
	Get(ctx context.Context, id string) (*FormSubmission, error)
	ListByTemplate(ctx context.Context, templateID string) ([]FormSubmission, error)
	ListByPolicy(ctx context.Context, policyID string) ([]FormSubmission, error)
	ListByStatus(ctx context.Context, status Status, limit int64) ([]FormSubmission, error)
	MarkProcessed(ctx context.Context, id primitive.ObjectID, at time.Time) error
	ListPendingDelivery(ctx context.Context, maxAttempts int, limit int64) ([]FormSubmission, error)
	RecordProcessFailure(ctx context.Context, id primitive.ObjectID, reason string, at time.Time) error
}

type SubmissionRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSubmissionRepository(db *database.MongodbDB) SubmissionRepository {
	return &SubmissionRepositoryImpl{
		collection: db.DB.Collection("form_submissions"),
	}
}

func (r *SubmissionRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "template_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "policy_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "process_attempts", Value: 1}, {Key: "submitted_at", Value: 1}}},
	})
	return err
}

func (r *SubmissionRepositoryImpl) Insert(ctx context.Context, submission *FormSubmission) error {
	now := time.Now()
	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}
	submission.CreatedAt = now
	submission.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, submission); err != nil {
		return apperrors.NewStorageError("insert form submission", err)
	}
	return nil
}

func (r *SubmissionRepositoryImpl) Update(ctx context.Context, submission *FormSubmission) error {
	submission.UpdatedAt = time.Now()

	set := bson.M{
		"submission_data":  submission.SubmissionData,
		"status":           submission.Status,
		"line_of_business": submission.LineOfBusiness,
		"updated_at":       submission.UpdatedAt,
	}
	if submission.PolicyID != "" {
		set["policy_id"] = submission.PolicyID
	}
	if submission.SubmittedBy != "" {
		set["submitted_by"] = submission.SubmittedBy
	}
	if submission.SubmittedAt != nil {
		set["submitted_at"] = submission.SubmittedAt
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": submission.ID}, bson.M{"$set": set})
	if err != nil {
		return apperrors.NewStorageError("update form submission", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewSubmissionNotFound(submission.ID.Hex())
	}
	return nil
}

func (r *SubmissionRepositoryImpl) Get(ctx context.Context, id string) (*FormSubmission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var submission FormSubmission
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&submission); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("get form submission", err)
	}
	submission.SubmissionData = normalizeData(submission.SubmissionData)
	return &submission, nil
}

func (r *SubmissionRepositoryImpl) ListByTemplate(ctx context.Context, templateID string) ([]FormSubmission, error) {
	oid, err := primitive.ObjectIDFromHex(templateID)
	if err != nil {
		return []FormSubmission{}, nil
	}
	return r.find(ctx, bson.M{"template_id": oid}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *SubmissionRepositoryImpl) ListByPolicy(ctx context.Context, policyID string) ([]FormSubmission, error) {
	return r.find(ctx, bson.M{"policy_id": policyID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListByStatus returns the oldest submissions first so sweeps drain in arrival order.
func (r *SubmissionRepositoryImpl) ListByStatus(ctx context.Context, status Status, limit int64) ([]FormSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"status": status}, opts)
}

func (r *SubmissionRepositoryImpl) MarkProcessed(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusSubmitted},
		bson.M{"$set": bson.M{"status": StatusProcessed, "processed_at": at, "updated_at": at}},
	)
	if err != nil {
		return apperrors.NewStorageError("mark form submission processed", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewSubmissionNotFound(id.Hex())
	}
	return nil
}

// ListPendingDelivery returns submitted records that have failed fewer than maxAttempts
// deliveries. Records with fewer failures come first, then by arrival.
func (r *SubmissionRepositoryImpl) ListPendingDelivery(ctx context.Context, maxAttempts int, limit int64) ([]FormSubmission, error) {
	filter := bson.M{"status": StatusSubmitted}
	if maxAttempts > 0 {
		filter["$or"] = bson.A{
			bson.M{"process_attempts": bson.M{"$exists": false}},
			bson.M{"process_attempts": bson.M{"$lt": maxAttempts}},
		}
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "process_attempts", Value: 1},
		{Key: "submitted_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, filter, opts)
}

func (r *SubmissionRepositoryImpl) RecordProcessFailure(ctx context.Context, id primitive.ObjectID, reason string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusSubmitted},
		bson.M{
			"$inc": bson.M{"process_attempts": 1},
			"$set": bson.M{"last_process_error": reason, "updated_at": at},
		},
	)
	if err != nil {
		return apperrors.NewStorageError("record processing failure", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewSubmissionNotFound(id.Hex())
	}
	return nil
}

func (r *SubmissionRepositoryImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]FormSubmission, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewStorageError("list form submissions", err)
	}
	defer cursor.Close(ctx)

	submissions := []FormSubmission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, apperrors.NewStorageError("decode form submissions", err)
	}
	for i := range submissions {
		submissions[i].SubmissionData = normalizeData(submissions[i].SubmissionData)
	}
	return submissions, nil
}

package webhook

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventSubmissionSubmitted = "form_submission.submitted"
	EventSubmissionProcessed = "form_submission.processed"
)

// DeliveryLog records a single POST to the automation webhook
type DeliveryLog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	URL        string             `json:"url" bson:"url"`
	Event      string             `json:"event" bson:"event"`
	RecordID   string             `json:"record_id,omitempty" bson:"record_id,omitempty"`
	Request    any                `json:"request" bson:"request"`
	Response   string             `json:"response,omitempty" bson:"response,omitempty"` // Error message on failure
	StatusCode int                `json:"status_code" bson:"status_code"`
	Success    bool               `json:"success" bson:"success"`
	Duration   int64              `json:"duration" bson:"duration"` // Duration in milliseconds
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

package submission

import (
	"time"

	common_models "agency-forms/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusProcessed Status = "processed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusProcessed:
		return true
	}
	return false
}

type FormSubmission struct {
	ID             primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	TemplateID     primitive.ObjectID     `json:"template_id" bson:"template_id"`
	PolicyID       string                 `json:"policy_id,omitempty" bson:"policy_id,omitempty"`
	SubmissionData map[string]interface{} `json:"submission_data" bson:"submission_data"`
	Status         Status                 `json:"status" bson:"status"`
	LineOfBusiness common_models.LOBSet   `json:"line_of_business" bson:"line_of_business"`
	SubmittedBy    string                 `json:"submitted_by,omitempty" bson:"submitted_by,omitempty"`
	SubmittedAt    *time.Time             `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
	ProcessedAt    *time.Time             `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at" bson:"updated_at"`

	// Delivery bookkeeping kept by the processor.
	ProcessAttempts  int    `json:"process_attempts,omitempty" bson:"process_attempts,omitempty"`
	LastProcessError string `json:"last_process_error,omitempty" bson:"last_process_error,omitempty"`
}

type Action string

const (
	ActionDraft  Action = "draft"
	ActionSubmit Action = "submit"
)

// SaveRequest is the body of the create and update submission endpoints.
type SaveRequest struct {
	PolicyID       string                 `json:"policy_id"`
	LineOfBusiness common_models.LOBSet   `json:"line_of_business"`
	Values         map[string]interface{} `json:"values"`
	Action         Action                 `json:"action"`
}

type ListFilter struct {
	TemplateID string
	PolicyID   string
	Status     Status
}

// normalizeData converts the BSON container types the driver decodes into
// plain slices and maps so values compare the same as freshly submitted JSON.
func normalizeData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	for k, v := range data {
		data[k] = normalizeValue(v)
	}
	return data
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case primitive.D:
		out := make(map[string]interface{}, len(val))
		for _, e := range val {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case bson.M:
		return normalizeData(map[string]interface{}(val))
	case map[string]interface{}:
		return normalizeData(val)
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	}
	return v
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

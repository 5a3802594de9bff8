package email

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmailStatus string

const (
	EmailQueued EmailStatus = "queued"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// Email is the log entry kept for every outbound message.
type Email struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From           string             `bson:"from" json:"from"`
	To             []string           `bson:"to" json:"to"`
	Subject        string             `bson:"subject" json:"subject"`
	TextBody       string             `bson:"textBody,omitempty" json:"textBody,omitempty"`
	AttachmentName string             `bson:"attachmentName,omitempty" json:"attachmentName,omitempty"`
	Provider       string             `bson:"provider" json:"provider"`
	Status         EmailStatus        `bson:"status" json:"status"`
	EntityType     string             `bson:"entityType,omitempty" json:"entityType,omitempty"`
	EntityID       string             `bson:"entityId,omitempty" json:"entityId,omitempty"`
	ErrorMsg       string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	SentAt         *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}

// Message is what callers hand to the mail service.
type Message struct {
	To             []string
	Subject        string
	Body           string
	AttachmentName string
	AttachmentData []byte
	// EntityType and EntityID tie the log entry to the record the mail is about.
	EntityType string
	EntityID   string
}

package models

import (
	"encoding/json"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)

// Line of business
type LineOfBusiness string

const (
	LOBAuto       LineOfBusiness = "auto"
	LOBHome       LineOfBusiness = "home"
	LOBDwelling   LineOfBusiness = "dwelling"
	LOBCommercial LineOfBusiness = "commercial"
)

var AllLinesOfBusiness = []LineOfBusiness{LOBAuto, LOBHome, LOBDwelling, LOBCommercial}

func (l LineOfBusiness) Valid() bool {
	switch l {
	case LOBAuto, LOBHome, LOBDwelling, LOBCommercial:
		return true
	}
	return false
}

// LOBSet is a set of lines of business. It serializes as a sorted list.
type LOBSet map[LineOfBusiness]struct{}

func NewLOBSet(lobs ...LineOfBusiness) LOBSet {
	s := make(LOBSet, len(lobs))
	for _, l := range lobs {
		s[l] = struct{}{}
	}
	return s
}

func (s LOBSet) Has(l LineOfBusiness) bool {
	_, ok := s[l]
	return ok
}

// Intersects reports whether the two sets share at least one member.
func (s LOBSet) Intersects(other LOBSet) bool {
	for l := range s {
		if other.Has(l) {
			return true
		}
	}
	return false
}

// Toggle adds l when absent and removes it when present.
func (s LOBSet) Toggle(l LineOfBusiness) {
	if s.Has(l) {
		delete(s, l)
		return
	}
	s[l] = struct{}{}
}

func (s LOBSet) Clone() LOBSet {
	out := make(LOBSet, len(s))
	for l := range s {
		out[l] = struct{}{}
	}
	return out
}

func (s LOBSet) List() []LineOfBusiness {
	out := make([]LineOfBusiness, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s LOBSet) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, l := range list {
		out[i] = string(l)
	}
	return out
}

func (s LOBSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *LOBSet) UnmarshalJSON(data []byte) error {
	var list []LineOfBusiness
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewLOBSet(list...)
	return nil
}

func (s LOBSet) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(s.List())
}

func (s *LOBSet) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*s = NewLOBSet()
		return nil
	}
	var list []LineOfBusiness
	raw := bson.RawValue{Type: t, Value: data}
	if err := raw.Unmarshal(&list); err != nil {
		return err
	}
	*s = NewLOBSet(list...)
	return nil
}

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionSubmit   AuditAction = "SUBMIT"
	AuditActionProcess  AuditAction = "PROCESS"
	AuditActionTemplate AuditAction = "TEMPLATE"
	AuditActionExport   AuditAction = "EXPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`
	RecordID  string             `bson:"record_id" json:"record_id"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type Log struct {
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	RequestID    string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	IpAddress    string    `bson:"ip_address" json:"ip_address"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	AppId        string    `bson:"app_id" json:"app_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

type WebhookPayload struct {
	Event     string         `json:"event"`
	Module    string         `json:"module,omitempty"`
	RecordID  string         `json:"record_id,omitempty"`
	Data      interface{}    `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
	Extra     map[string]any `json:"extra,omitempty"`
}

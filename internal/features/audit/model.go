package audit

import "go.mongodb.org/mongo-driver/bson"

// Filter narrows an audit query. Empty fields match everything.
type Filter struct {
	Module   string
	RecordID string
	Action   string
	ActorID  string
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Module != "" {
		q["module"] = f.Module
	}
	if f.RecordID != "" {
		q["record_id"] = f.RecordID
	}
	if f.Action != "" {
		q["action"] = f.Action
	}
	if f.ActorID != "" {
		q["actor_id"] = f.ActorID
	}
	return q
}

package models

import "time"

// ActionLogEntry is appended to the audit collection. Patient and provider
// names are denormalized so the trail survives entity deletion.
type ActionLogEntry struct {
	ID                   string                 `bson:"_id,omitempty"`
	ActorID              uint                   `bson:"actorId"`
	ActorEmail           string                 `bson:"actorEmail,omitempty"`
	Action               string                 `bson:"action"`
	TargetKind           string                 `bson:"targetKind"`
	TargetID             string                 `bson:"targetId"`
	Description          string                 `bson:"description,omitempty"`
	AffectedPatientID    *uint                  `bson:"affectedPatientId,omitempty"`
	AffectedPatientName  string                 `bson:"affectedPatientName,omitempty"`
	AffectedProviderID   *uint                  `bson:"affectedProviderId,omitempty"`
	AffectedProviderName string                 `bson:"affectedProviderName,omitempty"`
	AdditionalData       map[string]interface{} `bson:"additionalData,omitempty"`
	Timestamp            time.Time              `bson:"timestamp"`
}

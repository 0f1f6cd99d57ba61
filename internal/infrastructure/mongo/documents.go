package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rchitlangi/cv-site/api/internal/contact/domain"
)

// ContactEventDocument is the stored form of domain.ContactEvent.
type ContactEventDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	Status     int                `bson:"status"`
	Stage      string             `bson:"stage"`
	Cause      string             `bson:"cause,omitempty"`
	Error      string             `bson:"error,omitempty"`
	ClientIP   string             `bson:"clientIp,omitempty"`
	DurationMS int64              `bson:"durationMs"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func contactEventToDocument(event domain.ContactEvent) ContactEventDocument {
	doc := ContactEventDocument{
		Status:     event.Status,
		Stage:      string(event.Stage),
		Cause:      event.Cause,
		Error:      event.Error,
		ClientIP:   event.ClientIP,
		DurationMS: event.DurationMS,
		CreatedAt:  event.CreatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(event.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func (d ContactEventDocument) toDomain() domain.ContactEvent {
	return domain.ContactEvent{
		ID:         d.ID.Hex(),
		Status:     d.Status,
		Stage:      domain.Stage(d.Stage),
		Cause:      d.Cause,
		Error:      d.Error,
		ClientIP:   d.ClientIP,
		DurationMS: d.DurationMS,
		CreatedAt:  d.CreatedAt,
	}
}

package mongo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// historyDoc stores the plan as its JSON text so the exact bytes returned by
// the model round-trip untouched.
type historyDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"userId"`
	Destination string    `bson:"destination"`
	CheckIn     string    `bson:"checkIn"`
	CheckOut    string    `bson:"checkOut"`
	Plan        string    `bson:"plan"`
	IsPinned    bool      `bson:"isPinned"`
	IsArchived  bool      `bson:"isArchived"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d historyDoc) toDomain() domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:          d.ID,
		UserID:      d.UserID,
		Destination: d.Destination,
		CheckIn:     d.CheckIn,
		CheckOut:    d.CheckOut,
		Plan:        json.RawMessage(d.Plan),
		IsPinned:    d.IsPinned,
		IsArchived:  d.IsArchived,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type historyRepo struct {
	col *mongo.Collection
}

func ownerFilter(userID, id string) bson.M {
	return bson.M{"_id": id, "userId": userID}
}

func (r *historyRepo) CreateHistory(ctx context.Context, h domain.HistoryEntry) error {
	_, err := r.col.InsertOne(ctx, historyDoc{
		ID:          h.ID,
		UserID:      h.UserID,
		Destination: h.Destination,
		CheckIn:     h.CheckIn,
		CheckOut:    h.CheckOut,
		Plan:        string(h.Plan),
		IsPinned:    h.IsPinned,
		IsArchived:  h.IsArchived,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	})
	return mapDuplicate(err)
}

func (r *historyRepo) GetHistory(ctx context.Context, userID, id string) (domain.HistoryEntry, error) {
	var d historyDoc
	if err := r.col.FindOne(ctx, ownerFilter(userID, id)).Decode(&d); err != nil {
		return domain.HistoryEntry{}, mapNotFound(err)
	}
	return d.toDomain(), nil
}

func (r *historyRepo) ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.HistoryEntry, 0)
	for cur.Next(ctx) {
		var d historyDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *historyRepo) UpdateHistoryPlan(
	ctx context.Context,
	userID, id, checkIn, checkOut string,
	plan json.RawMessage,
	now time.Time,
) error {
	return requireMatch(r.col.UpdateOne(ctx, ownerFilter(userID, id), bson.M{"$set": bson.M{
		"checkIn":   checkIn,
		"checkOut":  checkOut,
		"plan":      string(plan),
		"updatedAt": now,
	}}))
}

func (r *historyRepo) UpdateHistoryFlags(
	ctx context.Context,
	userID, id string,
	patch domain.HistoryPatch,
	now time.Time,
) error {
	set := bson.M{"updatedAt": now}
	if patch.IsPinned != nil {
		set["isPinned"] = *patch.IsPinned
	}
	if patch.IsArchived != nil {
		set["isArchived"] = *patch.IsArchived
	}
	return requireMatch(r.col.UpdateOne(ctx, ownerFilter(userID, id), bson.M{"$set": set}))
}

func (r *historyRepo) DeleteHistory(ctx context.Context, userID, id string) error {
	res, err := r.col.DeleteOne(ctx, ownerFilter(userID, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *historyRepo) CountHistory(ctx context.Context, userID string) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"userId": userID})
	return int(n), err
}

package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type otpDoc struct {
	ID       string    `bson:"_id"`
	Email    string    `bson:"email"`
	CodeHash string    `bson:"otp"`
	Purpose  string    `bson:"purpose"`
	IssuedAt time.Time `bson:"issuedAt"`
}

type otpsRepo struct {
	col *mongo.Collection
}

func (r *otpsRepo) CreateOTP(ctx context.Context, rec domain.OTPRecord) error {
	_, err := r.col.InsertOne(ctx, otpDoc{
		ID:       rec.ID,
		Email:    rec.Email,
		CodeHash: rec.CodeHash,
		Purpose:  string(rec.Purpose),
		IssuedAt: rec.IssuedAt,
	})
	return mapDuplicate(err)
}

func (r *otpsRepo) FindActiveOTP(
	ctx context.Context,
	email, codeHash string,
	purpose domain.OTPPurpose,
	issuedAfter time.Time,
) (domain.OTPRecord, error) {
	filter := bson.M{
		"email":    email,
		"otp":      codeHash,
		"issuedAt": bson.M{"$gt": issuedAfter},
	}
	if purpose != "" {
		filter["purpose"] = string(purpose)
	}

	var d otpDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "issuedAt", Value: -1}})
	if err := r.col.FindOne(ctx, filter, opts).Decode(&d); err != nil {
		return domain.OTPRecord{}, mapNotFound(err)
	}
	return domain.OTPRecord{
		ID:       d.ID,
		Email:    d.Email,
		CodeHash: d.CodeHash,
		Purpose:  domain.OTPPurpose(d.Purpose),
		IssuedAt: d.IssuedAt.UTC(),
	}, nil
}

func (r *otpsRepo) DeleteOTPsByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *otpsRepo) CountOTPsByEmail(ctx context.Context, email string) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"email": email})
	return int(n), err
}

// DeleteOTPsIssuedBefore complements the TTL monitor, which only runs once a minute.
func (r *otpsRepo) DeleteOTPsIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"issuedAt": bson.M{"$lte": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

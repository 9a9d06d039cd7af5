// Package mongo is a MongoDB implementation of store.Store.
//
// Documents keep the camelCase field names the mobile client already knows
// from its history payloads. Transactions are not used: a standalone mongod
// has none, and every multi-step flow in the service tolerates a pass-through.
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection   = "users"
	otpsCollection    = "otps"
	historyCollection = "histories"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and pings the server before returning.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// ApplyMigrations creates the indexes the repositories rely on. The OTP TTL
// index lets the server reap expired codes on its own.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mobileNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(otpsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "purpose", Value: 1}}},
		{
			Keys:    bson.D{{Key: "issuedAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(domain.OTPTTL / time.Second)),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(historyCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	return &txStore{Store: s}, nil
}

// WithTx runs fn against the store directly.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(&txStore{Store: s})
}

func (s *Store) Users() store.Users {
	return &usersRepo{col: s.db.Collection(usersCollection)}
}

func (s *Store) OTPs() store.OTPs {
	return &otpsRepo{col: s.db.Collection(otpsCollection)}
}

func (s *Store) History() store.History {
	return &historyRepo{col: s.db.Collection(historyCollection)}
}

// txStore satisfies store.Tx; writes are applied as they happen.
type txStore struct {
	*Store
}

func (t *txStore) Commit() error   { return nil }
func (t *txStore) Rollback() error { return nil }

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func mapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func requireMatch(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heritage-survey/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrStorageUnavailable is returned when the document store cannot be
// reached. Callers translate it to a 500 response; no retries are attempted.
var ErrStorageUnavailable = errors.New("document store unavailable")

type HeritageDB interface {
	Connect(connectionString, databaseName, collectionName string) error
	Close() error
	SaveHeritage(ctx context.Context, record *model.HeritageRecord) (*model.HeritageRecord, error)
	ListHeritages(ctx context.Context) ([]model.HeritageRecord, error)
	CountHeritages(ctx context.Context) (int64, error)
}

type MongoHeritageDB struct {
	Log *zap.Logger

	mongoClient      *mongo.Client
	collection       *mongo.Collection
	connectionString string
	databaseName     string
	collectionName   string
}

// Connect establishes the long-lived client. A failed ping is reported but
// leaves the client in place: the driver reconnects on its own, so operations
// start succeeding once the store becomes reachable.
func (db *MongoHeritageDB) Connect(connectionString, databaseName, collectionName string) error {
	db.connectionString = connectionString
	db.databaseName = databaseName
	db.collectionName = collectionName

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}
	db.mongoClient = client
	db.collection = client.Database(databaseName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	db.Log.Info("connected to MongoDB",
		zap.String("database", databaseName),
		zap.String("collection", collectionName),
	)
	return nil
}

func (db *MongoHeritageDB) Close() error {
	if db.mongoClient != nil {
		if err := db.mongoClient.Disconnect(context.TODO()); err != nil {
			return err
		}
		db.Log.Info("disconnected from MongoDB")
	}
	return nil
}

// SaveHeritage assigns the identifier and creation time and writes the full
// document, embedded image bytes included, as a single insert. All-or-nothing
// comes from the single-document write; there is nothing to roll back.
func (db *MongoHeritageDB) SaveHeritage(ctx context.Context, record *model.HeritageRecord) (*model.HeritageRecord, error) {
	if db.collection == nil {
		return nil, ErrStorageUnavailable
	}

	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if _, err := db.collection.InsertOne(ctx, record); err != nil {
		return nil, db.wrapErr("insert heritage record", err)
	}

	db.Log.Info("heritage record saved",
		zap.String("id", record.ID.Hex()),
		zap.String("serial_number", record.SerialNumber),
	)
	return record, nil
}

// ListHeritages returns every stored record, newest first. There is no
// pagination: the survey collection is expected to stay small, and this is a
// known scaling limit of the endpoint.
func (db *MongoHeritageDB) ListHeritages(ctx context.Context) ([]model.HeritageRecord, error) {
	if db.collection == nil {
		return nil, ErrStorageUnavailable
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, db.wrapErr("find heritage records", err)
	}

	var records []model.HeritageRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, db.wrapErr("decode heritage records", err)
	}
	return records, nil
}

func (db *MongoHeritageDB) CountHeritages(ctx context.Context) (int64, error) {
	if db.collection == nil {
		return 0, ErrStorageUnavailable
	}

	count, err := db.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, db.wrapErr("count heritage records", err)
	}
	return count, nil
}

// wrapErr distinguishes connectivity failures from other write errors so the
// HTTP layer can tell the two apart in diagnostics.
func (db *MongoHeritageDB) wrapErr(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		db.Log.Error("MongoDB unreachable", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestOperationsFailWhenNeverConnected(t *testing.T) {
	db := &MongoHeritageDB{Log: zap.NewNop()}

	_, err := db.SaveHeritage(context.Background(), nil)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.ListHeritages(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = db.CountHeritages(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestWrapErrClassifiesConnectivity(t *testing.T) {
	db := &MongoHeritageDB{Log: zap.NewNop()}

	err := db.wrapErr("insert heritage record", mongo.ErrClientDisconnected)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	writeErr := errors.New("document too large")
	err = db.wrapErr("insert heritage record", writeErr)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, writeErr)
}

func TestCloseWithoutConnect(t *testing.T) {
	db := &MongoHeritageDB{Log: zap.NewNop()}
	assert.NoError(t, db.Close())
}

package logger

import (
	"context"
	"sync"
	"testing"

	common_models "agency-forms/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeInserter struct {
	mu   sync.Mutex
	docs []common_models.Log
}

func (f *fakeInserter) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, document.(common_models.Log))
	return &mongo.InsertOneResult{}, nil
}

func TestDBCoreTeesEntriesToWriter(t *testing.T) {
	sink := &fakeInserter{}
	writer := NewDBLogWriter(sink, "agency-forms-test", 10)

	observed, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(observed, writer))

	log.Info("submission stored", zap.String("request_id", "req-1"), zap.String("ip", "10.0.0.1"))
	log.Debug("below level")
	log.With(zap.String("component", "export")).Warn("slow export")

	writer.Close()

	assert.Equal(t, 2, logs.Len())
	require.Len(t, sink.docs, 2)
	assert.Equal(t, "submission stored", sink.docs[0].Message)
	assert.Equal(t, "req-1", sink.docs[0].RequestID)
	assert.Equal(t, "10.0.0.1", sink.docs[0].IpAddress)
	assert.Equal(t, 20, sink.docs[0].LogLevelId)
	assert.Equal(t, "agency-forms-test", sink.docs[0].AppId)
	assert.Equal(t, 30, sink.docs[1].LogLevelId)
}

func TestAddLogDropsWhenBufferFull(t *testing.T) {
	writer := &DBLogWriter{logChan: make(chan LogEntry, 1)}

	writer.AddLog(LogEntry{Message: "first"})
	writer.AddLog(LogEntry{Message: "second"})

	assert.Len(t, writer.logChan, 1)
}

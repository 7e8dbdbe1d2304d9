package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mypartsrunner/delivery-backend/pkg/config"
	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
)

type fakeOutboxRepo struct {
	pending   []models.OutboxEvent
	published []uuid.UUID
	failed    []uuid.UUID
	fetchErr  error
}

func (f *fakeOutboxRepo) FetchUnpublished(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if limit > len(f.pending) {
		limit = len(f.pending)
	}
	return f.pending[:limit], nil
}

func (f *fakeOutboxRepo) MarkPublished(id uuid.UUID) error {
	f.published = append(f.published, id)
	for i, event := range f.pending {
		if event.ID == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(id uuid.UUID, cause error) error {
	f.failed = append(f.failed, id)
	for i, event := range f.pending {
		if event.ID == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			break
		}
	}
	return nil
}

type fakePublisher struct {
	messages []*gcppubsub.Message
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	return &fakePublishResult{err: f.err}
}

type fakePublishResult struct {
	err error
}

func (r *fakePublishResult) Get(ctx context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "msg-1", nil
}

func queuedEvent(t *testing.T) models.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"notification_id": uuid.NewString()})
	require.NoError(t, err)
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.OutboxEventTypeNotificationQueued,
		AggregateType: enums.OutboxAggregateTypeNotification,
		AggregateID:   uuid.New(),
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}

func newTestService(t *testing.T, repo *fakeOutboxRepo, pub *fakePublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config:     &config.Config{},
		Logger:     logger.New(logger.Options{ServiceName: "outbox-publisher-test"}),
		Repository: repo,
		Publisher:  pub,
	})
	require.NoError(t, err)
	return svc
}

func TestProcessBatchPublishesAndMarks(t *testing.T) {
	event := queuedEvent(t)
	repo := &fakeOutboxRepo{pending: []models.OutboxEvent{event}}
	pub := &fakePublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, []byte(event.Payload), pub.messages[0].Data)
	assert.Equal(t, string(enums.OutboxEventTypeNotificationQueued), pub.messages[0].Attributes["event_type"])
	assert.Equal(t, event.AggregateID.String(), pub.messages[0].Attributes["aggregate_id"])

	require.Len(t, repo.published, 1)
	assert.Equal(t, event.ID, repo.published[0])
	assert.Empty(t, repo.failed)
}

func TestProcessBatchMarksFailedOnPublishError(t *testing.T) {
	event := queuedEvent(t)
	repo := &fakeOutboxRepo{pending: []models.OutboxEvent{event}}
	pub := &fakePublisher{err: errors.New("topic unavailable")}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	assert.Empty(t, repo.published)
	require.Len(t, repo.failed, 1)
	assert.Equal(t, event.ID, repo.failed[0])
}

func TestProcessBatchEmptyQueue(t *testing.T) {
	repo := &fakeOutboxRepo{}
	pub := &fakePublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	require.NoError(t, err)
	assert.False(t, processed)
	assert.Empty(t, pub.messages)
}

func TestProcessBatchPropagatesFetchError(t *testing.T) {
	repo := &fakeOutboxRepo{fetchErr: errors.New("db gone")}
	pub := &fakePublisher{}
	svc := newTestService(t, repo, pub)

	_, err := svc.processBatch(context.Background())
	require.Error(t, err)
	assert.Empty(t, pub.messages)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &fakeOutboxRepo{}
	pub := &fakePublisher{}
	svc := newTestService(t, repo, pub)
	svc.pollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := svc.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewServiceDefaults(t *testing.T) {
	svc := newTestService(t, &fakeOutboxRepo{}, &fakePublisher{})
	assert.Equal(t, defaultBatchSize, svc.batchSize)
	assert.Equal(t, defaultMaxAttempts, svc.maxAttempts)
	assert.Equal(t, time.Duration(defaultPollMs)*time.Millisecond, svc.pollInterval)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(ServiceParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: &fakeOutboxRepo{},
		Publisher:  &fakePublisher{},
	})
	require.Error(t, err)

	_, err = NewService(ServiceParams{
		Config:    &config.Config{},
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Publisher: &fakePublisher{},
	})
	require.Error(t, err)
}

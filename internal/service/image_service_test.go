package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/pkg/objectstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSigner mints deterministic URLs and counts how often it is asked to.
type fakeSigner struct {
	calls int
	ttl   time.Duration
	now   func() time.Time
	err   error
}

func (f *fakeSigner) SignURL(ctx context.Context, bucket, key string, ttl time.Duration) (*objectstore.SignedURL, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	return &objectstore.SignedURL{
		URL:       fmt.Sprintf("https://%s.example.com/%s?sig=%d", bucket, key, f.calls),
		ExpiresAt: f.now().Add(f.ttl),
	}, nil
}

type imageFixture struct {
	store   *memStore
	signer  *fakeSigner
	svc     *imageService
	userId  uuid.UUID
	chatId  uuid.UUID
	msgId   uuid.UUID
	clock   time.Time
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	store := newMemStore()

	f := &imageFixture{
		store:  store,
		userId: uuid.New(),
		chatId: uuid.New(),
		msgId:  uuid.New(),
		clock:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	store.addUser(&entity.User{Id: f.userId, Email: "owner@example.com"})
	store.chats = append(store.chats, &entity.Chat{Id: f.chatId, UserId: f.userId})
	store.messages = append(store.messages, &entity.Message{
		Id: f.msgId, ChatId: f.chatId, Seq: 1, Role: model.RoleAssistant, Content: "your render",
	})

	f.signer = &fakeSigner{ttl: time.Hour, now: func() time.Time { return f.clock }}
	svc := NewImageService(newMemFactory(store), f.signer, time.Hour, nil, "RENDER_READY", nil, nopLogger{}).(*imageService)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *imageFixture) attach(t *testing.T) *dto.ImageResponse {
	t.Helper()
	res, err := f.svc.Attach(context.Background(), &dto.AttachImageRequest{
		MessageId: f.msgId,
		S3Bucket:  "redesign-renders",
		S3Key:     "renders/" + uuid.NewString() + ".png",
		ImageType: "render",
	})
	require.NoError(t, err)
	return res
}

func TestAttachImage(t *testing.T) {
	f := newImageFixture(t)

	res := f.attach(t)
	assert.Equal(t, f.msgId, res.MessageId)
	require.Len(t, f.store.images, 1)
	assert.Equal(t, "redesign-renders", f.store.images[0].S3Bucket)
	assert.Nil(t, f.store.images[0].PresignedUrl)
}

func TestAttachImageUnknownMessage(t *testing.T) {
	f := newImageFixture(t)

	_, err := f.svc.Attach(context.Background(), &dto.AttachImageRequest{
		MessageId: uuid.New(),
		S3Bucket:  "redesign-renders",
		S3Key:     "renders/x.png",
		ImageType: "render",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResolveAccessURLStableWithinTTL(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()
	img := f.attach(t)

	first, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, f.signer.calls)

	// Repeated reads inside the TTL return the same URL without re-signing.
	f.clock = f.clock.Add(10 * time.Minute)
	second, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	assert.Equal(t, first.Url, second.Url)
	assert.Equal(t, first.ExpiresAt, second.ExpiresAt)
	assert.Equal(t, 1, f.signer.calls)
}

func TestResolveAccessURLRefreshAfterExpiry(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()
	img := f.attach(t)

	first, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)

	f.clock = f.clock.Add(2 * time.Hour)
	second, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	assert.NotEqual(t, first.Url, second.Url)
	assert.True(t, second.ExpiresAt.After(first.ExpiresAt), "refreshed URL must carry a strictly later expiry")
	assert.Equal(t, 2, f.signer.calls)

	// The refreshed URL is written back to the row.
	require.NotNil(t, f.store.images[0].PresignedUrl)
	assert.Equal(t, second.Url, *f.store.images[0].PresignedUrl)
}

func TestResolveAccessURLReusesStoredURL(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()
	img := f.attach(t)

	_, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)

	// A second service instance (fresh process cache) still reuses the
	// persisted URL instead of re-signing.
	svc2 := NewImageService(newMemFactory(f.store), f.signer, time.Hour, nil, "RENDER_READY", nil, nopLogger{}).(*imageService)
	svc2.now = func() time.Time { return f.clock }

	_, err = svc2.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, f.signer.calls)
}

func TestResolveAccessURLObjectMissing(t *testing.T) {
	f := newImageFixture(t)
	img := f.attach(t)

	f.signer.err = objectstore.ErrObjectMissing
	_, err := f.svc.ResolveAccessURL(context.Background(), f.userId, img.Id)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindArtifactUnavailable))
}

func TestResolveAccessURLOwnership(t *testing.T) {
	f := newImageFixture(t)
	img := f.attach(t)

	intruder := uuid.New()
	f.store.addUser(&entity.User{Id: intruder})

	_, err := f.svc.ResolveAccessURL(context.Background(), intruder, img.Id)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResolveAccessURLWarmCacheStaysOwnerScoped(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()
	img := f.attach(t)

	// The owner warms the process cache first.
	_, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)

	intruder := uuid.New()
	f.store.addUser(&entity.User{Id: intruder})

	_, err = f.svc.ResolveAccessURL(ctx, intruder, img.Id)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The owner's warm entry is untouched.
	res, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Url)
}

func TestResolveAccessURLServedFromProcessCache(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()
	img := f.attach(t)

	first, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	require.Equal(t, 1, f.signer.calls)

	// Clear the persisted URL; a repeat read inside the TTL must come from
	// the process cache, not the row.
	f.store.images[0].PresignedUrl = nil
	f.store.images[0].UrlExpiresAt = nil

	f.clock = f.clock.Add(10 * time.Minute)
	second, err := f.svc.ResolveAccessURL(ctx, f.userId, img.Id)
	require.NoError(t, err)
	assert.Equal(t, first.Url, second.Url)
	assert.Equal(t, 1, f.signer.calls)
}

func TestResolveAccessURLUnknownImage(t *testing.T) {
	f := newImageFixture(t)

	_, err := f.svc.ResolveAccessURL(context.Background(), f.userId, uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

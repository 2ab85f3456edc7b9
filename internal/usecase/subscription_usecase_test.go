package usecase

import (
	"sync"
	"testing"

	"vidtube/internal/entity"
	"vidtube/pkg/apperr"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type memorySubRepo struct {
	mu   sync.Mutex
	subs map[string]entity.Subscription
}

func newMemorySubRepo() *memorySubRepo {
	return &memorySubRepo{subs: make(map[string]entity.Subscription)}
}

func subKey(subscriberID, channelID string) string {
	return subscriberID + ":" + channelID
}

func (r *memorySubRepo) Get(subscriberID, channelID string) (*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[subKey(subscriberID, channelID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *memorySubRepo) Create(subscriberID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := subKey(subscriberID, channelID)
	if _, ok := r.subs[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.subs[key] = entity.Subscription{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	return nil
}

func (r *memorySubRepo) Delete(subscriberID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, subKey(subscriberID, channelID))
	return nil
}

func (r *memorySubRepo) CountByChannel(channelID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.subs {
		if s.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (r *memorySubRepo) CountBySubscriber(subscriberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.subs {
		if s.SubscriberID == subscriberID {
			n++
		}
	}
	return n, nil
}

func (r *memorySubRepo) ListSubscribers(channelID string, limit, offset int) ([]*entity.Owner, error) {
	return nil, nil
}

func (r *memorySubRepo) ListChannels(subscriberID string, limit, offset int) ([]*entity.Owner, error) {
	return nil, nil
}

func newTestSubscriptionUseCase(t *testing.T) (SubscriptionUseCase, *memorySubRepo, *fakeUserRepo) {
	t.Helper()
	subRepo := newMemorySubRepo()
	userRepo := newFakeUserRepo()
	uc := NewSubscriptionUseCase(subRepo, userRepo, logger.New())
	return uc, subRepo, userRepo
}

func seedUser(t *testing.T, repo *fakeUserRepo, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		FullName: "User " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	assert.NoError(t, repo.Create(user))
	return user
}

func TestSubscriptionToggle_Parity(t *testing.T) {
	uc, _, userRepo := newTestSubscriptionUseCase(t)
	subscriber := seedUser(t, userRepo, "subscriber")
	channel := seedUser(t, userRepo, "channel")

	subscribed, err := uc.Toggle(subscriber.ID, channel.ID)
	assert.NoError(t, err)
	assert.True(t, subscribed)

	subscribed, err = uc.Toggle(subscriber.ID, channel.ID)
	assert.NoError(t, err)
	assert.False(t, subscribed)
}

func TestSubscriptionToggle_SelfSubscribe(t *testing.T) {
	uc, _, userRepo := newTestSubscriptionUseCase(t)
	user := seedUser(t, userRepo, "loner")

	_, err := uc.Toggle(user.ID, user.ID)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestSubscriptionToggle_ChannelNotFound(t *testing.T) {
	uc, _, userRepo := newTestSubscriptionUseCase(t)
	subscriber := seedUser(t, userRepo, "subscriber")

	_, err := uc.Toggle(subscriber.ID, uuid.New().String())
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestSubscribers_Count(t *testing.T) {
	uc, _, userRepo := newTestSubscriptionUseCase(t)
	channel := seedUser(t, userRepo, "channel")
	a := seedUser(t, userRepo, "fan-a")
	b := seedUser(t, userRepo, "fan-b")

	_, err := uc.Toggle(a.ID, channel.ID)
	assert.NoError(t, err)
	_, err = uc.Toggle(b.ID, channel.ID)
	assert.NoError(t, err)

	_, total, err := uc.Subscribers(channel.ID, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = uc.SubscribedChannels(a.ID, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

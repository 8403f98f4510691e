package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/contract"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// memStore backs the in-memory repositories used by the service tests. It
// interprets the same specifications the GORM implementations apply, so
// services run unchanged against it.
type memStore struct {
	mu       sync.Mutex
	users    []*entity.User
	chats    []*entity.Chat
	messages []*entity.Message
	images   []*entity.Image
	prefs    []*entity.DesignPreferences
	plans    []*entity.SubscriptionPlan
	subs     []*entity.UserSubscription
	nextSeq  int64
}

func newMemStore() *memStore {
	return &memStore{}
}

func (st *memStore) addUser(u *entity.User) { st.users = append(st.users, u) }

type memFactory struct {
	store *memStore
}

func newMemFactory(store *memStore) unitofwork.RepositoryFactory {
	return &memFactory{store: store}
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) UserRepository() contract.UserRepository {
	return &memUserRepo{store: u.store}
}
func (u *memUow) ChatRepository() contract.ChatRepository {
	return &memChatRepo{store: u.store}
}
func (u *memUow) MessageRepository() contract.MessageRepository {
	return &memMessageRepo{store: u.store}
}
func (u *memUow) ImageRepository() contract.ImageRepository {
	return &memImageRepo{store: u.store}
}
func (u *memUow) PreferenceRepository() contract.PreferenceRepository {
	return &memPreferenceRepo{store: u.store}
}
func (u *memUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &memSubscriptionRepo{store: u.store}
}

// querySpecs splits the ordering and limit directives out of a spec chain.
type querySpecs struct {
	filters []specification.Specification
	orders  []specification.Specification
	limit   int
}

func splitSpecs(specs []specification.Specification) querySpecs {
	q := querySpecs{limit: -1}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.OrderBy, specification.LedgerOrder:
			q.orders = append(q.orders, s)
		case specification.Limit:
			q.limit = v.N
		default:
			q.filters = append(q.filters, s)
		}
	}
	return q
}

// ---- users ----

type memUserRepo struct {
	store *memStore
}

func userMatches(u *entity.User, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return u.Id == s.ID
	default:
		return true
	}
}

func (r *memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	for _, u := range r.store.users {
		ok := true
		for _, s := range q.filters {
			if !userMatches(u, s) {
				ok = false
				break
			}
		}
		if ok {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}

// ---- chats ----

type memChatRepo struct {
	store *memStore
}

func chatMatches(c *entity.Chat, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return c.Id == s.ID
	case specification.UserOwnedBy:
		return c.UserId == s.UserID
	case specification.NotArchived:
		return !c.IsArchived
	default:
		return true
	}
}

func (r *memChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *chat
	r.store.chats = append(r.store.chats, &cp)
	return nil
}

func (r *memChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	chats, err := r.FindAll(ctx, specs...)
	if err != nil || len(chats) == 0 {
		return nil, err
	}
	return chats[0], nil
}

func (r *memChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	var out []*entity.Chat
	for _, c := range r.store.chats {
		ok := true
		for _, s := range q.filters {
			if !chatMatches(c, s) {
				ok = false
				break
			}
		}
		if ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	for _, o := range q.orders {
		if ob, isOrder := o.(specification.OrderBy); isOrder && ob.Field == "updated_at" {
			sort.SliceStable(out, func(i, j int) bool {
				if ob.Desc {
					return out[i].UpdatedAt.After(out[j].UpdatedAt)
				}
				return out[i].UpdatedAt.Before(out[j].UpdatedAt)
			})
		}
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *memChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	chats, err := r.FindAll(ctx, specs...)
	return int64(len(chats)), err
}

func (r *memChatRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.chats {
		if c.Id == id {
			c.UpdatedAt = at
		}
	}
	return nil
}

func (r *memChatRepo) Archive(ctx context.Context, id uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched int64
	for _, c := range r.store.chats {
		if c.Id == id {
			c.IsArchived = true
			c.UpdatedAt = time.Now()
			matched++
		}
	}
	return matched, nil
}

// ---- messages ----

type memMessageRepo struct {
	store *memStore
}

func messageMatches(m *entity.Message, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return m.Id == s.ID
	case specification.ByChatID:
		return m.ChatId == s.ChatID
	case specification.AfterSeq:
		return m.Seq > s.Seq
	default:
		return true
	}
}

func (r *memMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextSeq++
	message.Seq = r.store.nextSeq
	cp := *message
	r.store.messages = append(r.store.messages, &cp)
	return nil
}

func (r *memMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	msgs, err := r.FindAll(ctx, specs...)
	if err != nil || len(msgs) == 0 {
		return nil, err
	}
	return msgs[0], nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	var out []*entity.Message
	for _, m := range r.store.messages {
		ok := true
		for _, s := range q.filters {
			if !messageMatches(m, s) {
				ok = false
				break
			}
		}
		if ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	for _, o := range q.orders {
		if _, isLedger := o.(specification.LedgerOrder); isLedger {
			sort.SliceStable(out, func(i, j int) bool {
				if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
					return out[i].CreatedAt.Before(out[j].CreatedAt)
				}
				return out[i].Seq < out[j].Seq
			})
		}
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *memMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	msgs, err := r.FindAll(ctx, specs...)
	return int64(len(msgs)), err
}

// ---- images ----

type memImageRepo struct {
	store *memStore
}

func imageMatches(i *entity.Image, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return i.Id == s.ID
	case specification.ByMessageIDs:
		for _, id := range s.MessageIDs {
			if i.MessageId == id {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func (r *memImageRepo) Create(ctx context.Context, image *entity.Image) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *image
	r.store.images = append(r.store.images, &cp)
	return nil
}

func (r *memImageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Image, error) {
	imgs, err := r.FindAll(ctx, specs...)
	if err != nil || len(imgs) == 0 {
		return nil, err
	}
	return imgs[0], nil
}

func (r *memImageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Image, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	var out []*entity.Image
	for _, i := range r.store.images {
		ok := true
		for _, s := range q.filters {
			if !imageMatches(i, s) {
				ok = false
				break
			}
		}
		if ok {
			cp := *i
			out = append(out, &cp)
		}
	}
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *memImageRepo) UpdateAccessURL(ctx context.Context, id uuid.UUID, url string, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, i := range r.store.images {
		if i.Id == id {
			u := url
			e := expiresAt
			i.PresignedUrl = &u
			i.UrlExpiresAt = &e
		}
	}
	return nil
}

// ---- preferences ----

type memPreferenceRepo struct {
	store *memStore
}

func prefsMatches(p *entity.DesignPreferences, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return p.Id == s.ID
	case specification.UserOwnedBy:
		return p.UserId == s.UserID
	default:
		return true
	}
}

func (r *memPreferenceRepo) CreateIfAbsent(ctx context.Context, prefs *entity.DesignPreferences) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.prefs {
		if p.UserId == prefs.UserId {
			return false, nil
		}
	}
	cp := *prefs
	r.store.prefs = append(r.store.prefs, &cp)
	return true, nil
}

func (r *memPreferenceRepo) Update(ctx context.Context, prefs *entity.DesignPreferences) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.prefs {
		if p.Id == prefs.Id {
			cp := *prefs
			r.store.prefs[i] = &cp
		}
	}
	return nil
}

func (r *memPreferenceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignPreferences, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	for _, p := range r.store.prefs {
		ok := true
		for _, s := range q.filters {
			if !prefsMatches(p, s) {
				ok = false
				break
			}
		}
		if ok {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// ---- subscriptions ----

type memSubscriptionRepo struct {
	store *memStore
}

func subMatches(sub *entity.UserSubscription, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return sub.Id == s.ID
	case specification.UserOwnedBy:
		return sub.UserId == s.UserID
	case specification.FilterBy:
		switch s.Field {
		case "status":
			return sub.Status == s.Value
		case "midtrans_order_id":
			return sub.MidtransOrderId == s.Value
		}
		return true
	default:
		return true
	}
}

func (r *memSubscriptionRepo) FindAllPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.SubscriptionPlan(nil), r.store.plans...), nil
}

func (r *memSubscriptionRepo) FindPlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	for _, p := range r.store.plans {
		ok := true
		for _, s := range q.filters {
			if byID, isByID := s.(specification.ByID); isByID && p.Id != byID.ID {
				ok = false
				break
			}
		}
		if ok {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memSubscriptionRepo) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *sub
	r.store.subs = append(r.store.subs, &cp)
	return nil
}

func (r *memSubscriptionRepo) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, s := range r.store.subs {
		if s.Id == sub.Id {
			cp := *sub
			r.store.subs[i] = &cp
		}
	}
	return nil
}

func (r *memSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := splitSpecs(specs)
	var out []*entity.UserSubscription
	for _, sub := range r.store.subs {
		ok := true
		for _, s := range q.filters {
			if !subMatches(sub, s) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, sub)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	for _, o := range q.orders {
		if ob, isOrder := o.(specification.OrderBy); isOrder && ob.Field == "created_at" && ob.Desc {
			sort.SliceStable(out, func(i, j int) bool {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			})
		}
	}
	cp := *out[0]
	return &cp, nil
}

// ---- misc test doubles ----

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// allowAllUsage grants every render credit.
type allowAllUsage struct{}

func (allowAllUsage) ConsumeRenderCredit(ctx context.Context, userId uuid.UUID) error { return nil }
func (allowAllUsage) RemainingRenderCredits(ctx context.Context, userId uuid.UUID) (int, error) {
	return 1, nil
}

// denyUsage simulates a user who exhausted the daily render quota.
type denyUsage struct {
	err error
}

func (d denyUsage) ConsumeRenderCredit(ctx context.Context, userId uuid.UUID) error { return d.err }
func (d denyUsage) RemainingRenderCredits(ctx context.Context, userId uuid.UUID) (int, error) {
	return 0, nil
}

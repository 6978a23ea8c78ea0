package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/platekeeper/internal/plates/domain"
)

var errInjected = errors.New("injected store failure")

// mutation is one successful write observed by fakeStore.
type mutation struct {
	op         string
	collection domain.Collection
	key        domain.PlateKey
	id         string
}

func (m mutation) String() string {
	return fmt.Sprintf("%s %s %s %s", m.op, m.collection, m.key, m.id)
}

// fakeStore is an in-memory registry that journals every successful mutation
// and can fail a named operation such as "blacklist.put".
type fakeStore struct {
	mu        sync.Mutex
	plates    map[string]*domain.AuthorizedRecord
	blacklist map[domain.PlateKey]*domain.BlacklistRecord
	entries   []*domain.EntryEvent
	journal   []mutation
	failures  map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plates:    make(map[string]*domain.AuthorizedRecord),
		blacklist: make(map[domain.PlateKey]*domain.BlacklistRecord),
		failures:  make(map[string]error),
	}
}

func (s *fakeStore) failOn(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = errInjected
}

func (s *fakeStore) fail(op string) error {
	return s.failures[op]
}

func (s *fakeStore) mutations() []mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mutation(nil), s.journal...)
}

// seedPlate and seedBlacklist bypass the journal.
func (s *fakeStore) seedPlate(id string, key domain.PlateKey, owner string) *domain.AuthorizedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := domain.NewAuthorizedRecord(id, key, owner, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	s.plates[id] = rec
	return rec
}

func (s *fakeStore) seedBlacklist(key domain.PlateKey, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[key] = domain.NewBlacklistRecord(key, at)
}

func (s *fakeStore) authorizedKeys() map[domain.PlateKey]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make(map[domain.PlateKey]int)
	for _, rec := range s.plates {
		keys[rec.Key()]++
	}
	return keys
}

func (s *fakeStore) isBlacklisted(key domain.PlateKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blacklist[key]
	return ok
}

func (s *fakeStore) Plates() domain.AuthorizedRepository   { return fakePlates{s} }
func (s *fakeStore) Blacklist() domain.BlacklistRepository { return fakeBlacklist{s} }
func (s *fakeStore) Entries() domain.EntryRepository       { return fakeEntries{s} }

type fakePlates struct{ s *fakeStore }

func (r fakePlates) FindByKey(_ context.Context, key domain.PlateKey) (*domain.AuthorizedRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plates.find"); err != nil {
		return nil, err
	}
	for _, rec := range r.s.plates {
		if rec.Key() == key {
			return rec, nil
		}
	}
	return nil, &domain.NotFoundError{Collection: domain.CollectionPlates, Key: key}
}

func (r fakePlates) FindByID(_ context.Context, id string) (*domain.AuthorizedRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.plates[id]
	if !ok {
		return nil, &domain.NotFoundError{Collection: domain.CollectionPlates, ID: id}
	}
	return rec, nil
}

func (r fakePlates) List(_ context.Context) ([]*domain.AuthorizedRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plates.list"); err != nil {
		return nil, err
	}
	out := make([]*domain.AuthorizedRecord, 0, len(r.s.plates))
	for _, rec := range r.s.plates {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r fakePlates) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.plates), nil
}

func (r fakePlates) Insert(_ context.Context, record *domain.AuthorizedRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plates.insert"); err != nil {
		return err
	}
	for _, rec := range r.s.plates {
		if rec.Key() == record.Key() {
			return &domain.DuplicateKeyError{Collection: domain.CollectionPlates, Key: record.Key()}
		}
	}
	r.s.plates[record.ID()] = record
	r.s.journal = append(r.s.journal, mutation{"insert", domain.CollectionPlates, record.Key(), record.ID()})
	return nil
}

func (r fakePlates) Update(_ context.Context, id string, update domain.AuthorizedUpdate) (*domain.AuthorizedRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plates.update"); err != nil {
		return nil, err
	}
	rec, ok := r.s.plates[id]
	if !ok {
		return nil, &domain.NotFoundError{Collection: domain.CollectionPlates, ID: id}
	}
	for otherID, other := range r.s.plates {
		if otherID != id && other.Key() == update.Key {
			return nil, &domain.DuplicateKeyError{Collection: domain.CollectionPlates, Key: update.Key}
		}
	}
	updated := rec.Apply(update)
	r.s.plates[id] = updated
	r.s.journal = append(r.s.journal, mutation{"update", domain.CollectionPlates, update.Key, id})
	return updated, nil
}

func (r fakePlates) Remove(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("plates.remove"); err != nil {
		return err
	}
	rec, ok := r.s.plates[id]
	if !ok {
		return nil
	}
	delete(r.s.plates, id)
	r.s.journal = append(r.s.journal, mutation{"remove", domain.CollectionPlates, rec.Key(), id})
	return nil
}

type fakeBlacklist struct{ s *fakeStore }

func (r fakeBlacklist) FindByKey(_ context.Context, key domain.PlateKey) (*domain.BlacklistRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("blacklist.find"); err != nil {
		return nil, err
	}
	rec, ok := r.s.blacklist[key]
	if !ok {
		return nil, &domain.NotFoundError{Collection: domain.CollectionBlacklist, Key: key}
	}
	return rec, nil
}

func (r fakeBlacklist) List(_ context.Context) ([]*domain.BlacklistRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.BlacklistRecord, 0, len(r.s.blacklist))
	for _, rec := range r.s.blacklist {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (r fakeBlacklist) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.blacklist), nil
}

func (r fakeBlacklist) Insert(_ context.Context, record *domain.BlacklistRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blacklist[record.Key()]; ok {
		return &domain.DuplicateKeyError{Collection: domain.CollectionBlacklist, Key: record.Key()}
	}
	r.s.blacklist[record.Key()] = record
	r.s.journal = append(r.s.journal, mutation{"insert", domain.CollectionBlacklist, record.Key(), ""})
	return nil
}

func (r fakeBlacklist) Put(_ context.Context, record *domain.BlacklistRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("blacklist.put"); err != nil {
		return err
	}
	r.s.blacklist[record.Key()] = record
	r.s.journal = append(r.s.journal, mutation{"put", domain.CollectionBlacklist, record.Key(), ""})
	return nil
}

func (r fakeBlacklist) Remove(_ context.Context, key domain.PlateKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("blacklist.remove"); err != nil {
		return err
	}
	if _, ok := r.s.blacklist[key]; !ok {
		return nil
	}
	delete(r.s.blacklist, key)
	r.s.journal = append(r.s.journal, mutation{"remove", domain.CollectionBlacklist, key, ""})
	return nil
}

type fakeEntries struct{ s *fakeStore }

func (r fakeEntries) Append(_ context.Context, event *domain.EntryEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("entries.append"); err != nil {
		return err
	}
	event.SetID(int64(len(r.s.entries) + 1))
	r.s.entries = append(r.s.entries, event)
	r.s.journal = append(r.s.journal, mutation{"append", domain.CollectionEntries, event.Plate(), ""})
	return nil
}

func (r fakeEntries) Latest(_ context.Context) (*domain.EntryEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.entries) == 0 {
		return nil, &domain.NotFoundError{Collection: domain.CollectionEntries}
	}
	return r.s.entries[len(r.s.entries)-1], nil
}

func (r fakeEntries) ListRecent(_ context.Context, limit int) ([]*domain.EntryEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.EntryEvent
	for i := len(r.s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.entries[i])
	}
	return out, nil
}

// mockGate records prompts and answers from expectations.
type mockGate struct {
	mock.Mock
}

func (m *mockGate) Confirm(ctx context.Context, prompt Prompt) (Decision, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(Decision), args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

// sequentialIDs returns p1, p2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func newTestService(store *fakeStore) *RegistryService {
	return NewRegistryService(store.Plates(), store.Blacklist(), store.Entries(),
		WithClock(fixedClock{t: testNow}),
		WithIDGenerator(sequentialIDs()),
	)
}

// recordingView is a ViewHook that logs its calls.
type recordingView struct {
	calls []string
}

func (v *recordingView) Remove(id string)  { v.calls = append(v.calls, "remove "+id) }
func (v *recordingView) Restore(id string) { v.calls = append(v.calls, "restore "+id) }

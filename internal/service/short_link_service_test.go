package service

import (
	"context"
	"errors"
	"fmt"
	"shortlink-service/internal/models"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/shortcode"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeLinkStore struct {
	links map[string]*models.ShortLink

	existsErrs  int // сколько первых кандидатов считать занятыми
	claimRaces  int // сколько первых Claim завершать гонкой
	existsCalls int
	claimCalls  int
	nextSeq     uint64
}

func newFakeLinkStore() *fakeLinkStore {
	return &fakeLinkStore{links: make(map[string]*models.ShortLink)}
}

func (f *fakeLinkStore) Claim(link *models.ShortLink) error {
	f.claimCalls++
	if f.claimRaces > 0 {
		f.claimRaces--
		return repository.ErrCodeTaken
	}
	if _, ok := f.links[link.Code]; ok {
		return repository.ErrCodeTaken
	}
	link.ID = uuid.New()
	f.links[link.Code] = link
	return nil
}

func (f *fakeLinkStore) CodeExists(code string) (bool, error) {
	f.existsCalls++
	if f.existsErrs > 0 {
		f.existsErrs--
		return true, nil
	}
	_, ok := f.links[code]
	return ok, nil
}

func (f *fakeLinkStore) FindByCode(code string) (*models.ShortLink, error) {
	if link, ok := f.links[code]; ok {
		return link, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeLinkStore) FindLiveByLongURL(longURL string) (*models.ShortLink, error) {
	for _, link := range f.links {
		if link.LongURL == longURL && !link.IsCustom && !link.Expired() {
			return link, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeLinkStore) Update(link *models.ShortLink) error {
	f.links[link.Code] = link
	return nil
}

func (f *fakeLinkStore) Delete(link *models.ShortLink) error {
	delete(f.links, link.Code)
	return nil
}

func (f *fakeLinkStore) NextSequentialID() (uint64, error) {
	f.nextSeq++
	return f.nextSeq, nil
}

type fakeCache struct {
	entries     map[string]CachedLink
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]CachedLink)}
}

func (f *fakeCache) Get(_ context.Context, code string) (*CachedLink, bool) {
	if cl, ok := f.entries[code]; ok {
		return &cl, true
	}
	return nil, false
}

func (f *fakeCache) Set(_ context.Context, code string, link CachedLink, _ time.Duration) {
	f.entries[code] = link
}

func (f *fakeCache) Invalidate(_ context.Context, code string) {
	f.invalidated = append(f.invalidated, code)
	delete(f.entries, code)
}

func newTestService(store *fakeLinkStore, cache *fakeCache) *ShortLinkService {
	return NewShortLinkService(store, cache, zap.NewNop(), shortcode.StrategyHashA, 7)
}

// Протокол повторов: хранилище считает первые 2 кандидата занятыми,
// третий проходит — должно быть ровно 3 обращения к генератору и в
// ответе именно третий кандидат.
func TestCreateShortLink_CollisionRetry(t *testing.T) {
	store := newFakeLinkStore()
	store.existsErrs = 2
	s := newTestService(store, newFakeCache())

	genCalls := 0
	s.generate = func(shortcode.Strategy, shortcode.Options) (string, error) {
		genCalls++
		return fmt.Sprintf("cand%03d", genCalls), nil
	}

	link, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}
	if genCalls != 3 {
		t.Fatalf("expected exactly 3 generation attempts, got %d", genCalls)
	}
	if link.Code != "cand003" {
		t.Fatalf("expected the 3rd candidate, got %s", link.Code)
	}
}

func TestCreateShortLink_ClaimRace(t *testing.T) {
	store := newFakeLinkStore()
	store.claimRaces = 2 // проверка проходит, вставку перехватывает конкурент
	s := newTestService(store, newFakeCache())

	genCalls := 0
	s.generate = func(shortcode.Strategy, shortcode.Options) (string, error) {
		genCalls++
		return fmt.Sprintf("race%03d", genCalls), nil
	}

	link, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}
	if genCalls != 3 {
		t.Fatalf("expected 3 generation attempts, got %d", genCalls)
	}
	if store.claimCalls != 3 {
		t.Fatalf("expected 3 claim attempts, got %d", store.claimCalls)
	}
	if link.Code != "race003" {
		t.Fatalf("expected the 3rd candidate, got %s", link.Code)
	}
}

func TestCreateShortLink_CodeSpaceExhausted(t *testing.T) {
	store := newFakeLinkStore()
	store.existsErrs = maxCodeAttempts
	s := newTestService(store, newFakeCache())

	genCalls := 0
	s.generate = func(shortcode.Strategy, shortcode.Options) (string, error) {
		genCalls++
		return fmt.Sprintf("busy%03d", genCalls), nil
	}

	_, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if !errors.Is(err, ErrCodeSpaceExhausted) {
		t.Fatalf("expected ErrCodeSpaceExhausted, got %v", err)
	}
	if genCalls != maxCodeAttempts {
		t.Fatalf("expected %d generation attempts, got %d", maxCodeAttempts, genCalls)
	}
}

func TestCreateShortLink_Dedup(t *testing.T) {
	store := newFakeLinkStore()
	s := newTestService(store, newFakeCache())

	first, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}

	genCalls := 0
	s.generate = func(shortcode.Strategy, shortcode.Options) (string, error) {
		genCalls++
		return "unused", nil
	}

	second, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}
	if second.Code != first.Code {
		t.Fatalf("same longUrl must reuse the code: %s != %s", second.Code, first.Code)
	}
	if genCalls != 0 {
		t.Fatalf("dedup must not touch the generator, got %d calls", genCalls)
	}
}

func TestCreateShortLink_CustomCode(t *testing.T) {
	store := newFakeLinkStore()
	s := newTestService(store, newFakeCache())

	link, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com", CustomCode: "my_promo-1"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}
	if !link.IsCustom || link.Code != "my_promo-1" {
		t.Fatalf("unexpected link: %+v", link)
	}

	// повторное занятие того же кода
	_, err = s.CreateShortLink(CreateLinkInput{LongURL: "https://other.com", CustomCode: "my_promo-1"})
	if !errors.Is(err, ErrCustomCodeTaken) {
		t.Fatalf("expected ErrCustomCodeTaken, got %v", err)
	}
}

func TestCreateShortLink_InvalidCustomCode(t *testing.T) {
	s := newTestService(newFakeLinkStore(), newFakeCache())

	invalid := []string{
		"has space",
		"пример",
		"semi;colon",
		"0123456789012345678901234567890", // 31 символ
	}
	for _, code := range invalid {
		_, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com", CustomCode: code})
		if !errors.Is(err, ErrInvalidCustomCode) {
			t.Errorf("custom code %q: expected ErrInvalidCustomCode, got %v", code, err)
		}
	}
}

func TestCreateShortLink_UnknownStrategy(t *testing.T) {
	s := newTestService(newFakeLinkStore(), newFakeCache())

	_, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com", Strategy: "base64"})
	if !errors.Is(err, shortcode.ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}
}

func TestCreateShortLink_SequentialUsesStoreSequence(t *testing.T) {
	store := newFakeLinkStore()
	store.nextSeq = 124 // следующий nextval вернёт 125
	s := newTestService(store, newFakeCache())

	link, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com", Strategy: "sequential"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}
	if link.Code != "21" { // 125 = 2*62 + 1
		t.Fatalf("expected code 21 for id 125, got %s", link.Code)
	}
}

func TestResolve(t *testing.T) {
	store := newFakeLinkStore()
	cache := newFakeCache()
	s := newTestService(store, cache)

	link, err := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if err != nil {
		t.Fatalf("CreateShortLink error: %v", err)
	}

	resolved, err := s.Resolve(context.Background(), link.Code)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.LongURL != "https://example.com" {
		t.Fatalf("unexpected long url: %s", resolved.LongURL)
	}
	if _, ok := cache.entries[link.Code]; !ok {
		t.Fatal("resolved link must be cached")
	}

	// повторный резолв идёт из кеша даже после удаления из хранилища
	delete(store.links, link.Code)
	if _, err := s.Resolve(context.Background(), link.Code); err != nil {
		t.Fatalf("cached Resolve error: %v", err)
	}
}

func TestResolve_NotFound(t *testing.T) {
	s := newTestService(newFakeLinkStore(), newFakeCache())

	_, err := s.Resolve(context.Background(), "missing")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestResolve_Expired(t *testing.T) {
	store := newFakeLinkStore()
	cache := newFakeCache()
	s := newTestService(store, cache)

	past := time.Now().Add(-time.Hour)
	store.links["old"] = &models.ShortLink{ID: uuid.New(), Code: "old", LongURL: "https://example.com", ExpiresAt: &past}

	_, err := s.Resolve(context.Background(), "old")
	if !errors.Is(err, ErrLinkExpired) {
		t.Fatalf("expected ErrLinkExpired, got %v", err)
	}
	if _, ok := cache.entries["old"]; ok {
		t.Fatal("expired link must not be cached")
	}

	// карточка истёкшей ссылки остаётся доступной
	if _, err := s.GetByCode("old"); err != nil {
		t.Fatalf("GetByCode must return expired links, got %v", err)
	}
}

func TestUpdateShortLink(t *testing.T) {
	store := newFakeLinkStore()
	cache := newFakeCache()
	s := newTestService(store, cache)

	link, _ := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if _, err := s.Resolve(context.Background(), link.Code); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	newURL := "https://example.org/landing"
	updated, err := s.UpdateShortLink(context.Background(), link.Code, UpdateLinkInput{LongURL: &newURL})
	if err != nil {
		t.Fatalf("UpdateShortLink error: %v", err)
	}
	if updated.LongURL != newURL {
		t.Fatalf("long url not updated: %s", updated.LongURL)
	}
	if len(cache.invalidated) == 0 || cache.invalidated[0] != link.Code {
		t.Fatal("cache must be invalidated on update")
	}
}

func TestUpdateShortLink_Expired(t *testing.T) {
	store := newFakeLinkStore()
	s := newTestService(store, newFakeCache())

	past := time.Now().Add(-time.Minute)
	store.links["old"] = &models.ShortLink{ID: uuid.New(), Code: "old", LongURL: "https://example.com", ExpiresAt: &past}

	newURL := "https://example.org"
	_, err := s.UpdateShortLink(context.Background(), "old", UpdateLinkInput{LongURL: &newURL})
	if !errors.Is(err, ErrLinkExpired) {
		t.Fatalf("expected ErrLinkExpired, got %v", err)
	}
}

func TestDeleteShortLink(t *testing.T) {
	store := newFakeLinkStore()
	cache := newFakeCache()
	s := newTestService(store, cache)

	link, _ := s.CreateShortLink(CreateLinkInput{LongURL: "https://example.com"})
	if err := s.DeleteShortLink(context.Background(), link.Code); err != nil {
		t.Fatalf("DeleteShortLink error: %v", err)
	}
	if _, ok := store.links[link.Code]; ok {
		t.Fatal("link must be removed from the store")
	}
	if _, err := s.GetByCode(link.Code); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound after delete, got %v", err)
	}
}

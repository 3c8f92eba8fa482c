package service

import (
	"context"
	"errors"
	"regexp"
	"shortlink-service/internal/models"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/shortcode"
	"time"

	"go.uber.org/zap"
)

var (
	ErrLinkNotFound       = errors.New("short link not found")
	ErrLinkExpired        = errors.New("short link expired")
	ErrCustomCodeTaken    = errors.New("custom code already taken")
	ErrInvalidCustomCode  = errors.New("invalid custom code")
	ErrCodeSpaceExhausted = errors.New("code generation retries exhausted")
	ErrCreateShortLink    = errors.New("error creating short link")
)

// maxCodeAttempts ограничивает цикл генерация -> проверка -> вставка,
// чтобы при исчерпании бюджета вернуть временную ошибку вместо
// бесконечного перебора кандидатов.
const maxCodeAttempts = 5

const cacheTTL = time.Hour

// Кастомные коды шире строгого Base62: допускаются '_' и '-'.
var customCodePattern = regexp.MustCompile(`^[0-9a-zA-Z_-]{1,30}$`)

type ShortLinkService struct {
	repo  LinkStore
	cache LinkCache
	Log   *zap.Logger

	strategy   shortcode.Strategy
	codeLength int

	// подменяется в тестах для подсчёта попыток генерации
	generate func(shortcode.Strategy, shortcode.Options) (string, error)
}

func NewShortLinkService(repo LinkStore, cache LinkCache, log *zap.Logger, strategy shortcode.Strategy, codeLength int) *ShortLinkService {
	if codeLength <= 0 {
		codeLength = shortcode.DefaultLength
	}
	return &ShortLinkService{
		repo:       repo,
		cache:      cache,
		Log:        log,
		strategy:   strategy,
		codeLength: codeLength,
		generate:   shortcode.Generate,
	}
}

type CreateLinkInput struct {
	LongURL     string
	CustomCode  string
	Strategy    string
	ExpireAfter *time.Duration
}

// CreateShortLink создаёт ссылку: кастомный код занимается напрямую,
// иначе повторный longUrl переиспользует живую запись, а новый код
// подбирается по протоколу повторов из кандидатов движка стратегий.
func (s *ShortLinkService) CreateShortLink(in CreateLinkInput) (*models.ShortLink, error) {
	var expiresAt *time.Time
	if in.ExpireAfter != nil {
		exp := time.Now().Add(*in.ExpireAfter)
		expiresAt = &exp
	}

	if in.CustomCode != "" {
		return s.claimCustomCode(in, expiresAt)
	}

	// Натуральная дедупликация: тот же longUrl без кастомного кода
	// возвращает уже существующую живую ссылку.
	if existing, err := s.repo.FindLiveByLongURL(in.LongURL); err == nil && existing != nil {
		return existing, nil
	}

	strategy := s.strategy
	if in.Strategy != "" {
		parsed, err := shortcode.ParseStrategy(in.Strategy)
		if err != nil {
			return nil, err
		}
		strategy = parsed
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.nextCandidate(strategy, in.LongURL)
		if err != nil {
			return nil, err
		}

		taken, err := s.repo.CodeExists(code)
		if err != nil {
			s.Log.Error("Ошибка проверки кода в хранилище", zap.Error(err))
			return nil, ErrCreateShortLink
		}
		if taken {
			s.Log.Warn("Коллизия кандидата короткого кода",
				zap.String("code", code),
				zap.Int("attempt", attempt))
			continue
		}

		link := &models.ShortLink{
			Code:      code,
			LongURL:   in.LongURL,
			ExpiresAt: expiresAt,
		}
		err = s.repo.Claim(link)
		if errors.Is(err, repository.ErrCodeTaken) {
			// гонка между проверкой и вставкой, индекс БД — арбитр
			s.Log.Warn("Кандидат занят конкурентным запросом",
				zap.String("code", code),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.Log.Error("Не удалось создать короткую ссылку", zap.Error(err))
			return nil, ErrCreateShortLink
		}
		return link, nil
	}

	s.Log.Error("Исчерпан бюджет попыток генерации кода",
		zap.Int("attempts", maxCodeAttempts))
	return nil, ErrCodeSpaceExhausted
}

func (s *ShortLinkService) claimCustomCode(in CreateLinkInput, expiresAt *time.Time) (*models.ShortLink, error) {
	if !customCodePattern.MatchString(in.CustomCode) {
		return nil, ErrInvalidCustomCode
	}

	link := &models.ShortLink{
		Code:      in.CustomCode,
		LongURL:   in.LongURL,
		IsCustom:  true,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Claim(link); err != nil {
		if errors.Is(err, repository.ErrCodeTaken) {
			return nil, ErrCustomCodeTaken
		}
		s.Log.Error("Не удалось занять кастомный код", zap.Error(err))
		return nil, ErrCreateShortLink
	}
	return link, nil
}

func (s *ShortLinkService) nextCandidate(strategy shortcode.Strategy, longURL string) (string, error) {
	opts := shortcode.Options{URL: longURL, Length: s.codeLength}
	if strategy == shortcode.StrategySequential {
		id, err := s.repo.NextSequentialID()
		if err != nil {
			s.Log.Error("Не удалось получить значение последовательности", zap.Error(err))
			return "", ErrCreateShortLink
		}
		opts.SequentialID = &id
	}
	return s.generate(strategy, opts)
}

// Resolve возвращает ссылку для редиректа: истёкшие не резолвятся.
// Живые ответы кешируются до часа, но не дольше собственного expires_at.
func (s *ShortLinkService) Resolve(ctx context.Context, code string) (*models.ShortLink, error) {
	if cached, ok := s.cache.Get(ctx, code); ok {
		return &models.ShortLink{ID: cached.ID, Code: code, LongURL: cached.LongURL}, nil
	}

	link, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if link.Expired() {
		return nil, ErrLinkExpired
	}

	ttl := cacheTTL
	if link.ExpiresAt != nil {
		if until := time.Until(*link.ExpiresAt); until < ttl {
			ttl = until
		}
	}
	if ttl > 0 {
		s.cache.Set(ctx, code, CachedLink{ID: link.ID, LongURL: link.LongURL}, ttl)
	}
	return link, nil
}

// GetByCode возвращает ссылку в любом состоянии, включая истёкшие:
// карточка и аналитика доступны до явного удаления.
func (s *ShortLinkService) GetByCode(code string) (*models.ShortLink, error) {
	link, err := s.repo.FindByCode(code)
	if err != nil {
		s.Log.Warn("Короткая ссылка не найдена", zap.String("code", code), zap.Error(err))
		return nil, ErrLinkNotFound
	}
	return link, nil
}

type UpdateLinkInput struct {
	LongURL     *string
	ExpireAfter *time.Duration
	ClearExpiry bool
}

// UpdateShortLink меняет адрес назначения и/или сбрасывает срок жизни.
// Истёкшая ссылка не редактируется.
func (s *ShortLinkService) UpdateShortLink(ctx context.Context, code string, in UpdateLinkInput) (*models.ShortLink, error) {
	link, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if link.Expired() {
		return nil, ErrLinkExpired
	}

	if in.LongURL != nil {
		link.LongURL = *in.LongURL
	}
	if in.ClearExpiry {
		link.ExpiresAt = nil
	} else if in.ExpireAfter != nil {
		exp := time.Now().Add(*in.ExpireAfter)
		link.ExpiresAt = &exp
	}

	if err := s.repo.Update(link); err != nil {
		s.Log.Error("Не удалось обновить короткую ссылку", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	s.cache.Invalidate(ctx, code)
	return link, nil
}

// DeleteShortLink удаляет ссылку вместе с кликами. Код обратно в оборот
// не возвращается: последовательность и стратегии новых кодов не зависят
// от удалённых записей.
func (s *ShortLinkService) DeleteShortLink(ctx context.Context, code string) error {
	link, err := s.GetByCode(code)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(link); err != nil {
		s.Log.Error("Не удалось удалить короткую ссылку", zap.String("code", code), zap.Error(err))
		return err
	}
	s.cache.Invalidate(ctx, code)
	return nil
}

package shortcode

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DefaultLength — длина генерируемого кода по умолчанию.
const DefaultLength = 7

// Strategy выбирает алгоритм генерации кандидата короткого кода.
type Strategy string

const (
	StrategySequential   Strategy = "sequential"
	StrategyHashA        Strategy = "hash-a"
	StrategyHashB        Strategy = "hash-b"
	StrategySecureRandom Strategy = "secure-random"
	StrategyTimeBased    Strategy = "time-based"
)

var ErrInvalidArguments = errors.New("invalid generation arguments")

// ParseStrategy проверяет строку из запроса/конфига и возвращает стратегию.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySequential, StrategyHashA, StrategyHashB, StrategySecureRandom, StrategyTimeBased:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidArguments, s)
}

// Options — входные данные стратегий.
// URL обязателен для hash-a и hash-b, SequentialID — для sequential.
// Length должен быть положительным для всех стратегий, кроме sequential
// (её длина растёт вместе с id).
type Options struct {
	URL          string
	SequentialID *uint64
	Length       int
}

// Generate возвращает кандидата короткого кода. Кандидат не гарантирует
// глобальную уникальность: вызывающая сторона обязана проверить его через
// хранилище и при коллизии повторить вызов.
//
// Чистая функция без I/O, безопасна для конкурентных вызовов.
func Generate(strategy Strategy, opts Options) (string, error) {
	switch strategy {
	case StrategySequential:
		if opts.SequentialID == nil {
			return "", fmt.Errorf("%w: sequential strategy requires an id", ErrInvalidArguments)
		}
		return Encode(*opts.SequentialID), nil
	case StrategyHashA:
		return hashCode(opts, digestMD5)
	case StrategyHashB:
		return hashCode(opts, digestSHA256)
	case StrategySecureRandom:
		if opts.Length <= 0 {
			return "", fmt.Errorf("%w: length must be positive", ErrInvalidArguments)
		}
		return randomBase62(opts.Length)
	case StrategyTimeBased:
		return timeBasedCode(opts)
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidArguments, strategy)
}

// hashCode: digest(url + millis + случайная соль) -> первые 16 hex-символов
// -> uint64 -> mod 62^length -> Base62, слева дополняется случайными
// символами до точной длины. Соль и время включены намеренно: повторный
// вызов для того же URL даёт другого кандидата.
func hashCode(opts Options, digest func([]byte) string) (string, error) {
	if opts.URL == "" {
		return "", fmt.Errorf("%w: hash strategies require a url", ErrInvalidArguments)
	}
	if opts.Length <= 0 {
		return "", fmt.Errorf("%w: length must be positive", ErrInvalidArguments)
	}

	salt, err := randomUint64()
	if err != nil {
		return "", err
	}
	seed := opts.URL + strconv.FormatInt(time.Now().UnixMilli(), 10) + strconv.FormatUint(salt, 10)

	sum := digest([]byte(seed))
	value, err := strconv.ParseUint(sum[:16], 16, 64)
	if err != nil {
		return "", err
	}

	// 62^11 > MaxUint64, при length >= 11 взятие остатка ничего не меняет.
	if opts.Length < 11 {
		space := uint64(1)
		for i := 0; i < opts.Length; i++ {
			space *= 62
		}
		value %= space
	}

	code := Encode(value)
	if len(code) < opts.Length {
		pad, err := randomBase62(opts.Length - len(code))
		if err != nil {
			return "", err
		}
		code = pad + code
	}
	return code, nil
}

// timeBasedCode: Base62 от текущих миллисекунд, при нехватке длины
// дополняется случайными символами справа. Берётся суффикс: младшие
// разряды меняются чаще всего и несут максимум энтропии.
func timeBasedCode(opts Options) (string, error) {
	if opts.Length <= 0 {
		return "", fmt.Errorf("%w: length must be positive", ErrInvalidArguments)
	}

	code := Encode(uint64(time.Now().UnixMilli()))
	if len(code) < opts.Length {
		pad, err := randomBase62(opts.Length - len(code))
		if err != nil {
			return "", err
		}
		code += pad
	}
	return code[len(code)-opts.Length:], nil
}

// randomBase62 возвращает n криптослучайных символов алфавита.
func randomBase62(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	code := make([]byte, n)
	for i, b := range raw {
		code[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(code), nil
}

func randomUint64() (uint64, error) {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw[:]), nil
}

func digestMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func digestSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package shortcode

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Alphabet — 62 символа Base62, значение цифры = индекс в строке.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var ErrInvalidEncoding = errors.New("invalid base62 encoding")

// Encode кодирует неотрицательное число в строку Base62.
// 0 кодируется как "0", ведущих нулей не бывает.
func Encode(n uint64) string {
	if n == 0 {
		return string(Alphabet[0])
	}

	var buf [11]byte // uint64 в Base62 занимает не более 11 символов
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%62]
		n /= 62
	}
	return string(buf[i:])
}

// Decode — обратная операция к Encode: строка Base62 -> число.
// Символ вне алфавита или переполнение uint64 дают ErrInvalidEncoding.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidEncoding)
	}

	var value uint64
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(Alphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("%w: character %q at position %d", ErrInvalidEncoding, s[i], i)
		}
		if value > (math.MaxUint64-uint64(idx))/62 {
			return 0, fmt.Errorf("%w: value overflows uint64", ErrInvalidEncoding)
		}
		value = value*62 + uint64(idx)
	}
	return value, nil
}

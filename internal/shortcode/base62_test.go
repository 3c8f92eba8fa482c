package shortcode

import (
	"errors"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		input    uint64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{61, "Z"},
		{62, "10"},
		{125, "21"}, // 125 = 2*62 + 1
		{3843, "ZZ"},
		{3844, "100"},
	}

	for _, tt := range tests {
		result := Encode(tt.input)
		if result != tt.expected {
			t.Errorf("Encode(%d) = %s, want %s", tt.input, result, tt.expected)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
	}{
		{"0", 0},
		{"1", 1},
		{"Z", 61},
		{"10", 62},
		{"21", 125},
		{"100", 3844},
	}

	for _, tt := range tests {
		result, err := Decode(tt.input)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("Decode(%q) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func TestDecode_InvalidEncoding(t *testing.T) {
	for _, s := range []string{"", "a!b", "абв", "abc-", "a b"} {
		if _, err := Decode(s); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("Decode(%q): expected ErrInvalidEncoding, got %v", s, err)
		}
	}
}

func TestDecode_Overflow(t *testing.T) {
	// 12 символов Base62 всегда больше MaxUint64
	if _, err := Decode("ZZZZZZZZZZZZ"); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding on overflow, got %v", err)
	}

	// максимум uint64 декодируется без ошибки
	if _, err := Decode(Encode(^uint64(0))); err != nil {
		t.Fatalf("Decode(Encode(MaxUint64)) error: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for n := uint64(0); n < 100_000; n++ {
		code := Encode(n)
		back, err := Decode(code)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) error: %v", n, err)
		}
		if back != n {
			t.Fatalf("round trip failed: %d -> %s -> %d", n, code, back)
		}
	}
}

func TestEncode_AlphabetClosure(t *testing.T) {
	for n := uint64(0); n < 10_000; n++ {
		code := Encode(n)
		for i := 0; i < len(code); i++ {
			if strings.IndexByte(Alphabet, code[i]) < 0 {
				t.Fatalf("Encode(%d) = %s contains %q outside the alphabet", n, code, code[i])
			}
		}
	}
}

func TestEncode_MonotonicLength(t *testing.T) {
	prev := 0
	for _, n := range []uint64{0, 1, 61, 62, 3843, 3844, 238327, 238328, ^uint64(0)} {
		l := len(Encode(n))
		if l < prev {
			t.Fatalf("encoded length decreased at n=%d: %d < %d", n, l, prev)
		}
		prev = l
	}

	// длина растёт ровно на границах степеней 62
	if len(Encode(61)) != 1 || len(Encode(62)) != 2 {
		t.Fatal("expected length boundary at n=62")
	}
	if len(Encode(3843)) != 2 || len(Encode(3844)) != 3 {
		t.Fatal("expected length boundary at n=3844")
	}
}

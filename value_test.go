package fieldproj

import (
	"errors"
	"testing"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		buf  string
		want Value
		n    int
	}{
		{"string", `"hello",`, str("hello"), 7},
		{"empty string", `"",`, str(""), 2},
		{"string with escaped quote", `"a\"b"}`, str(`a\"b`), 6},
		{"string ending in paired backslashes", `"a\\"}`, str(`a\\`), 5},
		{"integer", `42,`, num(42), 2},
		{"negative", `-7}`, num(-7), 2},
		{"float", `4.5}`, num(4.5), 3},
		{"exponent", `1e3,`, num(1000), 3},
		{"number at end of buffer", `12`, num(12), 2},
		{"number with trailing space", `7 }`, num(7), 2},
		{"null", `null,`, Value{Kind: KindNull}, 4},
		{"true", `true}`, boolean(true), 4},
		{"false", `false}`, boolean(false), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := ParseValue([]byte(tc.buf))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("value = %v, want %v", got, tc.want)
			}
			if n != tc.n {
				t.Errorf("consumed = %d, want %d", n, tc.n)
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	for _, buf := range []string{``, `bogus`, `nul,`, `tru}`, `"unterminated`, `{`, `[1]`, `--1,`} {
		t.Run(buf, func(t *testing.T) {
			if _, _, err := ParseValue([]byte(buf)); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ParseValue(%q) err = %v, want ErrInvalidValue", buf, err)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Value{Kind: KindNull}, "null"},
		{boolean(true), "true"},
		{num(4.5), "4.5"},
		{str("a"), `"a"`},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.in); got != tc.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package fieldproj

import "testing"

func TestExtractKey(t *testing.T) {
	cases := []struct {
		name  string
		buf   string
		colon int
		want  string
		ok    bool
	}{
		{"simple", `{"key":1}`, 6, "key", true},
		{"whitespace before colon", `{"key"  :1}`, 8, "key", true},
		{"tab and newline", "{\"key\"\t\n:1}", 8, "key", true},
		{"empty key", `{"":1}`, 3, "", true},
		{"escaped quote inside key", `{"a\"b":1}`, 7, `a\"b`, true},
		{"double backslash ends key", `{"a\\":1}`, 6, `a\\`, true},
		{"no quote before colon", `{key:1}`, 4, "", false},
		{"colon at start", `:1`, 0, "", false},
		{"no opening quote", `x":1`, 2, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractKey([]byte(tc.buf), tc.colon)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ExtractKey(%q, %d) = (%q, %v), want (%q, %v)",
					tc.buf, tc.colon, got, ok, tc.want, tc.ok)
			}
		})
	}
}

// The backslash run before a candidate opening quote decides whether the
// quote is structural by parity, not by a single-character peek: in
// `"a\\\"b"` the inner quote is escaped (three backslashes), in `"a\\"`
// the closing quote is structural (two).
func TestExtractKeyBackslashParity(t *testing.T) {
	buf := []byte(`{"a\\\"b":1}`)
	got, ok := ExtractKey(buf, 9)
	if !ok || got != `a\\\"b` {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, `a\\\"b`)
	}
}

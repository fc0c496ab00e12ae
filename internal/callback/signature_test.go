package callback

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"testing"
)

func TestSign_KnownValue(t *testing.T) {
	values := url.Values{
		"success": {"true"},
		"fax":     {`{"id":1}`},
	}

	mac := hmac.New(sha1.New, []byte("token"))
	mac.Write([]byte(`https://example.com/cb` + `fax{"id":1}` + `successtrue`))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := Sign("token", "https://example.com/cb", values); got != want {
		t.Errorf("Sign() = %s, want %s", got, want)
	}
}

func TestVerify(t *testing.T) {
	values := url.Values{"is_test": {"false"}, "direction": {"sent"}}
	sig := Sign("token", "https://example.com/cb", values)

	tests := []struct {
		name      string
		token     string
		url       string
		values    url.Values
		signature string
		want      bool
	}{
		{"valid", "token", "https://example.com/cb", values, sig, true},
		{"valid with whitespace", "token", "https://example.com/cb", values, " " + sig + "\n", true},
		{"wrong token", "other", "https://example.com/cb", values, sig, false},
		{"wrong url", "token", "https://example.com/other", values, sig, false},
		{"tampered values", "token", "https://example.com/cb", url.Values{"is_test": {"true"}, "direction": {"sent"}}, sig, false},
		{"not hex", "token", "https://example.com/cb", values, "zz", false},
		{"empty", "token", "https://example.com/cb", values, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.token, tt.url, tt.values, tt.signature); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

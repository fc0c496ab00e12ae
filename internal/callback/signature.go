package callback

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Sign computes the signature Phaxio attaches to a callback: a hex HMAC-SHA1,
// keyed with the account's callback token, over the callback URL followed by
// every field name and value in name order.
func Sign(token, callbackURL string, values url.Values) string {
	var sb strings.Builder
	sb.WriteString(callbackURL)
	for _, name := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[name] {
			sb.WriteString(name)
			sb.WriteString(v)
		}
	}

	mac := hmac.New(sha1.New, []byte(token))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the expected signature.
func Verify(token, callbackURL string, values url.Values, signature string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(got) == 0 {
		return false
	}
	want, _ := hex.DecodeString(Sign(token, callbackURL, values))
	return hmac.Equal(got, want)
}

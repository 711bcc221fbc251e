// Package common holds small helpers shared by the client packages.
package common

// RequestIDHeaderName carries the per-request correlation id on outbound
// HTTP calls.
const RequestIDHeaderName = "X-Request-ID"

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// MaskToken shortens a credential for log output, keeping only the last
// four characters.
func MaskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return "****"
	}
	return "****" + token[len(token)-visible:]
}

package core

// SessionRecord holds the authentication artifacts persisted for one wallet
// address: the cookie map, the outbound header set, and the opaque user id
// recovered from the identity provider's ID token.
//
// A record is written only after the full login protocol completes; a record
// missing the uid, the user-agent, or the session cookie is treated as
// absent even if it exists in the store.
type SessionRecord struct {
	Cookies map[string]string `json:"cookies"`
	Headers map[string]string `json:"headers"`
	UID     string            `json:"uid"`
}

// Usable reports whether the record can short-circuit a login.
func (r *SessionRecord) Usable() bool {
	if r == nil || r.UID == "" {
		return false
	}
	return r.Headers["user-agent"] != "" && r.Headers["Cookie"] != ""
}

// CloneHeaders returns a copy of the header set, never nil.
func (r *SessionRecord) CloneHeaders() map[string]string {
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	return headers
}

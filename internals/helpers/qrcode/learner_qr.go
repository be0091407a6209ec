// file: internals/helpers/qrcode/learner_qr.go
package qrcode

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const Scheme = "swimclub"

var ErrUnrecognised = errors.New("unrecognised learner QR payload")

// LearnerID extracts the learner id from a scanned card. Accepted forms:
//
//	<uuid>
//	swimclub://learner/<uuid>
//	https://host/any/path?learner_id=<uuid>
//
// Scanners in keyboard-wedge mode sometimes emit full-width characters, so
// the payload is NFKC-normalised first.
func LearnerID(payload string) (uuid.UUID, error) {
	s := strings.TrimSpace(norm.NFKC.String(payload))
	s = strings.Trim(s, "\x00\r\n\t")
	if s == "" {
		return uuid.Nil, ErrUnrecognised
	}

	if id, err := uuid.Parse(s); err == nil && !strings.Contains(s, ":") {
		return id, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return uuid.Nil, ErrUnrecognised
	}
	switch strings.ToLower(u.Scheme) {
	case Scheme:
		// swimclub://learner/<id> puts "learner" in the host
		if !strings.EqualFold(u.Host, "learner") {
			return uuid.Nil, ErrUnrecognised
		}
		return parseID(strings.Trim(u.Path, "/"))
	case "http", "https":
		return parseID(u.Query().Get("learner_id"))
	}
	return uuid.Nil, ErrUnrecognised
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrUnrecognised
	}
	return id, nil
}

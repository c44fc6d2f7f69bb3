package monitor

import (
	"encoding/base64"
	"encoding/json"
	"time"

	perr "groundwatch/internal/platform/errors"
)

// pageCursor carries the full keyset position as one opaque token so
// clients never have to reassemble the (key, id) tuple themselves
type pageCursor struct {
	Key time.Time `json:"k"`
	ID  string    `json:"id"`
}

func encodeCursor(key time.Time, id string) string {
	if id == "" {
		return ""
	}
	b, _ := json.Marshal(pageCursor{Key: key, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeCursor(raw string) (pageCursor, error) {
	if raw == "" {
		return pageCursor{}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return pageCursor{}, perr.WithField(perr.InvalidArgf("cursor is not a valid page token"), "cursor")
	}
	var c pageCursor
	if err := json.Unmarshal(b, &c); err != nil || c.ID == "" {
		return pageCursor{}, perr.WithField(perr.InvalidArgf("cursor is not a valid page token"), "cursor")
	}
	return c, nil
}

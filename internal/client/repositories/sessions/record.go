package sessions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
)

// record is the row layout shared by both dialects. Times are unix seconds;
// a NULL expires_at means no client-side expiry.
type record struct {
	id        string
	token     string
	profile   []byte
	createdAt int64
	expiresAt sql.NullInt64
}

func toRecord(s *models.Session) (record, error) {
	profile, err := json.Marshal(s.Profile)
	if err != nil {
		return record{}, fmt.Errorf("encode profile: %w", err)
	}
	r := record{
		id:        s.ID,
		token:     s.Token,
		profile:   profile,
		createdAt: s.CreatedAt.Unix(),
	}
	if !s.ExpiresAt.IsZero() {
		r.expiresAt = sql.NullInt64{Int64: s.ExpiresAt.Unix(), Valid: true}
	}
	return r, nil
}

func (r record) toSession() (*models.Session, error) {
	var p models.Profile
	if err := json.Unmarshal(r.profile, &p); err != nil {
		return nil, fmt.Errorf("decode profile of session %s: %w", r.id, err)
	}
	s := &models.Session{
		ID:        r.id,
		Token:     r.token,
		Profile:   p,
		CreatedAt: time.Unix(r.createdAt, 0).UTC(),
	}
	if r.expiresAt.Valid {
		s.ExpiresAt = time.Unix(r.expiresAt.Int64, 0).UTC()
	}
	return s, nil
}

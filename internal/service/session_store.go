package service

import (
	"errors"
	"sync"
	"time"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/pkg/cache"
	"buzzwordz-backend/pkg/logger"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// SessionStore keeps live quiz sessions in memory and writes them through to
// the cache so a restarted node can pick up games that are still within TTL.
//
// The store owns the live session structs. Gin handles requests for the same
// session id concurrently, so every read goes through Get (which returns a
// detached snapshot) and every mutation goes through Update (which runs the
// caller's function under the store's lock).
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.QuizSession
	ttl      time.Duration
	cache    *cache.Cache
	now      func() time.Time
}

func NewSessionStore(cacheService *cache.Cache, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*models.QuizSession),
		ttl:      ttl,
		cache:    cacheService,
		now:      time.Now,
	}
}

func (st *SessionStore) TTL() time.Duration {
	return st.ttl
}

// Put inserts a session and returns a snapshot of what was stored. The
// caller's pointer becomes store-owned; keep working with the snapshot.
func (st *SessionStore) Put(session *models.QuizSession) *models.QuizSession {
	if session == nil {
		return nil
	}

	st.mu.Lock()
	now := st.now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(st.ttl)
	st.sessions[session.ID] = session
	snapshot := session.Clone()
	st.mu.Unlock()

	st.writeThrough(snapshot)
	return snapshot
}

// Get returns a snapshot of the session, falling back to the cache when this
// process has not seen the id before (e.g. after a restart). Expired
// sessions are treated as missing.
func (st *SessionStore) Get(id string) (*models.QuizSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// Update runs fn against the live session under the store's lock, so
// concurrent requests against the same id serialize instead of racing, then
// re-stamps the expiry and writes the result through to the cache. The
// returned snapshot reflects the session right after fn ran.
func (st *SessionStore) Update(id string, fn func(*models.QuizSession) error) (*models.QuizSession, error) {
	st.mu.Lock()

	session, err := st.lookup(id)
	if err != nil {
		st.mu.Unlock()
		return nil, err
	}
	if err := fn(session); err != nil {
		st.mu.Unlock()
		return nil, err
	}

	now := st.now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(st.ttl)
	snapshot := session.Clone()
	st.mu.Unlock()

	st.writeThrough(snapshot)
	return snapshot, nil
}

// lookup resolves the live session for id. The caller must hold st.mu.
func (st *SessionStore) lookup(id string) (*models.QuizSession, error) {
	if session, ok := st.sessions[id]; ok {
		if !session.Expired(st.now()) {
			return session, nil
		}
		delete(st.sessions, id)
		if st.cache != nil {
			st.cache.InvalidateQuizSession(id)
		}
		return nil, ErrSessionNotFound
	}

	if st.cache == nil {
		return nil, ErrSessionNotFound
	}

	var recovered models.QuizSession
	if err := st.cache.GetCachedQuizSession(id, &recovered); err != nil {
		return nil, ErrSessionNotFound
	}
	if recovered.Expired(st.now()) {
		return nil, ErrSessionNotFound
	}

	st.sessions[recovered.ID] = &recovered
	return &recovered, nil
}

func (st *SessionStore) writeThrough(session *models.QuizSession) {
	if st.cache == nil || session == nil {
		return
	}
	if err := st.cache.CacheQuizSession(session.ID, session, st.ttl); err != nil {
		logger.Warn("Failed to write quiz session to cache", map[string]interface{}{
			"session": session.ID,
		})
	}
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()

	if st.cache != nil {
		st.cache.InvalidateQuizSession(id)
	}
}

// Sweep drops expired sessions and reports how many were removed. The cache
// copies expire on their own TTL.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, session := range st.sessions {
		if session.Expired(now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

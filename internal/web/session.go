package web

import (
	"encoding/gob"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/mgnrega-tools/entrydesk/internal/config"
	"github.com/mgnrega-tools/entrydesk/internal/logging"
)

// flashMessage is a transient banner shown on the next rendered page.
// Level is "success" or "danger" and maps to the banner style.
type flashMessage struct {
	Level   string
	Message string
}

// lastLocation is the block/panchayat/village the operator last submitted,
// used to pre-fill the next form in the same browser session.
type lastLocation struct {
	BlockName string
	Panchayat string
	Village   string
}

func init() {
	// gorilla/sessions serializes values with encoding/gob.
	gob.Register(flashMessage{})
	gob.Register(lastLocation{})
}

// sessionManager wraps the cookie-backed browser session used for flash
// messages and the remembered location.
type sessionManager struct {
	store *sessions.CookieStore
	name  string
}

func newSessionManager(cfg config.SessionConfig) *sessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionManager{store: store, name: cfg.CookieName}
}

// get returns the request's session, assigning a session id on first use.
// The id only identifies the session in logs; it carries no authentication.
func (m *sessionManager) get(r *http.Request) *sessions.Session {
	sess, _ := m.store.Get(r, m.name)
	if _, ok := sess.Values["sid"]; !ok {
		sess.Values["sid"] = uuid.NewString()
	}
	return sess
}

// sessionID returns the log-correlation id for the request's session.
func (m *sessionManager) sessionID(r *http.Request) string {
	sid, _ := m.get(r).Values["sid"].(string)
	return sid
}

// addFlash queues a banner for the next rendered page.
func (m *sessionManager) addFlash(w http.ResponseWriter, r *http.Request, level, message string) {
	sess := m.get(r)
	sess.AddFlash(flashMessage{Level: level, Message: message})
	if err := sess.Save(r, w); err != nil {
		logging.FromContext(r.Context()).Warn("session save failed", "error", err)
	}
}

// popFlashes returns and clears any queued banners.
func (m *sessionManager) popFlashes(w http.ResponseWriter, r *http.Request) []flashMessage {
	sess := m.get(r)
	raw := sess.Flashes()
	if len(raw) > 0 {
		if err := sess.Save(r, w); err != nil {
			logging.FromContext(r.Context()).Warn("session save failed", "error", err)
		}
	}

	flashes := make([]flashMessage, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(flashMessage); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// rememberLocation stores the submitted location for form pre-fill.
// Village is only tracked by the voucher form; pass "" to keep the previous
// value.
func (m *sessionManager) rememberLocation(w http.ResponseWriter, r *http.Request, block, panchayat, village string) {
	sess := m.get(r)

	loc, _ := sess.Values["last_location"].(lastLocation)
	loc.BlockName = block
	loc.Panchayat = panchayat
	if village != "" {
		loc.Village = village
	}

	sess.Values["last_location"] = loc
	if err := sess.Save(r, w); err != nil {
		logging.FromContext(r.Context()).Warn("session save failed", "error", err)
	}
}

// location returns the remembered location, zero-valued for new sessions.
func (m *sessionManager) location(r *http.Request) lastLocation {
	loc, _ := m.get(r).Values["last_location"].(lastLocation)
	return loc
}

package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/session"
	"github.com/iliyamo/table-reservation-web/internal/utils"
)

// CookieName is the session cookie.
const CookieName = "rsv_session"

const ctxSessionKey = "session"

type sessionState struct {
	sid  string
	data *session.Data
}

// Sessions loads the visitor's session once per request and writes it back
// when a handler asks to.  The cookie only carries a signed session id.
type Sessions struct {
	Store  session.Store
	Key    []byte
	TTL    time.Duration
	Secure bool
}

// Middleware attaches the session to the echo context.  An absent, forged
// or expired cookie yields a fresh empty session that is only persisted on
// the first Save.
func (m *Sessions) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := &sessionState{data: &session.Data{}}
			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				if sid, err := utils.ParseSessionToken(m.Key, ck.Value); err == nil {
					d, err := m.Store.Load(c.Request().Context(), sid)
					switch {
					case err == nil:
						st.sid, st.data = sid, d
					case errors.Is(err, session.ErrNotFound):
					default:
						c.Logger().Warnf("session: load failed: %v", err)
					}
				}
			}
			c.Set(ctxSessionKey, st)
			if st.data.User != nil {
				c.Set("user_id", strconv.FormatUint(st.data.User.ID, 10))
			}
			return next(c)
		}
	}
}

// Session returns the request's session data.  Handlers mutate it in place
// and call Save to persist.  Outside the middleware it returns an empty,
// detached session.
func Session(c echo.Context) *session.Data {
	if st, ok := c.Get(ctxSessionKey).(*sessionState); ok {
		return st.data
	}
	return &session.Data{}
}

// Save persists the current session and refreshes the cookie.  A session
// id is issued on first save.
func (m *Sessions) Save(c echo.Context) error {
	st, ok := c.Get(ctxSessionKey).(*sessionState)
	if !ok {
		return errors.New("session middleware not installed")
	}
	if st.sid == "" {
		st.sid = utils.NewSessionID()
	}
	return m.persist(c, st)
}

// Renew moves the session to a new id, dropping the old one.  Called when
// the visitor's identity changes (login).
func (m *Sessions) Renew(c echo.Context) error {
	st, ok := c.Get(ctxSessionKey).(*sessionState)
	if !ok {
		return errors.New("session middleware not installed")
	}
	if st.sid != "" {
		if err := m.Store.Delete(c.Request().Context(), st.sid); err != nil {
			c.Logger().Warnf("session: delete old session failed: %v", err)
		}
	}
	st.sid = utils.NewSessionID()
	if st.data.User != nil {
		c.Set("user_id", strconv.FormatUint(st.data.User.ID, 10))
	}
	return m.persist(c, st)
}

func (m *Sessions) persist(c echo.Context, st *sessionState) error {
	if err := m.Store.Save(c.Request().Context(), st.sid, st.data, m.TTL); err != nil {
		return err
	}
	tok, err := utils.NewSessionToken(m.Key, st.sid, m.TTL)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

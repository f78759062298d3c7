package http

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	converter "go-currency-converter"
	"go-currency-converter/calc"
	"go-currency-converter/exchange"
)

var ErrSessionNotFound = errors.New("session not found")

// session a manual entry pad held on behalf of one client
type session struct {
	ID     string
	Keypad calc.Keypad

	// Base the currency being typed in
	Base converter.Currency
}

// sessionStore in-memory sessions, safe for concurrent use
type sessionStore struct {
	lock     sync.RWMutex
	sessions map[string]session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: map[string]session{},
	}
}

func (st *sessionStore) create() session {
	s := session{
		ID:   uuid.NewString(),
		Base: converter.IDR,
	}
	st.lock.Lock()
	defer st.lock.Unlock()
	st.sessions[s.ID] = s
	return s
}

func (st *sessionStore) get(id string) (session, error) {
	st.lock.RLock()
	defer st.lock.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return session{}, ErrSessionNotFound
	}
	return s, nil
}

// update replaces a session with the result of fn. Nothing is stored if fn fails.
func (st *sessionStore) update(id string, fn func(session) (session, error)) (session, error) {
	st.lock.Lock()
	defer st.lock.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return session{}, ErrSessionNotFound
	}
	s, err := fn(s)
	if err != nil {
		return session{}, err
	}
	st.sessions[id] = s
	return s, nil
}

func (st *sessionStore) delete(id string) error {
	st.lock.Lock()
	defer st.lock.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

type sessionResponse struct {
	ID         string             `json:"id"`
	Expression string             `json:"expression"`
	Display    string             `json:"display"`
	Mode       string             `json:"mode"`
	Calculator bool               `json:"calculator"`
	Base       converter.Currency `json:"base"`
	Target     converter.Currency `json:"target"`
	Amount     string             `json:"amount"`
	Converted  string             `json:"converted"`
}

func (s *Server) sessionResponse(c echo.Context, sess session) (sessionResponse, error) {
	target := sess.Base.Other()

	converted := "0"
	if sess.Keypad.Display != "" {
		ex, err := s.Service.Convert(c.Request().Context(), exchange.ParseAmount(sess.Keypad.Display), sess.Base, target)
		if err != nil {
			return sessionResponse{}, err
		}
		converted = exchange.Format(ex.Amount, target)
	}

	return sessionResponse{
		ID:         sess.ID,
		Expression: sess.Keypad.Expression,
		Display:    sess.Keypad.Display,
		Mode:       sess.Keypad.Mode.String(),
		Calculator: sess.Keypad.Calculator,
		Base:       sess.Base,
		Target:     target,
		Amount:     exchange.FormatEntry(sess.Keypad.Display, sess.Base),
		Converted:  converted,
	}, nil
}

func (s *Server) respondSession(c echo.Context, status int, sess session, err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fail(c, http.StatusNotFound, "session not found")
	case errors.Is(err, calc.ErrUnknownKey):
		return fail(c, http.StatusBadRequest, "unknown key")
	case err != nil:
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	res, err := s.sessionResponse(c, sess)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed conversion")
	}
	return c.JSON(status, res)
}

func (s *Server) createSession() echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.respondSession(c, http.StatusCreated, s.sessions.create(), nil)
	}
}

func (s *Server) getSession() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := s.sessions.get(c.Param("id"))
		return s.respondSession(c, http.StatusOK, sess, err)
	}
}

func (s *Server) deleteSession() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.sessions.delete(c.Param("id")); err != nil {
			return fail(c, http.StatusNotFound, "session not found")
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// pressKey produces a handler applying one keypad key to a session
func (s *Server) pressKey() echo.HandlerFunc {
	type request struct {
		Key string `json:"key"`
	}

	return func(c echo.Context) error {
		var req request
		if err := decode(c, &req); err != nil {
			return fail(c, http.StatusBadRequest, "invalid json")
		}

		sess, err := s.sessions.update(c.Param("id"), func(sess session) (session, error) {
			k, err := sess.Keypad.Press(req.Key)
			if err != nil {
				return session{}, err
			}
			sess.Keypad = k
			return sess, nil
		})
		return s.respondSession(c, http.StatusOK, sess, err)
	}
}

// swapBase produces a handler switching the currency being typed in
func (s *Server) swapBase() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := s.sessions.update(c.Param("id"), func(sess session) (session, error) {
			sess.Base = sess.Base.Other()
			return sess, nil
		})
		return s.respondSession(c, http.StatusOK, sess, err)
	}
}

// toggleCalculator produces a handler switching a session's calculator on or off
func (s *Server) toggleCalculator() echo.HandlerFunc {
	type request struct {
		Enabled bool `json:"enabled"`
	}

	return func(c echo.Context) error {
		var req request
		if err := decode(c, &req); err != nil {
			return fail(c, http.StatusBadRequest, "invalid json")
		}

		sess, err := s.sessions.update(c.Param("id"), func(sess session) (session, error) {
			sess.Keypad = sess.Keypad.WithCalculator(req.Enabled)
			return sess, nil
		})
		return s.respondSession(c, http.StatusOK, sess, err)
	}
}

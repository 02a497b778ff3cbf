package api

import (
	"log/slog"
	"net/http"

	domainerrors "markeep/internal/errors"
	"markeep/internal/websocket"
)

// ServeWsHandler upgrades an authenticated request to a websocket. Browsers
// cannot set headers on the handshake, so the access token comes in the query.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		s.writeError(w, r, domainerrors.Unauthorized("token query parameter required"))
		return
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		s.logger.Warn("websocket connection with invalid token", slog.Any("error", err))
		s.writeError(w, r, domainerrors.Unauthorized("invalid or expired token"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an error response.
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	websocket.NewClient(s.wsHub, conn, claims.UserID).Serve()
}

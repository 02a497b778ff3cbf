package api

import (
	"net/http"
	"strconv"

	_ "markeep/internal/database" // database.Event in swag annotations
	domainerrors "markeep/internal/errors"
)

// @Summary      Get new events
// @Description  Returns the current user's events after a given event ID, such as their folders being pinned. Clients use it to catch up after a websocket reconnect.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     int  false  "The ID of the last event received. Omit or use 0 to get all events."
// @Success      200    {array}   database.Event
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /user/events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}

	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil || sinceID < 0 {
		s.writeError(w, r, domainerrors.InvalidArgument("'since' must be a non-negative number"))
		return
	}

	events, err := s.store.GetEventsSince(r.Context(), claims.UserID, sinceID)
	if err != nil {
		s.writeError(w, r, domainerrors.Internal(err))
		return
	}

	s.writeJSON(w, http.StatusOK, events)
}

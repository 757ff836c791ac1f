package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/http/response"
	"github.com/daylogapp/daylog-server/internal/service"
	"github.com/daylogapp/daylog-server/internal/store"
)

// openLogRequest is the open ingestion payload. Date accepts a string
// (RFC 3339 or YYYY-MM-DD) or a unix timestamp number.
type openLogRequest struct {
	Content string `json:"content"`
	Tags    string `json:"tags"`
	Date    any    `json:"date"`
	IsTodo  bool   `json:"isTodo"`
}

// handleOpenCreateLog appends an entry on behalf of an external client
// authenticated by API token. Unknown tokens and tokens of deactivated
// accounts are rejected identically so account state never leaks.
func (s *Server) handleOpenCreateLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := auth.APITokenFromRequest(r)
	if token == "" {
		response.Unauthorized(w, "Missing API token.", s.logger)
		return
	}

	user, err := s.store.GetUserBySecretKey(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Unauthorized(w, "Invalid API token.", s.logger)
			return
		}
		s.logger.Error("Open endpoint token lookup failed", "error", err)
		response.InternalError(w, "internal server error", s.logger)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid JSON body.", s.logger)
		return
	}

	// Well-formedness and shape are separate failures: a client sending
	// broken JSON gets a different message than one sending wrong types.
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		response.BadRequest(w, "Invalid JSON body.", s.logger)
		return
	}

	var req openLogRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(w, "Invalid request body.", s.logger)
		return
	}

	content := strings.TrimSpace(req.Content)
	tags := strings.TrimSpace(req.Tags)
	if content == "" && tags == "" {
		response.BadRequest(w, "content or tags required.", s.logger)
		return
	}

	date, ok := parseOpenDate(req.Date)
	if !ok {
		response.BadRequest(w, "Invalid date.", s.logger)
		return
	}

	log, err := s.services.Log.Add(ctx, user.ID, service.AddLogRequest{
		Content: content,
		Tags:    tags,
		Date:    date,
		IsTodo:  req.IsTodo,
	})
	if err != nil {
		s.logger.Error("Open endpoint create failed", "error", err, "user_id", user.ID)
		response.InternalError(w, "internal server error", s.logger)
		return
	}

	response.Created(w, map[string]string{"id": log.ID}, s.logger)
}

// parseOpenDate interprets the open endpoint's date field. Omitted dates mean
// now. Numbers are unix seconds, or milliseconds when too large to be a
// plausible seconds value.
func parseOpenDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Now(), true
	case string:
		if v == "" {
			return time.Now(), true
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
			return t, true
		}
		return time.Time{}, false
	case float64:
		const millisThreshold = 1e12
		if v >= millisThreshold {
			return time.UnixMilli(int64(v)), true
		}
		return time.Unix(int64(v), 0), true
	default:
		return time.Time{}, false
	}
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/daylogapp/daylog-server/internal/domain"
	"github.com/daylogapp/daylog-server/internal/service"
	"github.com/daylogapp/daylog-server/internal/store"
)

func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLogs",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs",
		Summary:     "List logs",
		Description: "Returns every entry of the caller, oldest first",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLogs)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLogsByDate",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/by-date",
		Summary:     "Get logs by date",
		Description: "Returns the top-level entries of one calendar day with their replies",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLogsByDate)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportLogs",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/export",
		Summary:     "Export logs",
		Description: "Returns every entry of the caller in the import file format",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleExportLogs)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLogReplies",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/{id}/replies",
		Summary:     "Get replies",
		Description: "Returns the replies of one entry, oldest first",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLogReplies)

	huma.Register(s.api, huma.Operation{
		OperationID: "addLog",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs",
		Summary:     "Add log",
		Description: "Creates a new entry; content and tags may not both be blank",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleTodo",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs/{id}/toggle-todo",
		Summary:     "Toggle todo",
		Description: "Flips the done state of a todo entry",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateLog",
		Method:      http.MethodPatch,
		Path:        "/api/v1/logs/{id}",
		Summary:     "Update log",
		Description: "Rewrites the content and/or tags of an entry",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteLog",
		Method:      http.MethodDelete,
		Path:        "/api/v1/logs/{id}",
		Summary:     "Delete log",
		Description: "Deletes an entry together with its replies",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "importLogs",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs/import",
		Summary:     "Import logs",
		Description: "Bulk-inserts entries from an export file",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleImportLogs)

	huma.Register(s.api, huma.Operation{
		OperationID: "forwardLog",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs/{id}/forward",
		Summary:     "Forward log to Memos",
		Description: "Sends one entry to the caller's Memos instance",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleForwardLog)
}

// === DTOs ===

// LogResponse contains entry data in API responses.
type LogResponse struct {
	ID         string    `json:"id" doc:"Entry ID"`
	Content    string    `json:"content" doc:"Entry text"`
	Date       time.Time `json:"date" doc:"Day the entry belongs to"`
	Tags       string    `json:"tags" doc:"Serialized tag groups"`
	IsTodo     bool      `json:"isTodo" doc:"Whether the entry is a todo"`
	IsTodoDone bool      `json:"isTodoDone" doc:"Whether the todo is done"`
	ParentID   string    `json:"parentId,omitempty" doc:"Parent entry ID for replies"`
	CreatedAt  time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updatedAt" doc:"Last update time"`
}

// logResponse converts a domain log to its API shape.
func logResponse(l *domain.Log) LogResponse {
	return LogResponse{
		ID:         l.ID,
		Content:    l.Content,
		Date:       l.Date,
		Tags:       l.Tags,
		IsTodo:     l.IsTodo,
		IsTodoDone: l.IsTodoDone,
		ParentID:   l.ParentID,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// logResponses converts a slice of domain logs.
func logResponses(logs []*domain.Log) []LogResponse {
	resp := make([]LogResponse, len(logs))
	for i, l := range logs {
		resp[i] = logResponse(l)
	}
	return resp
}

// ListLogsInput contains parameters for listing all entries.
type ListLogsInput struct {
	Authorization string `header:"Authorization"`
}

// ListLogsResponse contains a flat list of entries.
type ListLogsResponse struct {
	Logs []LogResponse `json:"logs" doc:"Entries, oldest first"`
}

// ListLogsOutput wraps the list logs response for Huma.
type ListLogsOutput struct {
	Body ListLogsResponse
}

// GetLogsByDateInput contains parameters for the day view.
type GetLogsByDateInput struct {
	Authorization string `header:"Authorization"`
	Date          string `query:"date" format:"date" doc:"Day to fetch, YYYY-MM-DD"`
}

// LogWithRepliesResponse is a top-level entry with its thread.
type LogWithRepliesResponse struct {
	LogResponse
	Replies []LogResponse `json:"replies" doc:"Replies, oldest first"`
}

// LogsByDateResponse contains one day of entries.
type LogsByDateResponse struct {
	Logs []LogWithRepliesResponse `json:"logs" doc:"Top-level entries with replies, oldest first"`
}

// LogsByDateOutput wraps the day view response for Huma.
type LogsByDateOutput struct {
	Body LogsByDateResponse
}

// GetLogRepliesInput contains parameters for fetching a thread.
type GetLogRepliesInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Entry ID"`
}

// LogRepliesResponse contains the replies of one entry.
type LogRepliesResponse struct {
	Replies []LogResponse `json:"replies" doc:"Replies, oldest first"`
}

// LogRepliesOutput wraps the replies response for Huma.
type LogRepliesOutput struct {
	Body LogRepliesResponse
}

// AddLogRequest is the request body for creating an entry.
type AddLogRequest struct {
	Content  string    `json:"content,omitempty" doc:"Entry text"`
	Date     time.Time `json:"date" doc:"Day the entry belongs to"`
	Tags     string    `json:"tags,omitempty" doc:"Serialized tag groups"`
	IsTodo   bool      `json:"isTodo,omitempty" doc:"Whether the entry is a todo"`
	ParentID string    `json:"parentId,omitempty" doc:"Parent entry ID to reply to"`
}

// AddLogInput wraps the add log request for Huma.
type AddLogInput struct {
	Authorization string `header:"Authorization"`
	Body          AddLogRequest
}

// LogOutput wraps a single entry response for Huma.
type LogOutput struct {
	Body LogResponse
}

// ToggleTodoInput contains parameters for toggling a todo.
type ToggleTodoInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Entry ID"`
}

// UpdateLogRequest is the request body for updating an entry. Omitted fields
// keep their previous values; empty strings are explicit values.
type UpdateLogRequest struct {
	Content *string `json:"content,omitempty" doc:"New entry text"`
	Tags    *string `json:"tags,omitempty" doc:"New serialized tag groups"`
}

// UpdateLogInput wraps the update log request for Huma.
type UpdateLogInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Entry ID"`
	Body          UpdateLogRequest
}

// DeleteLogInput contains parameters for deleting an entry.
type DeleteLogInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Entry ID"`
}

// DeleteLogResponse confirms a deletion.
type DeleteLogResponse struct {
	ID string `json:"id" doc:"Deleted entry ID"`
}

// DeleteLogOutput wraps the delete response for Huma.
type DeleteLogOutput struct {
	Body DeleteLogResponse
}

// ImportLogItem is one entry of an import payload.
type ImportLogItem struct {
	Content string    `json:"content" doc:"Entry text"`
	Date    time.Time `json:"date" doc:"Day the entry belongs to"`
	Tags    string    `json:"tags,omitempty" doc:"Serialized tag groups"`
	IsTodo  bool      `json:"isTodo,omitempty" doc:"Whether the entry is a todo"`
}

// ImportLogsRequest is the request body for a bulk import.
type ImportLogsRequest struct {
	Items []ImportLogItem `json:"items" doc:"Entries to insert"`
}

// ImportLogsInput wraps the import request for Huma.
type ImportLogsInput struct {
	Authorization string `header:"Authorization"`
	Body          ImportLogsRequest
}

// ImportLogsResponse reports how many entries were inserted.
type ImportLogsResponse struct {
	Count int `json:"count" doc:"Number of inserted entries"`
}

// ImportLogsOutput wraps the import response for Huma.
type ImportLogsOutput struct {
	Body ImportLogsResponse
}

// ExportLogsInput contains parameters for exporting.
type ExportLogsInput struct {
	Authorization string `header:"Authorization"`
}

// ExportLogsOutput wraps the export response for Huma. The body is the bare
// array so the file can be re-imported as-is.
type ExportLogsOutput struct {
	Body []service.ExportEntry
}

// ForwardLogInput contains parameters for forwarding an entry to Memos.
type ForwardLogInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Entry ID"`
}

// ForwardLogResponse reports the forwarding outcome.
type ForwardLogResponse struct {
	OK      bool   `json:"ok" doc:"Whether the memo was saved"`
	Message string `json:"message" doc:"Human-readable outcome"`
}

// ForwardLogOutput wraps the forward response for Huma.
type ForwardLogOutput struct {
	Body ForwardLogResponse
}

// === Handlers ===

func (s *Server) handleListLogs(ctx context.Context, input *ListLogsInput) (*ListLogsOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	logs, err := s.services.Log.GetAll(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &ListLogsOutput{Body: ListLogsResponse{Logs: logResponses(logs)}}, nil
}

func (s *Server) handleGetLogsByDate(ctx context.Context, input *GetLogsByDateInput) (*LogsByDateOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		return nil, huma.Error400BadRequest("date must be formatted as YYYY-MM-DD")
	}

	logs, err := s.services.Log.GetByDate(ctx, claims.UserID, date)
	if err != nil {
		return nil, err
	}

	resp := make([]LogWithRepliesResponse, len(logs))
	for i, l := range logs {
		resp[i] = logWithRepliesResponse(l)
	}

	return &LogsByDateOutput{Body: LogsByDateResponse{Logs: resp}}, nil
}

// logWithRepliesResponse converts a threaded entry to its API shape.
func logWithRepliesResponse(l *store.LogWithReplies) LogWithRepliesResponse {
	return LogWithRepliesResponse{
		LogResponse: logResponse(l.Log),
		Replies:     logResponses(l.Replies),
	}
}

func (s *Server) handleGetLogReplies(ctx context.Context, input *GetLogRepliesInput) (*LogRepliesOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	replies, err := s.services.Log.GetReplies(ctx, claims.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	return &LogRepliesOutput{Body: LogRepliesResponse{Replies: logResponses(replies)}}, nil
}

func (s *Server) handleAddLog(ctx context.Context, input *AddLogInput) (*LogOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	log, err := s.services.Log.Add(ctx, claims.UserID, service.AddLogRequest{
		Content:  input.Body.Content,
		Date:     input.Body.Date,
		Tags:     input.Body.Tags,
		IsTodo:   input.Body.IsTodo,
		ParentID: input.Body.ParentID,
	})
	if err != nil {
		return nil, err
	}

	return &LogOutput{Body: logResponse(log)}, nil
}

func (s *Server) handleToggleTodo(ctx context.Context, input *ToggleTodoInput) (*LogOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	log, err := s.services.Log.ToggleTodo(ctx, claims.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	return &LogOutput{Body: logResponse(log)}, nil
}

func (s *Server) handleUpdateLog(ctx context.Context, input *UpdateLogInput) (*LogOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	log, err := s.services.Log.Update(ctx, claims.UserID, input.ID, service.UpdateLogRequest{
		Content: input.Body.Content,
		Tags:    input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &LogOutput{Body: logResponse(log)}, nil
}

func (s *Server) handleDeleteLog(ctx context.Context, input *DeleteLogInput) (*DeleteLogOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Log.Delete(ctx, claims.UserID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteLogOutput{Body: DeleteLogResponse{ID: input.ID}}, nil
}

func (s *Server) handleImportLogs(ctx context.Context, input *ImportLogsInput) (*ImportLogsOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	items := make([]service.ImportItem, len(input.Body.Items))
	for i, item := range input.Body.Items {
		items[i] = service.ImportItem{
			Content: item.Content,
			Date:    item.Date,
			Tags:    item.Tags,
			IsTodo:  item.IsTodo,
		}
	}

	count, err := s.services.Log.Import(ctx, claims.UserID, items)
	if err != nil {
		return nil, err
	}

	return &ImportLogsOutput{Body: ImportLogsResponse{Count: count}}, nil
}

func (s *Server) handleExportLogs(ctx context.Context, input *ExportLogsInput) (*ExportLogsOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	entries, err := s.services.Log.Export(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &ExportLogsOutput{Body: entries}, nil
}

func (s *Server) handleForwardLog(ctx context.Context, input *ForwardLogInput) (*ForwardLogOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Log.Forward(ctx, claims.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ForwardLogOutput{Body: ForwardLogResponse{OK: result.OK, Message: result.Message}}, nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/malik80-glitch/accsolver/internal/models"
	"github.com/malik80-glitch/accsolver/internal/session"
	"github.com/malik80-glitch/accsolver/internal/storage"
)

type memorySnapshots struct {
	data map[string][]byte
}

func (m *memorySnapshots) Save(_ context.Context, name string, data []byte) error {
	m.data[name] = data
	return nil
}

func (m *memorySnapshots) Load(_ context.Context, name string) ([]byte, error) {
	if data, ok := m.data[name]; ok {
		return data, nil
	}
	return nil, storage.ErrNoSnapshot
}

func (m *memorySnapshots) Clear(_ context.Context, name string) error {
	delete(m.data, name)
	return nil
}

type fakeChat struct {
	store *session.Store
	reply string
}

func (f *fakeChat) Send(_ context.Context, text string, att *models.Attachment) models.Message {
	f.store.Append(models.Message{Role: models.RoleUser, Text: text, Attachment: att})
	return f.store.Append(models.Message{Role: models.RoleModel, Text: f.reply})
}

func newTestRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := session.NewStore(&memorySnapshots{data: make(map[string][]byte)}, time.Minute)
	router := gin.New()
	NewHandler(&fakeChat{store: store, reply: "model reply"}, store).RegisterRoutes(router)
	return router, store
}

func doJSONRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendMessage(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/api/conversation/msg", map[string]any{
		"content": "what is FIFO",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var reply models.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Role != models.RoleModel || reply.Text != "model reply" {
		t.Fatalf("unexpected reply: %#v", reply)
	}
	if len(store.Messages()) != 2 {
		t.Fatalf("expected 2 messages in session")
	}
}

func TestSendMessageValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSONRequest(t, router, http.MethodPost, "/api/conversation/msg", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty body should be rejected, status = %d", rec.Code)
	}
}

func TestSendMessageRejectsWhileBusy(t *testing.T) {
	router, store := newTestRouter(t)
	store.Append(models.Message{Role: models.RoleUser, Text: "pending"})

	rec := doJSONRequest(t, router, http.MethodPost, "/api/conversation/msg", map[string]any{
		"content": "second question",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("busy session should reject sends, status = %d", rec.Code)
	}
}

func TestListMessagesWithSearch(t *testing.T) {
	router, store := newTestRouter(t)
	store.Append(models.Message{Role: models.RoleUser, Text: "Depreciation question"})
	store.Append(models.Message{Role: models.RoleModel, Text: "straight line method"})

	rec := doJSONRequest(t, router, http.MethodGet, "/api/conversation/messages?search=depreciation", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Messages) != 1 || body.Messages[0].Text != "Depreciation question" {
		t.Fatalf("search results wrong: %#v", body.Messages)
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/api/conversation/messages", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Messages) != 2 {
		t.Fatalf("unfiltered listing should return everything: %#v", body.Messages)
	}
}

func TestResetConversation(t *testing.T) {
	router, store := newTestRouter(t)
	store.Append(models.Message{Role: models.RoleUser, Text: "hello"})

	rec := doJSONRequest(t, router, http.MethodPost, "/api/conversation/reset", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.Messages()) != 0 {
		t.Fatalf("reset did not clear messages")
	}
}

func TestSetTopicAndStatus(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/api/conversation/topic", map[string]string{
		"topic": "Inventory valuation",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if store.ActiveTopic() != "Inventory valuation" {
		t.Fatalf("topic not applied")
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/api/conversation/status", nil)
	var status struct {
		IsBusy       bool   `json:"is_busy"`
		IsSaving     bool   `json:"is_saving"`
		ActiveTopic  string `json:"active_topic"`
		MessageCount int    `json:"message_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.ActiveTopic != "Inventory valuation" || status.IsBusy || status.MessageCount != 0 {
		t.Fatalf("unexpected status: %#v", status)
	}
}

func TestToggleIntentEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/api/draft/intent", map[string]string{
		"draft":  "pie chart of expenses",
		"intent": "generate_image",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Draft string `json:"draft"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Draft != "Generate Image: pie chart of expenses" {
		t.Fatalf("toggled draft = %q", body.Draft)
	}

	rec = doJSONRequest(t, router, http.MethodPost, "/api/draft/intent", map[string]string{
		"draft":  body.Draft,
		"intent": "generate_image",
	})
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Draft != "pie chart of expenses" {
		t.Fatalf("second toggle should round-trip, got %q", body.Draft)
	}

	rec = doJSONRequest(t, router, http.MethodPost, "/api/draft/intent", map[string]string{
		"draft":  "anything",
		"intent": "summon_image",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown intent should 400, got %d", rec.Code)
	}
}

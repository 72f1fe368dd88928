package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/realtydesk/transaction-manager-backend/internal/api/handlers"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
	"github.com/realtydesk/transaction-manager-backend/internal/testutil"
)

func TestCreateAgentHandler(t *testing.T) {
	t.Run("creates an agent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAgentHandler(testutil.NewTestAgentService(t, db))

		body := testutil.JSONBody(t, map[string]string{
			"name":     "Ada Vernon",
			"email":    "ada@example.com",
			"password": "hunter2",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/agents", body)
		w := httptest.NewRecorder()

		handler.CreateAgent(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var agent model.Agent
		if err := json.NewDecoder(w.Body).Decode(&agent); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if agent.Name != "Ada Vernon" {
			t.Errorf("Name = %q, want Ada Vernon", agent.Name)
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAgentHandler(testutil.NewTestAgentService(t, db))

		body := testutil.JSONBody(t, map[string]string{
			"name":  "Ada Vernon",
			"email": "not-an-email",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/agents", body)
		w := httptest.NewRecorder()

		handler.CreateAgent(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 409 for a duplicate email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAgentHandler(testutil.NewTestAgentService(t, db))

		testutil.NewAgent().WithEmail("taken@example.com").Build(t, db)

		body := testutil.JSONBody(t, map[string]string{
			"name":  "Someone Else",
			"email": "taken@example.com",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/agents", body)
		w := httptest.NewRecorder()

		handler.CreateAgent(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
	})
}

func TestGetAgentHandler(t *testing.T) {
	t.Run("returns the agent without the password hash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAgentHandler(testutil.NewTestAgentService(t, db))

		agent := testutil.NewAgent().WithPassword("hunter2").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/agents/"+agent.ID,
			map[string]string{"uuid": agent.ID},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetAgent(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var payload map[string]any
		if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if payload["id"] != agent.ID {
			t.Errorf("id = %v, want %s", payload["id"], agent.ID)
		}
		for key := range payload {
			if key == "passwordHash" || key == "password_hash" {
				t.Errorf("Password hash leaked in response under key %q", key)
			}
		}
	})

	t.Run("returns 404 for an unknown agent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAgentHandler(testutil.NewTestAgentService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/agents/"+id,
			map[string]string{"uuid": id},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetAgent(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestDeleteAgentHandler(t *testing.T) {
	t.Run("deactivates and returns 204", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewAgentHandler(testutil.NewTestAgentService(t, db))

		agent := testutil.NewAgent().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/agents/"+agent.ID,
			map[string]string{"uuid": agent.ID},
			nil,
		)
		w := httptest.NewRecorder()

		handler.DeleteAgent(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "agent", 1)
	})
}

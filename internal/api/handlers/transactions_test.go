package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/realtydesk/transaction-manager-backend/internal/api/handlers"
	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
	"github.com/realtydesk/transaction-manager-backend/internal/testutil"
)

func TestCreateTransactionHandler(t *testing.T) {
	t.Run("creates a transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)

		body := testutil.JSONBody(t, map[string]any{
			"propertyAddress": "42 Harbour View",
			"contractPrice":   "500000",
			"totalServiceFee": "20000",
			"listingAgentId":  listing.ID,
			"sellingAgentId":  selling.ID,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var created model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if created.Status != lifecycle.StageAgreement {
			t.Errorf("Status = %s, want agreement", created.Status)
		}
	})

	t.Run("rejects an invalid payload", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		body := testutil.JSONBody(t, map[string]any{
			"propertyAddress": "",
			"contractPrice":   "-1",
			"listingAgentId":  "not-a-uuid",
			"sellingAgentId":  "not-a-uuid",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown agent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)

		body := testutil.JSONBody(t, map[string]any{
			"propertyAddress": "42 Harbour View",
			"contractPrice":   "500000",
			"totalServiceFee": "20000",
			"listingAgentId":  listing.ID,
			"sellingAgentId":  testutil.MakeID(),
		})
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestGetTransactionHandler(t *testing.T) {
	t.Run("returns the transaction with agent names", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().WithName("Ada Vernon").Build(t, db)
		selling := testutil.NewAgent().WithName("Mick Ortega").Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transactions/"+txn.ID,
			map[string]string{"uuid": txn.ID},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp model.TransactionResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.ListingAgentName != "Ada Vernon" || resp.SellingAgentName != "Mick Ortega" {
			t.Errorf("Agent names not attached: %q / %q", resp.ListingAgentName, resp.SellingAgentName)
		}
	})

	t.Run("returns 404 for an unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transactions/"+id,
			map[string]string{"uuid": id},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestUpdateTransactionStatusHandler(t *testing.T) {
	statusRequest := func(t *testing.T, id, status string) *http.Request {
		t.Helper()
		return testutil.NewRequestWithURLParams(
			http.MethodPatch,
			"/api/transactions/"+id+"/status",
			map[string]string{"uuid": id},
			testutil.JSONBody(t, map[string]string{"status": status}),
		)
	}

	t.Run("advances one stage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).Build(t, db)

		w := httptest.NewRecorder()
		handler.UpdateTransactionStatus(w, statusRequest(t, txn.ID, "earnest_money"))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if updated.Status != lifecycle.StageEarnestMoney {
			t.Errorf("Status = %s, want earnest_money", updated.Status)
		}
	})

	t.Run("completing returns the breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).
			WithStatus(lifecycle.StageTitleDeed).
			WithTotalServiceFee("10000").
			Build(t, db)

		w := httptest.NewRecorder()
		handler.UpdateTransactionStatus(w, statusRequest(t, txn.ID, "completed"))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if updated.FinancialBreakdown == nil {
			t.Fatal("Expected financial breakdown in completion response")
		}
		if len(updated.FinancialBreakdown.AgentDistributions) != 2 {
			t.Errorf("Expected 2 distributions, got %d", len(updated.FinancialBreakdown.AgentDistributions))
		}
	})

	t.Run("rejects a stage skip with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).Build(t, db)

		w := httptest.NewRecorder()
		handler.UpdateTransactionStatus(w, statusRequest(t, txn.ID, "title_deed"))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects an unknown status value with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).Build(t, db)

		w := httptest.NewRecorder()
		handler.UpdateTransactionStatus(w, statusRequest(t, txn.ID, "escrow"))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		w := httptest.NewRecorder()
		handler.UpdateTransactionStatus(w, statusRequest(t, testutil.MakeID(), "earnest_money"))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestGetFinancialsHandler(t *testing.T) {
	t.Run("returns 400 before completion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transactions/"+txn.ID+"/financials",
			map[string]string{"uuid": txn.ID},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetFinancials(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns the breakdown after completion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).
			WithStatus(lifecycle.StageTitleDeed).
			WithTotalServiceFee("10000").
			Build(t, db)

		if _, err := svc.UpdateStatus(context.Background(), txn.ID, lifecycle.StageCompleted); err != nil {
			t.Fatalf("Failed to complete transaction: %v", err)
		}

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transactions/"+txn.ID+"/financials",
			map[string]string{"uuid": txn.ID},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetFinancials(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var breakdown model.FinancialBreakdown
		if err := json.NewDecoder(w.Body).Decode(&breakdown); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if breakdown.AgencyAmount.String() != "5000" {
			t.Errorf("AgencyAmount = %s, want 5000", breakdown.AgencyAmount)
		}
	})
}

func TestGetHistoryHandler(t *testing.T) {
	t.Run("lists records most recent first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		handler := handlers.NewTransactionHandler(svc)

		listing := testutil.NewAgent().Build(t, db)
		selling := testutil.NewAgent().Build(t, db)
		txn := testutil.NewTransaction(listing.ID, selling.ID).Build(t, db)

		for _, next := range []lifecycle.Stage{lifecycle.StageEarnestMoney, lifecycle.StageTitleDeed} {
			if _, err := svc.UpdateStatus(context.Background(), txn.ID, next); err != nil {
				t.Fatalf("UpdateStatus(%s) failed: %v", next, err)
			}
		}

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transactions/"+txn.ID+"/history",
			map[string]string{"uuid": txn.ID},
			nil,
		)
		w := httptest.NewRecorder()

		handler.GetHistory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var records []model.TransactionHistory
		if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[0].NewStatus != lifecycle.StageTitleDeed {
			t.Errorf("First record NewStatus = %s, want title_deed", records[0].NewStatus)
		}
	})
}

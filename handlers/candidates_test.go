// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/mister-vote/models"
	"github.com/danielhkuo/mister-vote/testutil"
)

func TestListCandidates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewCandidateHandler(db)

	t.Run("no candidates", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/api/candidates", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("Expected empty JSON array, got %q", body)
		}
	})

	testutil.CreateTestCandidate(t, db, "mister_10", "Omar Sy", "mister", 4)
	testutil.CreateTestCandidate(t, db, "mister_2", "Abdou Diouf", "mister", 9)
	testutil.CreateTestCandidate(t, db, "miss_1", "Rama Thiam", "miss", 1)

	t.Run("category then number", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/api/candidates", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var candidates []models.Candidate
		testutil.AssertJSON(t, w, &candidates)

		expected := []string{"miss_1", "mister_2", "mister_10"}
		if len(candidates) != len(expected) {
			t.Fatalf("Expected %d candidates, got %d", len(expected), len(candidates))
		}
		for i, id := range expected {
			if candidates[i].ID != id {
				t.Errorf("Position %d: expected %s, got %s", i, id, candidates[i].ID)
			}
		}
		if candidates[2].Number != 10 {
			t.Errorf("Expected candidate_number 10, got %d", candidates[2].Number)
		}
	})

	t.Run("by category", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/candidates/mister", nil)
		req.SetPathValue("category", "mister")
		w := httptest.NewRecorder()

		handler.ListByCategory(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var candidates []models.Candidate
		testutil.AssertJSON(t, w, &candidates)
		if len(candidates) != 2 {
			t.Fatalf("Expected 2 candidates, got %d", len(candidates))
		}
		for _, c := range candidates {
			if c.Category != "mister" {
				t.Errorf("Unexpected category %q", c.Category)
			}
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/candidates/jury", nil)
		req.SetPathValue("category", "jury")
		w := httptest.NewRecorder()

		handler.ListByCategory(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("Expected empty JSON array, got %q", body)
		}
	})
}

func TestRanking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewCandidateHandler(db)

	testutil.CreateTestCandidate(t, db, "miss_1", "Binta", "miss", 7)
	testutil.CreateTestCandidate(t, db, "mister_1", "Alioune", "mister", 7)
	testutil.CreateTestCandidate(t, db, "mister_2", "Zale", "mister", 12)

	w := httptest.NewRecorder()
	handler.Ranking(w, httptest.NewRequest("GET", "/api/ranking", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var ranking []models.RankedCandidate
	testutil.AssertJSON(t, w, &ranking)

	// Ties fall back to name order and still get distinct positions
	expected := []struct {
		id   string
		rank int
	}{
		{"mister_2", 1},
		{"mister_1", 2},
		{"miss_1", 3},
	}
	if len(ranking) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(ranking))
	}
	for i, e := range expected {
		if ranking[i].ID != e.id || ranking[i].RankPosition != e.rank {
			t.Errorf("Position %d: expected %s at rank %d, got %s at rank %d",
				i, e.id, e.rank, ranking[i].ID, ranking[i].RankPosition)
		}
	}
}

func TestStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewCandidateHandler(db)

	testutil.CreateTestCandidate(t, db, "miss_1", "Ndeye", "miss", 3)
	testutil.CreateTestCandidate(t, db, "mister_1", "Pape", "mister", 2)
	base := time.Date(2025, 11, 8, 20, 0, 0, 0, time.UTC)
	testutil.CreateTestTransaction(t, db, "miss_1", "S1", models.StatusValidated, 3, base)
	testutil.CreateTestTransaction(t, db, "mister_1", "S2", models.StatusValidated, 2, base)
	testutil.CreateTestTransaction(t, db, "mister_1", "S3", models.StatusPending, 1, base)
	testutil.CreateTestTransaction(t, db, "mister_1", "S4", models.StatusRejected, 1, base)

	w := httptest.NewRecorder()
	handler.Stats(w, httptest.NewRequest("GET", "/api/stats", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)

	if stats.TotalCandidates != 2 {
		t.Errorf("Expected 2 candidates, got %d", stats.TotalCandidates)
	}
	if stats.TotalVotes != 5 {
		t.Errorf("Expected 5 votes, got %d", stats.TotalVotes)
	}
	want := map[string]int64{
		models.StatusValidated: 2,
		models.StatusPending:   1,
		models.StatusRejected:  1,
	}
	for status, n := range want {
		if stats.Transactions[status] != n {
			t.Errorf("Expected %d %s transactions, got %d", n, status, stats.Transactions[status])
		}
	}
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer db.Close()

		w := httptest.NewRecorder()
		NewCandidateHandler(db).Health(w, httptest.NewRequest("GET", "/api/health", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.HealthResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != "healthy" || resp.Database != "connected" {
			t.Errorf("Expected healthy/connected, got %+v", resp)
		}
	})

	t.Run("unhealthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewCandidateHandler(db)
		db.Close()

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest("GET", "/api/health", nil))

		testutil.AssertStatus(t, w, http.StatusInternalServerError)

		var resp models.HealthResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != "unhealthy" || resp.Database != "disconnected" {
			t.Errorf("Expected unhealthy/disconnected, got %+v", resp)
		}
	})
}

func TestListCandidatesStorageFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCandidateHandler(db)
	db.Close()

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/api/candidates", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

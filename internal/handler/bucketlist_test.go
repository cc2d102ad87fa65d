package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/placepin/backend/internal/auth"
	"github.com/placepin/backend/internal/metrics"
	"github.com/placepin/backend/internal/service"
	"github.com/placepin/backend/internal/storage/sqlite"
)

// setupTestServer spins up the full router over a real temp store.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New()

	router := NewRouter(Deps{
		Users:      NewUsersHandler(authenticator, jwtManager, store, logger),
		Places:     NewPlacesHandler(service.NewPlaceService(store, logger)),
		BucketList: NewBucketListHandler(service.NewBucketListService(store, m, logger), logger),
		JWTManager: jwtManager,
		Metrics:    m,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// doJSON performs a request with an optional bearer token and decodes the
// JSON response into a generic map.
func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

// signup registers a user through the API and returns (userID, token).
func signup(t *testing.T, baseURL, name, email string) (string, string) {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, baseURL+"/api/users/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	if status != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%v)", status, resp)
	}

	user := resp["user"].(map[string]any)
	return user["id"].(string), resp["token"].(string)
}

// createPlace creates a place through the API and returns its ID.
func createPlace(t *testing.T, baseURL, token, title string) string {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, baseURL+"/api/places", token, map[string]any{
		"title":   title,
		"address": "1 Somewhere Rd",
		"lat":     51.5,
		"lng":     -0.12,
	})
	if status != http.StatusCreated {
		t.Fatalf("create place: expected 201, got %d (%v)", status, resp)
	}
	return resp["place"].(map[string]any)["id"].(string)
}

func TestBucketListEndpoints(t *testing.T) {
	server := setupTestServer(t)
	base := server.URL

	_, u1Token := signup(t, base, "Uma", "uma@example.com")
	u2ID, u2Token := signup(t, base, "Vik", "vik@example.com")
	placeID := createPlace(t, base, u1Token, "Eiffel Tower")

	t.Run("mutations require authentication", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, base+"/api/bucketlist/"+placeID, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("add another user's place", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodPost, base+"/api/bucketlist/"+placeID, u2Token, nil)
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%v)", status, resp)
		}
		added := resp["addedPlace"].(map[string]any)
		if added["id"].(string) != placeID {
			t.Errorf("addedPlace id: expected %q, got %v", placeID, added["id"])
		}
	})

	t.Run("add own place is forbidden", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, base+"/api/bucketlist/"+placeID, u1Token, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})

	t.Run("duplicate add is a conflict", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, base+"/api/bucketlist/"+placeID, u2Token, nil)
		if status != http.StatusConflict {
			t.Errorf("expected 409, got %d", status)
		}
	})

	t.Run("any authenticated user may view a list", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodGet, base+"/api/users/"+u2ID+"/bucketlist", u1Token, nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d (%v)", status, resp)
		}
		if resp["name"].(string) != "Vik" {
			t.Errorf("name: expected 'Vik', got %v", resp["name"])
		}
		entries := resp["bucketList"].([]any)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		entry := entries[0].(map[string]any)
		if entry["placeId"].(string) != placeID {
			t.Errorf("placeId: expected %q, got %v", placeID, entry["placeId"])
		}
		if entry["isVisited"].(bool) {
			t.Error("expected isVisited=false")
		}
		if entry["createdBy"].(string) != "Uma" {
			t.Errorf("createdBy: expected 'Uma', got %v", entry["createdBy"])
		}
	})

	t.Run("toggle visited", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/bucketlist/%s/visited", base, placeID)

		status, resp := doJSON(t, http.MethodPatch, url, u2Token, nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d (%v)", status, resp)
		}
		if !resp["isVisited"].(bool) {
			t.Error("first toggle: expected isVisited=true")
		}

		status, resp = doJSON(t, http.MethodPatch, url, u2Token, nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d (%v)", status, resp)
		}
		if resp["isVisited"].(bool) {
			t.Error("second toggle: expected isVisited=false")
		}
	})

	t.Run("toggle on an absent entry is 404", func(t *testing.T) {
		otherID := createPlace(t, base, u1Token, "Louvre")
		url := fmt.Sprintf("%s/api/bucketlist/%s/visited", base, otherID)

		status, _ := doJSON(t, http.MethodPatch, url, u2Token, nil)
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})

	t.Run("remove twice succeeds both times", func(t *testing.T) {
		url := base + "/api/bucketlist/" + placeID

		status, _ := doJSON(t, http.MethodDelete, url, u2Token, nil)
		if status != http.StatusOK {
			t.Errorf("expected 200, got %d", status)
		}
		status, _ = doJSON(t, http.MethodDelete, url, u2Token, nil)
		if status != http.StatusOK {
			t.Errorf("second remove: expected 200, got %d", status)
		}

		listStatus, resp := doJSON(t, http.MethodGet, base+"/api/users/"+u2ID+"/bucketlist", u2Token, nil)
		if listStatus != http.StatusOK {
			t.Fatalf("list: expected 200, got %d", listStatus)
		}
		if entries := resp["bucketList"].([]any); len(entries) != 0 {
			t.Errorf("expected empty list, got %d entries", len(entries))
		}
	})

	t.Run("unknown target place is 404", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, base+"/api/bucketlist/no-such-place", u2Token, nil)
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})
}

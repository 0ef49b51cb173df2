package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend emulates the remote action endpoint with in-memory tables.
type fakeBackend struct {
	mu     sync.Mutex
	calls  []DispatchRequest
	nextID int64
	rows   map[string][]map[string]interface{}

	// handler, when set, overrides the default table emulation.
	handler func(req DispatchRequest) (int, DispatchResponse)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{rows: make(map[string][]map[string]interface{})}
}

func (f *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req DispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.calls = append(f.calls, req)
		handler := f.handler
		f.mu.Unlock()

		var status int
		var resp DispatchResponse
		if handler != nil {
			status, resp = handler(req)
		} else {
			status, resp = f.dispatch(req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeBackend) dispatch(req DispatchRequest) (int, DispatchResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch req.Action {
	case ActionGet:
		matched := make([]map[string]interface{}, 0)
		for _, row := range f.rows[req.Table] {
			if rowMatches(row, req.Where) {
				matched = append(matched, row)
			}
		}
		data, _ := json.Marshal(matched)
		return http.StatusOK, DispatchResponse{Success: true, Data: data, Count: int64(len(matched))}
	case ActionInsert:
		f.nextID++
		row := map[string]interface{}{"id": f.nextID, "is_deleted": 0}
		for k, v := range req.Data {
			row[k] = v
		}
		f.rows[req.Table] = append(f.rows[req.Table], row)
		return http.StatusOK, DispatchResponse{Success: true, InsertID: f.nextID}
	case ActionUpdate:
		var count int64
		for _, row := range f.rows[req.Table] {
			if rowMatches(row, req.Where) {
				for k, v := range req.Data {
					row[k] = v
				}
				count++
			}
		}
		return http.StatusOK, DispatchResponse{Success: true, Count: count}
	case ActionSoftDelete:
		var count int64
		for _, row := range f.rows[req.Table] {
			if rowMatches(row, req.Where) {
				row["is_deleted"] = 1
				count++
			}
		}
		return http.StatusOK, DispatchResponse{Success: true, Count: count}
	}
	return http.StatusOK, DispatchResponse{Success: false, Message: "unknown action"}
}

func rowMatches(row, where map[string]interface{}) bool {
	for k, v := range where {
		if fmt.Sprint(row[k]) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

func (f *fakeBackend) callsFor(action, table string) []DispatchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []DispatchRequest
	for _, c := range f.calls {
		if c.Action == action && c.Table == table {
			out = append(out, c)
		}
	}
	return out
}

func newTestCreds(t *testing.T) *CredentialStore {
	t.Helper()
	creds, err := NewCredentialStore(filepath.Join(t.TempDir(), "creds.json"))
	require.NoError(t, err)
	return creds
}

func newTestClient(t *testing.T, backend *fakeBackend, onAuthFailure func()) (*DispatchClient, *CredentialStore) {
	t.Helper()
	srv := backend.server(t)
	creds := newTestCreds(t)
	require.NoError(t, creds.Save("test-token", nil))
	return NewDispatchClient(srv.URL, "", "/api/login", creds, onAuthFailure), creds
}

func TestDispatchClientGetFiltersArchivedRows(t *testing.T) {
	backend := newFakeBackend()
	backend.rows[TableFeatures] = []map[string]interface{}{
		{"id": 1, "title": "New Arrivals", "is_deleted": 0},
		{"id": 2, "title": "Retired", "is_deleted": 1},
	}
	client, _ := newTestClient(t, backend, nil)

	var features []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	err := client.Get(context.Background(), TableFeatures, Alive(), &features)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "New Arrivals", features[0].Title)
}

func TestDispatchClientInsertReturnsAssignedID(t *testing.T) {
	backend := newFakeBackend()
	client, _ := newTestClient(t, backend, nil)

	id, err := client.Insert(context.Background(), TableFeatures, map[string]interface{}{"title": "Bestsellers"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestDispatchClientReportedFailureBecomesError(t *testing.T) {
	backend := newFakeBackend()
	backend.handler = func(req DispatchRequest) (int, DispatchResponse) {
		return http.StatusOK, DispatchResponse{Success: false, Message: "table locked"}
	}
	client, _ := newTestClient(t, backend, nil)

	_, err := client.Do(context.Background(), DispatchRequest{Action: ActionGet, Table: TableFeatures})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table locked")
}

func TestConcurrent401sClearCredentialOnce(t *testing.T) {
	backend := newFakeBackend()
	release := make(chan struct{})
	backend.handler = func(req DispatchRequest) (int, DispatchResponse) {
		<-release
		return http.StatusUnauthorized, DispatchResponse{Success: false, Message: "bad token"}
	}

	var authFailures atomic.Int64
	client, creds := newTestClient(t, backend, func() { authFailures.Add(1) })

	const inFlight = 8
	var wg sync.WaitGroup
	errs := make([]error, inFlight)
	for i := 0; i < inFlight; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Do(context.Background(), DispatchRequest{Action: ActionGet, Table: TableUsers})
		}(i)
	}
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.Equal(t, int64(1), authFailures.Load(), "auth-failure hook must fire exactly once")
	assert.Empty(t, creds.Token())
}

func TestAliveMergesExtraPredicates(t *testing.T) {
	where := Alive("category_id", int64(7))
	assert.Equal(t, 0, where["is_deleted"])
	assert.Equal(t, int64(7), where["category_id"])
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	first, err := NewCredentialStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save("tok-123", json.RawMessage(`{"id":4}`)))

	// A fresh store against the same path sees the persisted credential.
	second, err := NewCredentialStore(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", second.Token())
	assert.JSONEq(t, `{"id":4}`, string(second.Profile()))

	assert.True(t, second.Clear())
	assert.False(t, second.Clear(), "second clear has nothing left to do")

	third, err := NewCredentialStore(path)
	require.NoError(t, err)
	assert.Empty(t, third.Token())
}

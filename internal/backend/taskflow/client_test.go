package taskflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	backend "taskflow/internal/backend/taskflow"
	"taskflow/internal/cache"
	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/task"
)

type staticTokens struct {
	tok string
	ok  bool
}

func (s staticTokens) Token() (string, bool) { return s.tok, s.ok }

func newClient(t *testing.T, h http.HandlerFunc, tokens service.TokenProvider) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.New(&config.Config{ServerURL: srv.URL}, tokens)
}

func TestLogin_Success(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		var body struct{ Username, Password string }
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body.Username != "alice" || body.Password != "pw" {
			t.Errorf("credentials not forwarded: %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}, staticTokens{})

	creds, err := c.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if creds.AccessToken != "tok-123" {
		t.Errorf("token = %q", creds.AccessToken)
	}
}

func TestLogin_RejectionCarriesServerMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid username or password"})
	}, staticTokens{})

	_, err := c.Login(context.Background(), "alice", "nope")
	var aErr *service.AuthError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if aErr.Message != "Invalid username or password" {
		t.Errorf("message = %q", aErr.Message)
	}
	if errors.Is(err, service.ErrUnauthorized) {
		t.Error("a rejected login is not an expired session")
	}
}

func TestSignup_Conflict(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signup" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Username already exists"})
	}, staticTokens{})

	err := c.Signup(context.Background(), "alice", "pw")
	var aErr *service.AuthError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if aErr.Message != "Username already exists" {
		t.Errorf("message = %q", aErr.Message)
	}
}

func TestListTasks_SendsBearerToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "title": "Buy milk", "status": "pending", "priority": "Low"},
			{"id": 2, "title": "Write report", "status": "completed", "priority": "High"},
		})
	}, staticTokens{tok: "tok-123", ok: true})

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "Buy milk" || tasks[1].Status != task.StatusCompleted {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestListTasks_MalformedBodyIsError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}, staticTokens{tok: "tok", ok: true})

	_, err := c.ListTasks(context.Background())
	var rErr *service.RemoteError
	if !errors.As(err, &rErr) {
		t.Fatalf("expected RemoteError for an undecodable 200, got %v", err)
	}
}

// A 200 the client cannot decode must not wipe previously cached tasks.
func TestRefresh_MalformedBodyRetainsSnapshot(t *testing.T) {
	var tasksCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&tasksCalls, 1) == 1 {
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "title": "Buy milk", "status": "pending", "priority": "Low"},
			})
			return
		}
		w.Write([]byte("this is not json"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Dir: t.TempDir(), ServerURL: srv.URL}
	tokens := &lateTokens{}
	client := backend.New(cfg, tokens)
	sess := session.NewStore(cfg, client)
	tokens.sess = sess
	c := cache.New(sess, client)
	sess.OnReset(c.Clear)

	ctx := context.Background()
	if _, err := sess.Login(ctx, "alice", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := c.Refresh(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached task, got %d", c.Len())
	}

	_, err := c.Refresh(ctx)
	var rErr *service.RemoteError
	if !errors.As(err, &rErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("failed refresh must leave the prior snapshot intact, got %d tasks", c.Len())
	}
}

// lateTokens defers token lookups until the session store exists, the way
// the app wiring does.
type lateTokens struct {
	sess *session.Store
}

func (l *lateTokens) Token() (string, bool) {
	if l.sess == nil {
		return "", false
	}
	return l.sess.Token()
}

func TestListTasks_401IsUnauthorized(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, staticTokens{tok: "stale", ok: true})

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestListTasks_NoSessionFailsBeforeNetwork(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server without a token")
	}, staticTokens{})

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestCreateTask_DecodesWrappedTask(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body["title"] != "Buy milk" {
			t.Errorf("title not forwarded: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Task created",
			"task": map[string]any{
				"id": 7, "title": "Buy milk", "status": "pending", "priority": "Low",
			},
		})
	}, staticTokens{tok: "tok", ok: true})

	got, err := c.CreateTask(context.Background(), task.NewTask{Title: "Buy milk", Priority: task.PriorityLow})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got.ID != 7 || got.Title != "Buy milk" {
		t.Errorf("unexpected task: %+v", got)
	}
}

func TestUpdateTask_SendsOnlySetFields(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if len(body) != 1 || body["title"] != "new" {
			t.Errorf("patch must carry only the set fields, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Task updated"})
	}, staticTokens{tok: "tok", ok: true})

	title := "new"
	if err := c.UpdateTask(context.Background(), 7, task.Patch{Title: &title}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Task not found"})
	}, staticTokens{tok: "tok", ok: true})

	title := "x"
	err := c.UpdateTask(context.Background(), 99, task.Patch{Title: &title})
	var rErr *service.RemoteError
	if !errors.As(err, &rErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if rErr.StatusCode != http.StatusNotFound || rErr.Message != "Task not found" {
		t.Errorf("unexpected error: %+v", rErr)
	}
}

func TestDeleteTask(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/tasks/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted"})
	}, staticTokens{tok: "tok", ok: true})

	if err := c.DeleteTask(context.Background(), 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func stubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, "test-token")
}

func TestListTodosSendsTokenAndOrder(t *testing.T) {
	c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("order"); got != "asc" {
			t.Errorf("order = %q, want asc", got)
		}
		json.NewEncoder(w).Encode([]Todo{{ID: "t1", Title: "Buy milk"}})
	})

	todos, err := c.ListTodos(context.Background(), "asc")
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "Buy milk" {
		t.Errorf("unexpected todos: %+v", todos)
	}
}

func TestCreateTodoDecodesRecord(t *testing.T) {
	c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["title"] != "Buy milk" || body["description"] != "two liters" {
			t.Errorf("unexpected body: %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Todo{ID: "server-id", Title: body["title"]})
	})

	todo, err := c.CreateTodo(context.Background(), "Buy milk", "two liters")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.ID != "server-id" {
		t.Errorf("ID = %q, want server-id", todo.ID)
	}
}

func TestUpdateTodoOmitsNilFields(t *testing.T) {
	c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, ok := body["title"]; ok {
			t.Error("nil title must be omitted")
		}
		if completed, ok := body["completed"].(bool); !ok || !completed {
			t.Errorf("completed = %v", body["completed"])
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Success"})
	})

	completed := true
	if err := c.UpdateTodo(context.Background(), "t1", UpdatePatch{Completed: &completed}); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		})
		err := c.DeleteTodo(context.Background(), "t1")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestErrorCarriesServerMessage(t *testing.T) {
	c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "Too many todos created, try again later"})
	})

	_, err := c.CreateTodo(context.Background(), "x", "")
	if err == nil || !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
	if got := err.Error(); got != "rate limited: Too many todos created, try again later" {
		t.Errorf("message = %q", got)
	}
}

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulse-social/pulse/internal/models"
	"github.com/pulse-social/pulse/internal/notify"
)

func newCommentsTestEnv(comments *fakeComments) (*gin.Engine, *fakeNotifs) {
	posts := newFakePosts(newFakeFollows(),
		&models.Post{ID: 10, AuthorID: 2, Title: "bob's post", CreatedAt: time.Now()},
		&models.Post{ID: 11, AuthorID: 1, Title: "own post", CreatedAt: time.Now()},
	)
	notifs := newFakeNotifs()
	writer := notify.NewWriter(notifs, nil)
	api := NewCommentsAPI(comments, posts, writer)

	engine := gin.New()
	engine.GET("/comments", api.List)

	authed := engine.Group("/", authAs(1))
	authed.POST("/comments", api.Create)
	authed.PUT("/comments/:id", api.Update)
	authed.DELETE("/comments/:id", api.Delete)
	return engine, notifs
}

func TestListCommentsRequiresPostFilter(t *testing.T) {
	engine, _ := newCommentsTestEnv(newFakeComments())

	w := doRequest(t, engine, http.MethodGet, "/comments", nil)
	assertStatus(t, w, http.StatusBadRequest)
	assertErrorCode(t, w, "bad_request")
}

func TestListCommentsOldestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	comments := newFakeComments()
	comments.comments[1] = &models.Comment{ID: 1, PostID: 10, AuthorID: 1, Content: "second", CreatedAt: base.Add(time.Hour)}
	comments.comments[2] = &models.Comment{ID: 2, PostID: 10, AuthorID: 2, Content: "first", CreatedAt: base}
	comments.comments[3] = &models.Comment{ID: 3, PostID: 11, AuthorID: 1, Content: "elsewhere", CreatedAt: base}
	engine, _ := newCommentsTestEnv(comments)

	w := doRequest(t, engine, http.MethodGet, "/comments?post=10", nil)
	assertStatus(t, w, http.StatusOK)

	items, _ := decodeBody(t, w)["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("items length = %d, want 2", len(items))
	}
	if got := items[0].(map[string]interface{})["content"]; got != "first" {
		t.Errorf("first item content = %v, want first", got)
	}
}

func TestCreateComment(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantNotifs int
		wantCode   string
	}{
		{
			name:       "comment on another user's post notifies the author",
			body:       map[string]interface{}{"post_id": 10, "content": "nice"},
			wantStatus: http.StatusCreated,
			wantNotifs: 1,
		},
		{
			name:       "comment on own post does not notify",
			body:       map[string]interface{}{"post_id": 11, "content": "nice"},
			wantStatus: http.StatusCreated,
			wantNotifs: 0,
		},
		{
			name:       "unknown post",
			body:       map[string]interface{}{"post_id": 99, "content": "nice"},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "empty content",
			body:       map[string]interface{}{"post_id": 10, "content": ""},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, notifs := newCommentsTestEnv(newFakeComments())

			w := doRequest(t, engine, http.MethodPost, "/comments", tt.body)
			assertStatus(t, w, tt.wantStatus)
			if tt.wantCode != "" {
				assertErrorCode(t, w, tt.wantCode)
			}
			if len(notifs.notifs) != tt.wantNotifs {
				t.Errorf("notification count = %d, want %d", len(notifs.notifs), tt.wantNotifs)
			}
		})
	}
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	comments := newFakeComments()
	comments.comments[1] = &models.Comment{ID: 1, PostID: 10, AuthorID: 2, Content: "bob's comment"}
	comments.comments[2] = &models.Comment{ID: 2, PostID: 10, AuthorID: 1, Content: "alice's comment"}
	engine, _ := newCommentsTestEnv(comments)

	w := doRequest(t, engine, http.MethodPut, "/comments/1", map[string]interface{}{"content": "edited"})
	assertStatus(t, w, http.StatusForbidden)

	w = doRequest(t, engine, http.MethodPut, "/comments/2", map[string]interface{}{"content": "edited"})
	assertStatus(t, w, http.StatusOK)
	if comments.comments[2].Content != "edited" {
		t.Errorf("content = %q, want edited", comments.comments[2].Content)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	comments := newFakeComments()
	comments.comments[1] = &models.Comment{ID: 1, PostID: 10, AuthorID: 2, Content: "bob's comment"}
	comments.comments[2] = &models.Comment{ID: 2, PostID: 10, AuthorID: 1, Content: "alice's comment"}
	engine, _ := newCommentsTestEnv(comments)

	w := doRequest(t, engine, http.MethodDelete, "/comments/1", nil)
	assertStatus(t, w, http.StatusForbidden)

	w = doRequest(t, engine, http.MethodDelete, "/comments/2", nil)
	assertStatus(t, w, http.StatusNoContent)

	w = doRequest(t, engine, http.MethodDelete, "/comments/99", nil)
	assertStatus(t, w, http.StatusNotFound)
}

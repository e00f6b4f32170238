package social

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v4"
)

func testApp(mock pgxmock.PgxPoolIface) *fiber.App {
	app := fiber.New()
	asAlice := func(c *fiber.Ctx) error {
		c.Locals("username", "alice")
		return c.Next()
	}
	RegisterRoutes(app, NewService(mock), asAlice)
	return app
}

func TestFollowingHandler(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.following_id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Bob B"))

	req := httptest.NewRequest(http.MethodGet, "/user/following", nil)
	resp, err := testApp(mock).Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var names []NameItem
	if err := json.Unmarshal(raw, &names); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(names) != 1 || names[0].Name != "Bob B" {
		t.Fatalf("unexpected names: %+v", names)
	}
}

func TestFollowersHandler(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.follower_id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))

	req := httptest.NewRequest(http.MethodGet, "/user/followers", nil)
	resp, err := testApp(mock).Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %q", raw)
	}
}

func TestFollowingHandlerUnknownViewer(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/user/following", nil)
	resp, err := testApp(mock).Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestFollowersHandlerStoreError(t *testing.T) {
	mock := newMock(t)

	expectResolve(mock, "alice", 1)
	mock.ExpectQuery(`JOIN follows f ON u\.id = f\.follower_id`).
		WithArgs(int64(1)).
		WillReturnError(errSocial)

	req := httptest.NewRequest(http.MethodGet, "/user/followers", nil)
	resp, err := testApp(mock).Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

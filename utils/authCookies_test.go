package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func responseCookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, cookie := range w.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	return cookies
}

func TestSetAuthCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logon", nil)

	SetAuthCookies(c, "access-value", "refresh-value")

	cookies := responseCookies(w)
	access, ok := cookies[AccessTokenCookie]
	if !ok {
		t.Fatalf("access token cookie not set, got %v", cookies)
	}
	if access.Value != "access-value" {
		t.Errorf("unexpected access token value: %q", access.Value)
	}
	if !access.HttpOnly {
		t.Error("access token cookie must be HTTP-only")
	}
	if access.MaxAge <= 0 {
		t.Errorf("access token cookie should have a positive max-age, got %d", access.MaxAge)
	}

	refresh, ok := cookies[RefreshTokenCookie]
	if !ok {
		t.Fatal("refresh token cookie not set")
	}
	if refresh.Value != "refresh-value" {
		t.Errorf("unexpected refresh token value: %q", refresh.Value)
	}
	if refresh.MaxAge <= access.MaxAge {
		t.Errorf("refresh cookie should outlive access cookie: %d <= %d", refresh.MaxAge, access.MaxAge)
	}
}

func TestClearAuthCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logoff", nil)

	ClearAuthCookies(c)

	cookies := responseCookies(w)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		cookie, ok := cookies[name]
		if !ok {
			t.Fatalf("%s cookie not cleared", name)
		}
		if cookie.Value != "" {
			t.Errorf("%s should be emptied, got %q", name, cookie.Value)
		}
		if cookie.MaxAge >= 0 {
			t.Errorf("%s should carry a negative max-age, got %d", name, cookie.MaxAge)
		}
	}
}

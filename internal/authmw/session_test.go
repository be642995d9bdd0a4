package authmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kyri56xcaesar/task-tracker/internal/flash"
	"kyri56xcaesar/task-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)
	u := &store.User{ID: 42, Username: "alice", Role: store.RoleManager}

	token, err := auth.IssueToken(u, time.Now())
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, store.RoleManager, claims.Role)
}

func TestSessionTokenExpiry(t *testing.T) {
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)
	u := &store.User{ID: 1, Username: "bob", Role: store.RoleEmployee}

	// issued two hours ago with a one-hour TTL, beyond the leeway
	token, err := auth.IssueToken(u, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	assert.Error(t, err)
}

func TestSessionTokenWrongKey(t *testing.T) {
	issuer := NewSessionAuth([]byte("key-one"), time.Hour)
	verifier := NewSessionAuth([]byte("key-two"), time.Hour)
	u := &store.User{ID: 1, Username: "bob", Role: store.RoleEmployee}

	token, err := issuer.IssueToken(u, time.Now())
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)
	_, err := auth.ParseToken("not.a.token")
	assert.Error(t, err)
}

func flashCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == flash.CookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}

// An employee hitting a manager-only route is sent to the dashboard with a
// visible warning, not a silent redirect.
func TestRequireManagerDeniesWithWarning(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics", nil)
	c.Set(ContextUserKey, &store.User{ID: 2, Role: store.RoleEmployee, IsActive: true})

	auth.RequireManager()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.NotNil(t, flashCookie(w), "denial must carry a flash message")
}

func TestRequireManagerAllowsManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics", nil)
	c.Set(ContextUserKey, &store.User{ID: 1, Role: store.RoleManager, IsActive: true})

	auth.RequireManager()(c)

	assert.False(t, c.IsAborted())
	assert.Nil(t, flashCookie(w))
}

// A request with no session is sent to the login page with a visible notice.
func TestRequireUserNoTokenRedirectsWithNotice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks", nil)

	auth.RequireUser()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotNil(t, flashCookie(w), "denial must carry a flash message")
}

func TestRequireManagerJSONForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewSessionAuth([]byte("test-secret"), time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics?format=json", nil)
	c.Set(ContextUserKey, &store.User{ID: 2, Role: store.RoleEmployee, IsActive: true})

	auth.RequireManager()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Package authmw resolves the request identity from a signed session cookie
// and gates handlers by role. Authorization decisions live in policy.go and
// are invoked explicitly by handlers, not hidden inside middleware.
package authmw

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kyri56xcaesar/task-tracker/internal/flash"
	"kyri56xcaesar/task-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookie = "session_token"

	// gin context key carrying the resolved *store.User
	ContextUserKey = "auth.user"
)

type SessionAuth struct {
	Secret []byte
	TTL    time.Duration
	Leeway time.Duration
}

func NewSessionAuth(secret []byte, ttl time.Duration) *SessionAuth {
	return &SessionAuth{
		Secret: secret,
		TTL:    ttl,
		Leeway: 30 * time.Second,
	}
}

type SessionClaims struct {
	jwt.RegisteredClaims

	Username string `json:"preferred_username"`
	Role     string `json:"role"`
}

// IssueToken mints the session token set on login and cleared on logout.
func (a *SessionAuth) IssueToken(u *store.User, now time.Time) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.TTL)),
		},
		Username: u.Username,
		Role:     u.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

// ParseToken validates the token signature and expiry and returns the claims.
func (a *SessionAuth) ParseToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return a.Secret, nil },
		jwt.WithLeeway(a.Leeway),
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RequireUser resolves the session into a fresh User row on every request, so
// deactivation takes effect immediately, and stores it in the gin context.
func (a *SessionAuth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractSessionToken(c)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		claims, err := a.ParseToken(tokenStr)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		u, err := store.GetUserByID(c.Request.Context(), userID)
		if err != nil || !u.IsActive {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextUserKey, &u)
		c.Next()
	}
}

// RequireManager gates the admin and analytics surfaces. Denial flashes a
// warning and redirects to the dashboard rather than exposing a partial page.
func (a *SessionAuth) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if d := Authorize(CurrentUser(c), ActionAdmin, nil); !d.Allowed {
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": d.Reason})
				return
			}
			flash.Set(c, "warning", "Manager access required.")
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by RequireUser, or nil.
func CurrentUser(c *gin.Context) *store.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*store.User)
	return u
}

func extractSessionToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, nil
	}

	// bearer fallback for the JSON API
	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:]), nil
	}

	return "", errors.New("missing session token")
}

func abortUnauthenticated(c *gin.Context) {
	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in"})
		return
	}
	flash.Set(c, "info", "Please log in to access this page.")
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	if strings.EqualFold(c.Query("format"), "json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// Package flash carries the one-shot notice shown by the page that follows
// a redirect. The message rides a short-lived cookie and is cleared on the
// first read.
package flash

import (
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"
)

const CookieName = "flash"

// Flash is the message the next rendered page shows.
type Flash struct {
	Level   string // success / info / warning / danger
	Message string
}

// Set stores a message for the page that follows a redirect. Setting again
// before the read replaces the pending message.
func Set(c *gin.Context, level, message string) {
	v := base64.URLEncoding.EncodeToString([]byte(level + "|" + message))
	c.SetCookie(CookieName, v, 60, "/", "", false, true)
}

// Pop reads and clears the pending message, if any.
func Pop(c *gin.Context) Flash {
	v, err := c.Cookie(CookieName)
	if err != nil || v == "" {
		return Flash{}
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)

	b, err := base64.URLEncoding.DecodeString(v)
	if err != nil {
		return Flash{}
	}
	level, message, ok := strings.Cut(string(b), "|")
	if !ok {
		return Flash{Level: "info", Message: string(b)}
	}
	return Flash{Level: level, Message: message}
}

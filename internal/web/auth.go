package web

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/leitstand/internal/auth"
	apperrors "github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/models"
)

const (
	realm           = "leitstand"
	ctxUser         = "leitstand.user"
	ctxPermissions  = "leitstand.permissions"
	unauthorizedMsg = "authentication required"
)

// UserSource returns the accounts allowed to sign in
type UserSource func() ([]models.User, error)

// dummyHash keeps the bcrypt cost of an unknown username equal to a wrong password
var dummyHash, _ = auth.HashPassword("leitstand-unknown-user")

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// lookup scans every account so the time taken does not depend on where
// the username matched
func lookup(users []models.User, username string) (models.User, bool) {
	var (
		found models.User
		ok    bool
	)
	want := strings.ToLower(username)
	for _, u := range users {
		if secureCompare(strings.ToLower(u.Username), want) && !ok {
			found, ok = u, true
		}
	}
	return found, ok
}

// basicAuth authenticates against the users collection and stores the user
// and the resolved permissions on the context
func basicAuth(users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || username == "" {
			challenge(c)
			return
		}

		list, err := users()
		if err != nil {
			logger.Error("Failed to load users for authentication", "error", err)
			abortError(c, http.StatusInternalServerError, "failed to load users")
			return
		}

		u, found := lookup(list, username)
		hash := dummyHash
		if found {
			hash = u.PasswordHash
		}
		if err := auth.CheckPassword(hash, password); err != nil || !found {
			logger.Warn("Rejected login", "username", username, "remote", c.ClientIP())
			challenge(c)
			return
		}

		c.Set(ctxUser, u)
		c.Set(ctxPermissions, auth.ForUser(u))
		c.Next()
	}
}

func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
	abortError(c, http.StatusUnauthorized, unauthorizedMsg)
}

func currentUser(c *gin.Context) models.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(models.User); ok {
			return u
		}
	}
	return models.User{}
}

func permissions(c *gin.Context) auth.Permissions {
	if v, ok := c.Get(ctxPermissions); ok {
		if p, ok := v.(auth.Permissions); ok {
			return p
		}
	}
	return auth.Permissions{}
}

// requireAdmin restricts a route to the assistant role
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.CanUseAssistant(auth.Role(currentUser(c).Role)) {
			abortErr(c, fmt.Errorf("admin role required: %w", apperrors.ErrPermissionDenied))
			return
		}
		c.Next()
	}
}

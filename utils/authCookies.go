package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names shared with the token middleware and the refresh endpoint.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

const authCookiePath = "/"

// SetAuthCookies attaches the token pair to the response as HTTP-only cookies.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	writeAuthCookie(c, AccessTokenCookie, accessToken, AccessTokenExpiry)
	writeAuthCookie(c, RefreshTokenCookie, refreshToken, RefreshTokenExpiry)
}

// ClearAuthCookies expires both token cookies, used on logoff and account removal.
func ClearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	writeAuthCookie(c, AccessTokenCookie, "", -time.Second)
	writeAuthCookie(c, RefreshTokenCookie, "", -time.Second)
}

func writeAuthCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetCookie(name, value, int(ttl.Seconds()), authCookiePath, "", secureCookies(), true)
}

// secureCookies reports whether the Secure flag should be set. Local
// development runs over plain HTTP in debug mode.
func secureCookies() bool {
	return gin.Mode() != gin.DebugMode
}

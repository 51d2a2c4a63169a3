package cookie

import "github.com/gin-gonic/gin"

const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}

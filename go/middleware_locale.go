package usersserver

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/dolphin-software/users-service/internal/shared/locale"
)

// LanguageMatcher picks a supported language for an Accept-Language header value.
type LanguageMatcher interface {
	Match(acceptLanguage string) language.Tag
}

// LocaleMiddleware stores the negotiated language on the request context.
func LocaleMiddleware(matcher LanguageMatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if matcher != nil {
			tag := matcher.Match(c.GetHeader("Accept-Language"))
			c.Request = c.Request.WithContext(locale.WithLocale(c.Request.Context(), tag))
			c.Header("Content-Language", tag.String())
		}
		c.Next()
	}
}

package ports

import "golang.org/x/text/language"

// MessageSource resolves a message code into a localized, formatted string.
type MessageSource interface {
	Message(code string, params []any, locale language.Tag) string
}

package context

import (
	"context"

	"inbound/infrastructure/i18n"
	"inbound/models"
)

type sessionKey struct{}

type translatorKey struct{}

func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

func NewContextWithTranslator(ctx context.Context, t *i18n.Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, t)
}

// GetTranslatorFromContext returns nil when no translator is set; a nil
// translator returns default messages.
func GetTranslatorFromContext(ctx context.Context) *i18n.Translator {
	t, _ := ctx.Value(translatorKey{}).(*i18n.Translator)
	return t
}

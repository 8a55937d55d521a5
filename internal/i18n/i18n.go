// Package i18n renders user-facing messages in the configured language.
// Locale files are embedded so the binary stays self-contained.
package i18n

import (
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var localeFiles = []string{
	"locales/active.en.toml",
	"locales/active.zh.toml",
}

// Translator resolves message ids against the active language, falling
// back to English and finally to the id itself.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	log       *zap.Logger
}

// New builds a translator for lang ("en", "zh").
func New(lang string, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Warn("failed to load locale file", zap.String("file", file), zap.Error(err))
		}
	}

	t := &Translator{bundle: bundle, log: log}
	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the active language for subsequent lookups.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = "en"
	}
	t.localizer = i18n.NewLocalizer(t.bundle, lang, language.English.String())
}

// T translates a message id.
func (t *Translator) T(messageID string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		t.log.Debug("missing translation", zap.String("id", messageID), zap.Error(err))
		return messageID
	}
	return msg
}

// TWithData translates a message id with template data.
func (t *Translator) TWithData(messageID string, data map[string]interface{}) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		t.log.Debug("missing translation", zap.String("id", messageID), zap.Error(err))
		return messageID
	}
	return msg
}

// TPlural translates a message id with plural support. The count is
// also available to the template as {{.Count}}.
func (t *Translator) TPlural(messageID string, count int) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: map[string]interface{}{"Count": count},
	})
	if err != nil {
		t.log.Debug("missing translation", zap.String("id", messageID), zap.Error(err))
		return messageID
	}
	return msg
}

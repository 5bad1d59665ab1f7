package localization

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

const DefaultLanguage = "en"

var Languages = []string{"en", "hi"}

type Service struct {
	translations map[string]map[string]interface{}
}

func NewService() (*Service, error) {
	s := &Service{
		translations: make(map[string]map[string]interface{}),
	}

	for _, lang := range Languages {
		data, err := translationsFS.ReadFile(fmt.Sprintf("translations/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("read %s translations: %w", lang, err)
		}

		var translations map[string]interface{}
		if err := yaml.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse %s translations: %w", lang, err)
		}

		s.translations[lang] = translations
	}

	return s, nil
}

// Get retrieves a translation by key for the given language.
// Key format: "section.key". Keys missing in lang fall back to English and
// then to the key itself. Params fill placeholders like {{name}}.
func (s *Service) Get(lang, key string, params map[string]interface{}) string {
	if lang == "" {
		lang = DefaultLanguage
	}

	text, ok := s.lookup(lang, key)
	if !ok && lang != DefaultLanguage {
		text, ok = s.lookup(DefaultLanguage, key)
	}
	if !ok {
		return key
	}

	return s.replacePlaceholders(text, params)
}

func (s *Service) lookup(lang, key string) (string, bool) {
	var current interface{} = s.translations[lang]

	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return "", false
		}
		current = m[part]
	}

	text, ok := current.(string)
	return text, ok
}

func (s *Service) replacePlaceholders(text string, params map[string]interface{}) string {
	if params == nil {
		return text
	}

	result := text
	for key, value := range params {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, fmt.Sprint(value))
	}

	return result
}

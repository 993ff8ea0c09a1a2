package transcript

import (
	"fmt"
	"sort"
	"strings"
)

// Language is the code of the single language the recognizer is constrained to
type Language string

const (
	// English is the only language every tier can handle
	English Language = "en"

	// Japanese is the default target language
	Japanese Language = "ja"

	// DefaultLanguage is used when no language is configured
	DefaultLanguage = Japanese
)

// languageNames holds the language codes Whisper recognizes
var languageNames = map[Language]string{
	"af": "afrikaans", "am": "amharic", "ar": "arabic", "as": "assamese", "az": "azerbaijani",
	"ba": "bashkir", "be": "belarusian", "bg": "bulgarian", "bn": "bengali", "bo": "tibetan",
	"br": "breton", "bs": "bosnian", "ca": "catalan", "cs": "czech", "cy": "welsh",
	"da": "danish", "de": "german", "el": "greek", "en": "english", "es": "spanish",
	"et": "estonian", "eu": "basque", "fa": "persian", "fi": "finnish", "fo": "faroese",
	"fr": "french", "gl": "galician", "gu": "gujarati", "ha": "hausa", "haw": "hawaiian",
	"he": "hebrew", "hi": "hindi", "hr": "croatian", "ht": "haitian creole", "hu": "hungarian",
	"hy": "armenian", "id": "indonesian", "is": "icelandic", "it": "italian", "ja": "japanese",
	"jw": "javanese", "ka": "georgian", "kk": "kazakh", "km": "khmer", "kn": "kannada",
	"ko": "korean", "la": "latin", "lb": "luxembourgish", "ln": "lingala", "lo": "lao",
	"lt": "lithuanian", "lv": "latvian", "mg": "malagasy", "mi": "maori", "mk": "macedonian",
	"ml": "malayalam", "mn": "mongolian", "mr": "marathi", "ms": "malay", "mt": "maltese",
	"my": "myanmar", "ne": "nepali", "nl": "dutch", "nn": "nynorsk", "no": "norwegian",
	"oc": "occitan", "pa": "punjabi", "pl": "polish", "ps": "pashto", "pt": "portuguese",
	"ro": "romanian", "ru": "russian", "sa": "sanskrit", "sd": "sindhi", "si": "sinhala",
	"sk": "slovak", "sl": "slovenian", "sn": "shona", "so": "somali", "sq": "albanian",
	"sr": "serbian", "su": "sundanese", "sv": "swedish", "sw": "swahili", "ta": "tamil",
	"te": "telugu", "tg": "tajik", "th": "thai", "tk": "turkmen", "tl": "tagalog",
	"tr": "turkish", "tt": "tatar", "uk": "ukrainian", "ur": "urdu", "uz": "uzbek",
	"vi": "vietnamese", "yi": "yiddish", "yo": "yoruba", "yue": "cantonese", "zh": "chinese",
}

// ParseLanguage accepts a language code or English language name (case-insensitive).
// Auto-detection is not supported.
func ParseLanguage(s string) (Language, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return DefaultLanguage, nil
	}
	if v == "auto" {
		return "", fmt.Errorf("language auto-detection is not supported; choose a language code such as %q", DefaultLanguage)
	}
	if _, ok := languageNames[Language(v)]; ok {
		return Language(v), nil
	}
	for code, name := range languageNames {
		if name == v {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Name returns the English name of the language
func (l Language) Name() string {
	return languageNames[l]
}

func (l Language) String() string {
	return string(l)
}

// Languages returns all recognized language codes sorted alphabetically
func Languages() []Language {
	codes := make([]Language, 0, len(languageNames))
	for code := range languageNames {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

package config

// Language is a translation target offered in the translator form
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// LanguageOptions lists the supported target languages in display order
var LanguageOptions = []Language{
	{Name: "Spanish", Code: "es"},
	{Name: "English", Code: "en"},
	{Name: "Portuguese", Code: "pt"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
	{Name: "Italian", Code: "it"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Chinese", Code: "zh"},
	{Name: "Japanese", Code: "ja"},
	{Name: "Korean", Code: "ko"},
	{Name: "Russian", Code: "ru"},
	{Name: "Arabic", Code: "ar"},
}

// LanguageNames returns display names in option order
func LanguageNames() []string {
	names := make([]string, 0, len(LanguageOptions))
	for _, l := range LanguageOptions {
		names = append(names, l.Name)
	}
	return names
}

// LanguageCode maps a display name to its code, or "" if unknown
func LanguageCode(name string) string {
	for _, l := range LanguageOptions {
		if l.Name == name {
			return l.Code
		}
	}
	return ""
}

// LanguageName maps a code to its display name, or the code itself if unknown
func LanguageName(code string) string {
	for _, l := range LanguageOptions {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// IsSupportedLanguage reports whether code is a supported target language
func IsSupportedLanguage(code string) bool {
	for _, l := range LanguageOptions {
		if l.Code == code {
			return true
		}
	}
	return false
}

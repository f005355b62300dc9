package domain

// Supported submission languages and their fixed execution-engine identifiers.
const (
	LanguagePython     = "python"
	LanguageJava       = "java"
	LanguageJavascript = "javascript"
	LanguageCpp        = "cpp"
	LanguageC          = "c"
)

var engineLanguageIDs = map[string]int{
	LanguagePython:     71,
	LanguageJava:       62,
	LanguageJavascript: 63,
	LanguageCpp:        54,
	LanguageC:          50,
}

// EngineLanguageID resolves a language name to the engine's numeric identifier.
func EngineLanguageID(language string) (int, bool) {
	id, ok := engineLanguageIDs[language]
	return id, ok
}

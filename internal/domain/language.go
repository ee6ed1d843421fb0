package domain

import "time"

// judgeLanguageIDs maps platform language names to the ids the external
// judge recognizes. The table is fixed configuration owned by the
// dispatcher; an unknown name fails validation before any network call.
var judgeLanguageIDs = map[string]int{
	"c":          50,
	"cpp":        54,
	"go":         60,
	"java":       62,
	"javascript": 63,
	"python":     71,
	"ruby":       72,
	"rust":       73,
	"typescript": 74,
}

// JudgeLanguageID resolves a language name to the external judge's id.
func JudgeLanguageID(language string) (int, bool) {
	id, ok := judgeLanguageIDs[language]
	return id, ok
}

// SupportedLanguages returns the names the judge language table knows about.
func SupportedLanguages() []string {
	names := make([]string, 0, len(judgeLanguageIDs))
	for name := range judgeLanguageIDs {
		names = append(names, name)
	}
	return names
}

// LanguageConfig holds per-language execution limits attached to each
// test-case execution sent to the judge.
type LanguageConfig struct {
	Language        string    // language name (e.g. "python", "cpp")
	Description     string    // human-readable description
	CPUTimeLimitSec float64   // per-test-case CPU time limit in seconds
	MemoryLimitKB   int       // per-test-case memory limit in KB
	Active          bool      // whether submissions in this language are accepted
	CreatedAt       time.Time // when the config was created
	UpdatedAt       time.Time // when the config was last updated
}

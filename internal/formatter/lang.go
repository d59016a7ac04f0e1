package formatter

// DefaultLang is used for code blocks without a language attribute.
const DefaultLang = "text"

// langExtensions maps language names to file extensions.
var langExtensions = map[string]string{
	"c":          "c",
	"cpp":        "cpp",
	"csharp":     "cs",
	"css":        "css",
	"go":         "go",
	"html":       "html",
	"java":       "java",
	"javascript": "js",
	"json":       "json",
	"less":       "less",
	"markdown":   "md",
	"objectivec": "m",
	"php":        "php",
	"python":     "py",
	"ruby":       "rb",
	"sass":       "sass",
	"scss":       "scss",
	"sql":        "sql",
	"swift":      "swift",
	"yaml":       "yaml",
}

// Extension returns the file extension for a language, "txt" if unknown.
func Extension(lang string) string {
	if ext, ok := langExtensions[normalizeLang(lang)]; ok {
		return ext
	}
	return "txt"
}

// FileName returns a synthetic file name that lets tools infer the language.
func FileName(lang string) string {
	return "format." + Extension(lang)
}

package blocks

import "strings"

// DefaultLanguage is used for code blocks without a recognised language.
const DefaultLanguage = "plain text"

// languages are the code languages the editor accepts.
var languages = map[string]bool{
	"abap": true, "arduino": true, "bash": true, "basic": true, "c": true,
	"clojure": true, "coffeescript": true, "c++": true, "c#": true, "css": true,
	"dart": true, "diff": true, "docker": true, "elixir": true, "elm": true,
	"erlang": true, "flow": true, "fortran": true, "f#": true, "gherkin": true,
	"glsl": true, "go": true, "graphql": true, "groovy": true, "haskell": true,
	"html": true, "java": true, "javascript": true, "json": true, "julia": true,
	"kotlin": true, "latex": true, "less": true, "lisp": true, "livescript": true,
	"lua": true, "makefile": true, "markdown": true, "markup": true, "matlab": true,
	"mermaid": true, "nix": true, "objective-c": true, "ocaml": true, "pascal": true,
	"perl": true, "php": true, "plain text": true, "powershell": true, "prolog": true,
	"protobuf": true, "python": true, "r": true, "reason": true, "ruby": true,
	"rust": true, "sass": true, "scala": true, "scheme": true, "scss": true,
	"shell": true, "sql": true, "swift": true, "typescript": true, "vb.net": true,
	"verilog": true, "vhdl": true, "visual basic": true, "webassembly": true,
	"xml": true, "yaml": true, "java/c/c++/c#": true,
}

// languageAliases maps common fence info strings onto editor languages.
var languageAliases = map[string]string{
	"sh":         "shell",
	"zsh":        "shell",
	"console":    "shell",
	"golang":     "go",
	"js":         "javascript",
	"jsx":        "javascript",
	"mjs":        "javascript",
	"ts":         "typescript",
	"tsx":        "typescript",
	"py":         "python",
	"rb":         "ruby",
	"rs":         "rust",
	"kt":         "kotlin",
	"yml":        "yaml",
	"md":         "markdown",
	"cpp":        "c++",
	"cc":         "c++",
	"cs":         "c#",
	"csharp":     "c#",
	"fsharp":     "f#",
	"objc":       "objective-c",
	"dockerfile": "docker",
	"make":       "makefile",
	"ps1":        "powershell",
	"proto":      "protobuf",
	"tex":        "latex",
	"wasm":       "webassembly",
	"text":       "plain text",
	"txt":        "plain text",
	"plaintext":  "plain text",
}

// Language maps a fence info string onto an editor language.
// Unknown or empty languages become DefaultLanguage.
func Language(info string) string {
	lang := strings.ToLower(strings.TrimSpace(info))
	if i := strings.IndexAny(lang, " \t{"); i >= 0 {
		lang = lang[:i]
	}
	if alias, ok := languageAliases[lang]; ok {
		return alias
	}
	if languages[lang] {
		return lang
	}
	return DefaultLanguage
}

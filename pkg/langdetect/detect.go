// Package langdetect guesses the language of code found in docblock
// examples, so code nodes without an info string can still carry one.
// Detection is built on go-enry and leans towards the languages docblocks
// are written in.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language could be determined.
const Text = "text"

// Fence tags returned by Detect.
const (
	TypeScript = "typescript"
	JavaScript = "javascript"
	JSON       = "json"
	HTML       = "html"
	CSS        = "css"
	PHP        = "php"
	Java       = "java"
	Go         = "go"
	Shell      = "bash"
)

// classifierCandidates are the languages go-enry may choose between.
//
//nolint:gochecknoglobals // Read-only table.
var classifierCandidates = []string{
	"TypeScript", "JavaScript", "Java", "PHP", "Go", "CSS", "SCSS",
	"HTML", "JSON", "Shell", "Python", "Ruby", "SQL", "YAML",
}

// detector inspects trimmed content and returns a fence tag or "".
type detector func(content string) string

//nolint:gochecknoglobals // Ordered from most to least specific.
var detectors = []detector{
	detectPHP,
	detectHTML,
	detectJSON,
	detectTypeScript,
	detectJava,
	detectGo,
	detectJavaScript,
	detectCSS,
}

// Detect returns the fence tag for content, or Text.
func Detect(content []byte) string {
	return DetectFor("", content)
}

// DetectFor is like Detect but uses the name of the file the example was
// found in to settle JavaScript against TypeScript and as a last resort.
func DetectFor(filename string, content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return normalize(lang)
	}

	host := hostLanguage(filename)

	for _, detect := range detectors {
		lang := detect(string(trimmed))
		if lang == "" {
			continue
		}
		if lang == JavaScript && host == TypeScript {
			return TypeScript
		}
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	if host != "" && looksLikeCode(string(trimmed)) {
		return host
	}

	return Text
}

//nolint:gochecknoglobals // Extensions go-enry reports as ambiguous.
var scriptExtensions = map[string]string{
	".ts":  TypeScript,
	".tsx": TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
}

// hostLanguage returns the fence tag for the language of filename, or "".
func hostLanguage(filename string) string {
	if filename == "" {
		return ""
	}

	if lang, ok := scriptExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}

	lang, safe := enry.GetLanguageByExtension(filepath.Base(filename))
	if !safe || lang == "" {
		return ""
	}

	return normalize(lang)
}

//nolint:gochecknoglobals // Compiled once.
var (
	tsPattern   = regexp.MustCompile(`(?m)\b(interface|type)\s+\w+\s*(=|\{|<)|:\s*(string|number|boolean|void|unknown|any)\b|\bas\s+const\b|\bimplements\s+\w+`)
	jsPattern   = regexp.MustCompile(`=>|\b(const|let|var)\s+\w+|\bfunction\s*\w*\s*\(|console\.\w+\(|\brequire\(|\bimport\s+.*\bfrom\s+['"]|\bexport\s+(default|const|function|class)\b|\bnew\s+[A-Z]\w*\(`)
	javaPattern = regexp.MustCompile(`\b(public|private|protected)\s+(static\s+)?(final\s+)?[A-Z\w<>\[\]]+\s+\w+\s*\(|System\.out\.print|@Override\b`)
	goPattern   = regexp.MustCompile(`(?m)^package\s+\w+|\bfunc\s+(\(\w+\s+\*?\w+\)\s*)?\w+\(|:=`)
	cssPattern  = regexp.MustCompile(`(?m)^[.#]?[\w-]+(\s*[,>+~]?\s*[.#]?[\w-]+)*\s*\{\s*$|^\s*[\w-]+\s*:\s*[^;]+;\s*$`)
)

func detectPHP(content string) string {
	if strings.HasPrefix(content, "<?php") || strings.Contains(content, "$this->") {
		return PHP
	}
	return ""
}

func detectHTML(content string) string {
	lower := strings.ToLower(content)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return HTML
	}
	if strings.HasPrefix(lower, "<") && strings.HasSuffix(lower, ">") && strings.Contains(lower, "</") {
		return HTML
	}
	return ""
}

func detectJSON(content string) string {
	if !(strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}")) &&
		!(strings.HasPrefix(content, "[") && strings.HasSuffix(content, "]")) {
		return ""
	}

	if strings.Contains(content, `":`) && !jsPattern.MatchString(content) {
		return JSON
	}
	return ""
}

func detectTypeScript(content string) string {
	if tsPattern.MatchString(content) {
		return TypeScript
	}
	return ""
}

func detectJava(content string) string {
	if javaPattern.MatchString(content) {
		return Java
	}
	return ""
}

func detectGo(content string) string {
	if goPattern.MatchString(content) && !strings.Contains(content, "function") {
		return Go
	}
	return ""
}

func detectJavaScript(content string) string {
	if jsPattern.MatchString(content) {
		return JavaScript
	}
	return ""
}

func detectCSS(content string) string {
	if cssPattern.MatchString(content) && !strings.Contains(content, "(") {
		return CSS
	}
	return ""
}

// looksLikeCode reports whether content has punctuation typical of code
// rather than prose.
func looksLikeCode(content string) bool {
	return strings.ContainsAny(content, "(){};=")
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return Shell
	case "SCSS":
		return "scss"
	default:
		return strings.ToLower(lang)
	}
}

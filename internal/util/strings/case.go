package strings

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	lowerUpper      = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	repeatedScores  = regexp.MustCompile(`_+`)
)

// ToPascalCase upper-cases the first letter of every alphanumeric run and
// joins them: "job-category" -> "JobCategory", "books" -> "Books".
// The remainder of each run keeps its case.
func ToPascalCase(s string) string {
	var result strings.Builder
	for _, part := range nonAlphanumeric.Split(s, -1) {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		result.WriteRune(unicode.ToUpper(r))
		result.WriteString(part[size:])
	}
	return result.String()
}

// ToCamelCase is ToPascalCase with a lower-case first letter.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(pascal)
	return string(unicode.ToLower(r)) + pascal[size:]
}

// ToSnakeCase converts CamelCase and punctuated names to snake_case
// (jobCategory -> job_category, "job-category" -> job_category)
func ToSnakeCase(s string) string {
	result := nonAlphanumeric.ReplaceAllString(s, "_")
	result = lowerUpper.ReplaceAllString(result, "${1}_${2}")
	result = strings.ToLower(result)
	result = strings.Trim(result, "_")
	return repeatedScores.ReplaceAllString(result, "_")
}

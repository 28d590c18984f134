package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizer *bluemonday.Policy

// Init hooks the custom binding rules into gin's validator engine and
// prepares the HTML sanitizer. Request structs opt in via binding tags
// ("slug", "dictionary_word").
func Init() {
	sanitizer = bluemonday.UGCPolicy()

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		engine.RegisterValidation("slug", validateSlug)
		engine.RegisterValidation("dictionary_word", validateDictionaryWord)
	}
}

// SanitizeHTML strips everything a page body is not allowed to carry.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

// Dictionary words may carry internal hyphens and apostrophes but nothing
// else beyond letters ("mother-in-law", "o'clock").
var dictionaryWordRegex = regexp.MustCompile(`^[a-zA-Z]+(?:['-][a-zA-Z]+)*$`)

func validateDictionaryWord(fl validator.FieldLevel) bool {
	word := strings.TrimSpace(fl.Field().String())
	return word != "" && dictionaryWordRegex.MatchString(word)
}

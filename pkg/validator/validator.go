package validator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	initOnce  sync.Once

	slugPattern      = regexp.MustCompile(`^[a-z0-9-]+$`)
	urlPathPattern   = regexp.MustCompile(`^(/[^\s/?#]+)*/?$`)
	extensionPattern = regexp.MustCompile(`^\.?[a-zA-Z0-9]+$`)
	spaceRun         = regexp.MustCompile(`\s+`)
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()
		sanitizer = ContentPolicy()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

// ContentPolicy is the user generated content policy extended with the class and
// id attributes that article layouts rely on.
func ContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id").Globally()
	policy.AllowAttrs("style").OnElements("span", "div", "p")
	return policy
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
	v.RegisterValidation("url_path", validateURLPath)
	v.RegisterValidation("extension_list", validateExtensionList)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

func NormalizeSpaces(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func ValidateSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func validateSlug(fl validator.FieldLevel) bool {
	return ValidateSlug(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

// validateURLPath accepts "" and absolute paths without query or fragment.
func validateURLPath(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return urlPathPattern.MatchString(value)
}

// validateExtensionList accepts a comma separated list of bare extensions.
func validateExtensionList(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !extensionPattern.MatchString(part) {
			return false
		}
	}
	return true
}

package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var idListPattern = regexp.MustCompile(`^\s*\d+\s*(,\s*\d+\s*)*,?\s*$`)

// NotBlank rejects strings that are empty after trimming.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IDList accepts "1", "2,5", "2, 5,".
func IDList(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return true
	}
	return idListPattern.MatchString(s)
}

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not validator/v10")
	}
	if err := v.RegisterValidation("notblank", NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	if err := v.RegisterValidation("idlist", IDList); err != nil {
		return fmt.Errorf("register idlist: %w", err)
	}
	v.RegisterTagNameFunc(fieldName)
	return nil
}

// fieldName reports fields by their json (or form) tag.
func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	if name == "-" {
		return ""
	}
	return name
}

// ValidationFields flattens binding errors into field -> message, keyed by
// the form/json tag name.
func ValidationFields(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = "is malformed"
		return fields
	}
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return fields
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return "may not be greater than " + fe.Param() + " characters"
		}
		return "may not be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "idlist":
		return "must be a comma separated list of ids"
	}
	return "is invalid"
}

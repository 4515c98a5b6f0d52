package posts

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rivo/uniseg"
)

const (
	// minTextGraphemes and maxTextGraphemes bound post and comment text
	minTextGraphemes = 10
	maxTextGraphemes = 300
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Length rules count grapheme clusters, so an emoji or a combined accent counts once
	mustRegister(v, "gmin", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return uniseg.GraphemeClusterCount(fl.Field().String()) >= n
	})
	mustRegister(v, "gmax", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return uniseg.GraphemeClusterCount(fl.Field().String()) <= n
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("posts: register validation " + tag + ": " + err.Error())
	}
}

// Validate normalizes a post or comment payload and checks it.
// It returns the trimmed input and a mapping of field name to message.
// An empty mapping means the payload is acceptable; otherwise nothing may be written.
func Validate(in ContentInput) (ContentInput, map[string]string) {
	normalized := ContentInput{
		Text:   strings.TrimSpace(in.Text),
		Name:   strings.TrimSpace(in.Name),
		Avatar: strings.TrimSpace(in.Avatar),
	}

	fieldErrors := make(map[string]string)

	err := validate.Struct(normalized)
	if err == nil {
		return normalized, fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["input"] = err.Error()
		return normalized, fieldErrors
	}

	for _, fe := range verrs {
		field := fe.Field()
		// Keep the first failure per field; validator stops at the first failing tag anyway
		if _, seen := fieldErrors[field]; seen {
			continue
		}
		fieldErrors[field] = messageFor(field, fe.Tag())
	}

	return normalized, fieldErrors
}

func messageFor(field, tag string) string {
	switch field {
	case "text":
		if tag == "required" {
			return "Text field is required"
		}
		return "Post must be between " + strconv.Itoa(minTextGraphemes) + " and " + strconv.Itoa(maxTextGraphemes) + " characters"
	case "name":
		return "Name must not exceed 100 characters"
	case "avatar":
		if tag == "max" {
			return "Avatar URL is too long"
		}
		return "Avatar must be a valid URL"
	default:
		return "Field is invalid"
	}
}

package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate dipakai bersama oleh semua controller; nama field diambil dari tag json.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("gln", validateGLN)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateGLN(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexGLN).MatchString(fl.Field().String())
}

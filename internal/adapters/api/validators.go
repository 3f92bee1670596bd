package api

import (
	"catalogapi.app/internal/core/catalog"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validateMediaID accepts positive TMDB ids
func validateMediaID(fl validator.FieldLevel) bool {
	_, err := catalog.ParseMediaID(fl.Field().String())
	return err == nil
}

// RegisterValidators installs the custom binding tags on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("mediaid", validateMediaID)
}

package handler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/talentbridge/jobboard/pkg/model"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding rules used by the request
// models. Safe to call more than once; every call reports the first outcome.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("binding engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
			return model.ApplicationStatus(fl.Field().String()).Valid()
		}); err != nil {
			registerErr = fmt.Errorf("register appstatus rule: %w", err)
		}
	})
	return registerErr
}

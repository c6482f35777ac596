package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
)

// RegisterValidators 注册 binding 用的自定义校验：category / direction
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := feed.ParseCategory(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		_, err := feed.ParseDirection(fl.Field().String())
		return err == nil
	})
}

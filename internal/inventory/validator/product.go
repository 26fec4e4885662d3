package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

type ProductValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewProductValidator(log *logger.Logger) *ProductValidator {
	return &ProductValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *ProductValidator) Validate(p *model.Product) error {
	return v.check(v.validate.Struct(p))
}

func (v *ProductValidator) ValidateUpdate(update *model.ProductUpdate) error {
	return v.check(v.validate.Struct(update))
}

func (v *ProductValidator) check(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		switch first.Tag() {
		case "required":
			return fmt.Errorf("%s is required", first.Field())
		case "min":
			return fmt.Errorf("%s must be at least %s", first.Field(), first.Param())
		case "max":
			return fmt.Errorf("%s must be at most %s", first.Field(), first.Param())
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", first.Field(), first.Param())
		case "mongodb":
			return fmt.Errorf("%s must be a valid MongoDB ObjectID", first.Field())
		}
		return fmt.Errorf("%s failed validation (%s)", first.Field(), first.Tag())
	}
	return err
}

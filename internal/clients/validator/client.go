package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

type ClientValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClientValidator(log *logger.Logger) *ClientValidator {
	return &ClientValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *ClientValidator) Validate(c *model.Client) error {
	return v.check(v.validate.Struct(c))
}

func (v *ClientValidator) ValidateUpdate(update *model.ClientUpdate) error {
	return v.check(v.validate.Struct(update))
}

func (v *ClientValidator) check(err error) error {
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
		case "e164":
			return fmt.Errorf("%s must be in E.164 format", first.Field())
		case "email":
			return fmt.Errorf("%s must be a valid email address", first.Field())
		case "mongodb":
			return fmt.Errorf("%s must be a valid MongoDB ObjectID", first.Field())
		}
		return fmt.Errorf("%s failed validation (%s)", first.Field(), first.Tag())
	}
	return err
}

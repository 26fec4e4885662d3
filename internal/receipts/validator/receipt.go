package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

type ReceiptValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReceiptValidator(log *logger.Logger) *ReceiptValidator {
	return &ReceiptValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *ReceiptValidator) Validate(receipt *model.Receipt) error {
	if err := v.validate.Struct(receipt); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
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

package dto

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/SscSPs/expense_management_app/internal/apperrors"
	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RegisterValidations installs the custom tags used by the request DTOs on v.
// It is applied to gin's binding engine and to the validator used by Validate.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return domain.ExpenseCategory(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.ExpenseDateLayout, fl.Field().String())
		return err == nil
	})
}

// Validate checks a request DTO against its binding tags, for callers that do not go through gin.
func Validate(req any) error {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

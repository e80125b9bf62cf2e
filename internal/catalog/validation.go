package catalog

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"catalog-admin/internal/models"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func ValidReturnPolicy(policy string) bool {
	switch policy {
	case models.ReturnPolicyReturnable, models.ReturnPolicyNonReturnable, models.ReturnPolicyExchangeOnly:
		return true
	}
	return false
}

func ValidSaleStatus(status string) bool {
	return status == models.SaleLive || status == models.SaleClosed
}

// RegisterValidations adds the console's binding tags to v: phone10,
// returnpolicy and salestatus. Empty values pass so "required" stays
// responsible for presence. Field errors are reported by their JSON name.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	tags := map[string]func(string) bool{
		"phone10":      ValidPhone,
		"returnpolicy": ValidReturnPolicy,
		"salestatus":   ValidSaleStatus,
	}
	for tag, check := range tags {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return s == "" || check(s)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

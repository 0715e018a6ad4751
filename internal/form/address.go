// Package form validates user input at the screen boundary. The stores
// trust their callers and persist whatever they are given; everything that
// must hold for an address lives here.
package form

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/freshmandiapp/freshmandi/internal/address"
)

// AddressDraft is the raw add-address form.
type AddressDraft struct {
	Name        string `validate:"required"`
	Phone       string `validate:"required,len=10,numeric"`
	AltPhone    string `validate:"omitempty,len=10,numeric"`
	AddressLine string `validate:"required"`
	Pincode     string `validate:"required,len=6,numeric"`
	City        string `validate:"required"`
	State       string `validate:"required"`
	Landmark    string
}

var draftValidator = validator.New()

// Validate reports the first invalid field.
func (d AddressDraft) Validate() error {
	if err := draftValidator.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("invalid address: field %s fails %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return fmt.Errorf("invalid address: %w", err)
	}
	return nil
}

// Address converts a validated draft into a store entry. The store assigns
// the id.
func (d AddressDraft) Address() address.Address {
	return address.Address{
		Name:        d.Name,
		Phone:       d.Phone,
		AltPhone:    d.AltPhone,
		AddressLine: d.AddressLine,
		Pincode:     d.Pincode,
		City:        d.City,
		State:       d.State,
		Landmark:    d.Landmark,
	}
}

package forms

import (
	"strings"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

// AddCompany is the company creation form
type AddCompany struct {
	Name            string `validate:"required"`
	URL             string `validate:"required,url"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	ManagedByName   string
}

func (f *AddCompany) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return join(check(f))
}

// Request drops the confirmation field
func (f *AddCompany) Request() models.CreateCompanyRequest {
	return models.CreateCompanyRequest{
		Name:          f.Name,
		URL:           f.URL,
		Email:         f.Email,
		Password:      f.Password,
		ManagedByName: f.ManagedByName,
	}
}

// EditCompany is the update form; every field is optional
type EditCompany struct {
	Name            string
	URL             string `validate:"omitempty,url"`
	Email           string `validate:"omitempty,email"`
	Password        string `validate:"omitempty,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
	ManagedByName   string
}

func (f *EditCompany) Validate() error {
	return join(check(f))
}

func (f *EditCompany) Request() models.UpdateCompanyRequest {
	return models.UpdateCompanyRequest{
		Name:          f.Name,
		URL:           f.URL,
		Email:         f.Email,
		Password:      f.Password,
		ManagedByName: f.ManagedByName,
	}
}

// ResetPassword changes a company login password
type ResetPassword struct {
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

func (f *ResetPassword) Validate() error {
	return join(check(f))
}

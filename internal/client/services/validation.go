package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
)

// LoginForm is a submitted login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// SignupForm is a submitted signup form. Role is the label picked by the
// user; empty means analyst.
type SignupForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Role     string `form:"role" validate:"omitempty,role"`
}

// ValidationError maps form field names to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

// fieldOrder is the order fields appear on the forms.
var fieldOrder = []string{"name", "email", "password", "role"}

// Messages returns the field messages in form order.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range fieldOrder {
		if m, ok := e.Fields[f]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// messages keyed by "<field>.<rule>".
var messages = map[string]string{
	"email.required":    "Email is required",
	"email.email":       "Enter a valid email address",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters",
	"name.required":     "Name is required",
	"role.role":         "Select a valid role",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := models.ParseRole(fl.Field().String())
		return err == nil
	})
	return v
}

// Normalize trims the text fields. Passwords are left as typed.
func (f *LoginForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

func (f *SignupForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Role = strings.TrimSpace(f.Role)
}

// Validate returns a *ValidationError listing every invalid field, or nil.
func (f LoginForm) Validate() error {
	return validateForm(f)
}

func (f SignupForm) Validate() error {
	return validateForm(f)
}

// RoleOrDefault resolves the picked label; empty means analyst. It assumes
// the form has been validated.
func (f SignupForm) RoleOrDefault() models.Role {
	if r, err := models.ParseRole(f.Role); err == nil {
		return r
	}
	return models.RoleAnalyst
}

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := ve.Fields[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		ve.Fields[field] = msg
	}
	return ve
}

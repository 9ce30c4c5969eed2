package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/alama/core"
)

const dobLayout = "2006-01-02"

type Student struct {
	ID          int       `db:"id" json:"id"`
	Number      string    `db:"number" json:"number"` // external student number, unique
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"` // UTC
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"` // UTC
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type NewStudent struct {
	Number      string `json:"number" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Number = core.CleanString(ns.Number)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

// UpdateStudent only carries contact fields; identity is immutable once a
// student may be referenced by grades.
type UpdateStudent struct {
	Email null.String `json:"email"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	if us.Email.Valid {
		us.Email.String = core.CleanString(us.Email.String, true /* lower */)
		if err := validate.Var(us.Email.String, "required,email"); err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: "invalid email address"})
		}
	}
	return nil
}

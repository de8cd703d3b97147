package user

import (
	"bytes"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/collabrate/collabrate/core"
)

// User types
const (
	TypeStudent   = "student"
	TypeProfessor = "professor"
)

var Types = []string{TypeStudent, TypeProfessor}

// unusablePasswordPrefix marks a credential that can never match a real
// password; used by bulk data generation to skip the cost of hashing.
var unusablePasswordPrefix = []byte("!")

var errPasswordMismatch = bcrypt.ErrMismatchedHashAndPassword

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Type         string    `json:"user_type"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// SetUnusablePassword marks the user as having no valid credential.
func (u *User) SetUnusablePassword() {
	u.PasswordHash = unusablePasswordPrefix
}

func (u *User) HasUsablePassword() bool {
	return len(u.PasswordHash) > 0 && !bytes.HasPrefix(u.PasswordHash, unusablePasswordPrefix)
}

func (u *User) CheckPassword(pwd string) error {
	if !u.HasUsablePassword() {
		return errPasswordMismatch
	}
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsProfessor() bool {
	return u.Type == TypeProfessor
}

func (u *User) IsStudent() bool {
	return u.Type == TypeStudent
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username        string `json:"username" validate:"required,min=4,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Type            string `json:"user_type" validate:"required,usertype"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

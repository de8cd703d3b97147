package user

import (
	"testing"

	"github.com/collabrate/collabrate/core"
)

func TestNewUserValidation(t *testing.T) {
	validate, translator := core.Validate, core.Translator
	InitValidators(validate, translator)

	newUser := func(mutate func(nu *NewUser)) NewUser {
		nu := NewUser{
			Username:        "jdoe42",
			Email:           "jdoe42@student.example.edu",
			Type:            TypeStudent,
			Password:        "Tr0ub4dor&Horse",
			PasswordConfirm: "Tr0ub4dor&Horse",
		}
		if mutate != nil {
			mutate(&nu)
		}
		return nu
	}

	tests := []struct {
		name    string
		nu      NewUser
		wantErr bool
	}{
		{name: "valid student", nu: newUser(nil)},
		{name: "valid professor", nu: newUser(func(nu *NewUser) { nu.Type = TypeProfessor })},
		{name: "unknown type", nu: newUser(func(nu *NewUser) { nu.Type = "admin" }), wantErr: true},
		{name: "username too short", nu: newUser(func(nu *NewUser) { nu.Username = "ab" }), wantErr: true},
		{name: "bad email", nu: newUser(func(nu *NewUser) { nu.Email = "not-an-email" }), wantErr: true},
		{name: "password mismatch", nu: newUser(func(nu *NewUser) { nu.PasswordConfirm = "different1!" }), wantErr: true},
		{
			name: "password too short",
			nu: newUser(func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "short1!", "short1!"
			}),
			wantErr: true,
		},
		{
			name: "password with whitespace",
			nu: newUser(func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "has a space1", "has a space1"
			}),
			wantErr: true,
		},
		{
			name: "all numeric password",
			nu: newUser(func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "8675309867", "8675309867"
			}),
			wantErr: true,
		},
		{
			name: "password similar to username",
			nu: newUser(func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "jdoe42jdoe", "jdoe42jdoe"
			}),
			wantErr: true,
		},
		{
			name: "common password",
			nu: newUser(func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "Passw0rd", "Passw0rd"
			}),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.nu)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate.Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserPasswords(t *testing.T) {
	var usr User

	usr.SetUnusablePassword()
	if usr.HasUsablePassword() {
		t.Error("HasUsablePassword() = true after SetUnusablePassword()")
	}
	if err := usr.CheckPassword("anything"); err == nil {
		t.Error("CheckPassword() accepted a password on an unusable credential")
	}

	if err := usr.SetPassword("Tr0ub4dor&Horse"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if !usr.HasUsablePassword() {
		t.Error("HasUsablePassword() = false after SetPassword()")
	}
	if err := usr.CheckPassword("Tr0ub4dor&Horse"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err := usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

// Package provision is the single create-user path, shared by the admin
// route and the maintenance binaries. All validation runs before any write.
package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kyri56xcaesar/task-tracker/internal/authmw"
	"kyri56xcaesar/task-tracker/internal/store"
	"kyri56xcaesar/task-tracker/internal/utils"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrWeakPassword      = fmt.Errorf("password must be at least %d characters", authmw.MinPasswordLength)
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidField      = errors.New("invalid field value")
)

type Params struct {
	Username   string
	Email      string
	Password   string
	Firstname  string
	Lastname   string
	Role       string // defaults to employee
	Department string // optional
}

// Validate checks the shape of the params without touching the database.
func (p *Params) Validate() error {
	if p.Username == "" || p.Email == "" || p.Firstname == "" || p.Lastname == "" {
		return ErrMissingField
	}
	if !utils.IsAlphanumericPlus(p.Username, `_.\-`) {
		return fmt.Errorf("%w: username", ErrInvalidField)
	}
	if !strings.Contains(p.Email, "@") {
		return fmt.Errorf("%w: email", ErrInvalidField)
	}
	if len(p.Password) < authmw.MinPasswordLength {
		return ErrWeakPassword
	}
	if p.Role != "" && !store.ValidRole(p.Role) {
		return fmt.Errorf("%w: role", ErrInvalidField)
	}
	return nil
}

// CreateUser validates, checks uniqueness (case-sensitive exact match on
// username), hashes the credential and persists. Nothing is written unless
// every check passed.
func CreateUser(ctx context.Context, p Params) (store.User, error) {
	if err := p.Validate(); err != nil {
		return store.User{}, err
	}

	exists, err := store.UsernameExists(ctx, p.Username)
	if err != nil {
		return store.User{}, err
	}
	if exists {
		return store.User{}, ErrDuplicateUsername
	}

	exists, err = store.EmailExists(ctx, p.Email)
	if err != nil {
		return store.User{}, err
	}
	if exists {
		return store.User{}, ErrDuplicateEmail
	}

	digest, err := authmw.HashPassword(p.Password)
	if err != nil {
		return store.User{}, err
	}

	role := p.Role
	if role == "" {
		role = store.RoleEmployee
	}

	u := store.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: digest,
		Role:         role,
		Firstname:    p.Firstname,
		Lastname:     p.Lastname,
		Department:   p.Department,
		IsActive:     true,
	}

	id, err := store.InsertUser(ctx, u)
	if err != nil {
		return store.User{}, err
	}
	u.ID = id
	return u, nil
}

// ResetPassword sets a new credential for an existing user, enforcing the
// same minimum length as creation.
func ResetPassword(ctx context.Context, userID int64, password string) error {
	if len(password) < authmw.MinPasswordLength {
		return ErrWeakPassword
	}
	digest, err := authmw.HashPassword(password)
	if err != nil {
		return err
	}
	return store.UpdateUserPassword(ctx, userID, digest)
}

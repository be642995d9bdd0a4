package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validParams() Params {
	return Params{
		Username:  "alice",
		Email:     "alice@company.com",
		Password:  "secret1",
		Firstname: "Alice",
		Lastname:  "Smith",
	}
}

func TestParamsValidate(t *testing.T) {
	t.Run("valid params pass", func(t *testing.T) {
		p := validParams()
		assert.NoError(t, p.Validate())
	})

	t.Run("password length five fails, six passes", func(t *testing.T) {
		p := validParams()
		p.Password = "12345"
		assert.ErrorIs(t, p.Validate(), ErrWeakPassword)

		p.Password = "123456"
		assert.NoError(t, p.Validate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		for _, mutate := range []func(*Params){
			func(p *Params) { p.Username = "" },
			func(p *Params) { p.Email = "" },
			func(p *Params) { p.Firstname = "" },
			func(p *Params) { p.Lastname = "" },
		} {
			p := validParams()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrMissingField)
		}
	})

	t.Run("username characters", func(t *testing.T) {
		p := validParams()
		p.Username = "alice.smith_2"
		assert.NoError(t, p.Validate())

		p.Username = "alice smith"
		assert.ErrorIs(t, p.Validate(), ErrInvalidField)

		p.Username = "alice;drop"
		assert.ErrorIs(t, p.Validate(), ErrInvalidField)
	})

	t.Run("email shape", func(t *testing.T) {
		p := validParams()
		p.Email = "not-an-email"
		assert.ErrorIs(t, p.Validate(), ErrInvalidField)
	})

	t.Run("role values", func(t *testing.T) {
		p := validParams()
		p.Role = "manager"
		assert.NoError(t, p.Validate())

		p.Role = "admin"
		assert.ErrorIs(t, p.Validate(), ErrInvalidField)

		// empty role is allowed and defaults later
		p.Role = ""
		assert.NoError(t, p.Validate())
	})
}

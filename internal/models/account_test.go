package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountRegisterRequest_Credentials(t *testing.T) {
	name, empty := "bob", ""

	u, p := AccountRegisterRequest{Username: &name, Password: &empty}.Credentials()
	assert.Equal(t, "bob", u)
	assert.Equal(t, "", p)

	u, p = AccountRegisterRequest{}.Credentials()
	assert.Empty(t, u)
	assert.Empty(t, p)
}

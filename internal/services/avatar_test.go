package services

import (
	"testing"

	"technest_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAvatarURL(t *testing.T) {
	uploaded := "https://cdn.test/image/profiles/ind-aaaaaa"
	assert.Equal(t, uploaded, AvatarURL(uploaded, "Alice", models.RoleIndividual))

	got := AvatarURL("", "Alice Smith", models.RoleIndividual)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Alice+Smith&background=0d6efd&color=fff", got)

	got = AvatarURL("", "Acme Ltd", models.RoleCompany)
	assert.Contains(t, got, "name=Acme+Ltd")
	assert.Contains(t, got, "background=0D8ABC")

	got = AvatarURL("", "   ", models.RoleIndividual)
	assert.Contains(t, got, "name=Member")
}

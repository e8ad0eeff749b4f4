package database

import (
	"testing"

	modelspkg "devhub/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesLike(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Like); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Like")
}

package repo

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repositories := New(mockDB)

	assert.NotNil(t, repositories.AccountRepo)
	assert.NotNil(t, repositories.TxnRepo)
}

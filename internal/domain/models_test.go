package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Terminal(t *testing.T) {
	tests := []struct {
		name     string
		status   TxnStatus
		expected bool
	}{
		{name: "Pending", status: StatusPending, expected: false},
		{name: "Success", status: StatusSuccess, expected: true},
		{name: "Failed", status: StatusFailed, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &Transaction{Status: tt.status}
			assert.Equal(t, tt.expected, txn.Terminal())
		})
	}
}

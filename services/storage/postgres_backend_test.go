package storage

import (
	"testing"

	"Magnate/services/ledger"

	"github.com/stretchr/testify/assert"
)

func TestIntSliceRoundTrip(t *testing.T) {
	values := []int{2, 10, 30, 90, 160, 250}
	assert.Equal(t, values, unmarshalInts(marshalInts(values)))

	assert.Nil(t, marshalInts(nil))
	assert.Nil(t, unmarshalInts(nil))
	assert.Nil(t, unmarshalInts([]byte("not json")))
}

func TestBankSentinelMapping(t *testing.T) {
	// The bank is NULL in the database and "BANK" in the domain.
	assert.Nil(t, nullableID(ledger.BankID))
	assert.Nil(t, nullableID(""))

	id := "player-1"
	ptr := nullableID(id)
	assert.NotNil(t, ptr)
	assert.Equal(t, id, *ptr)

	assert.Equal(t, ledger.BankID, idOrBank(nil))
	assert.Equal(t, id, idOrBank(&id))
	assert.Equal(t, "", idOrBankEmpty(nil))
	assert.Equal(t, id, idOrBankEmpty(&id))
}

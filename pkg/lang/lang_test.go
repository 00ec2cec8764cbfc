package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Lookup(t *testing.T) {
	src := map[string]string{KeyAskCancel: "Do you want to cancel?"}
	table := NewTable("en", src)
	src[KeyAskCancel] = "mutated"

	assert.Equal(t, "Do you want to cancel?", table.Lookup(KeyAskCancel))
	assert.Equal(t, "[Missing translation for goodbye]", table.Lookup(KeyGoodbye))
	assert.True(t, table.Has(KeyAskCancel))
	assert.False(t, table.Has(KeyGoodbye))
}

func TestTable_NilIsEmpty(t *testing.T) {
	var table *Table
	assert.Equal(t, Placeholder(KeyHoldHandLeft), table.Lookup(KeyHoldHandLeft))
	assert.Zero(t, table.Len())
	assert.Equal(t, Keys, table.Missing())
}

func TestTable_Missing(t *testing.T) {
	table := NewTable("it", map[string]string{
		KeyHoldHandLeft:  "Prendi la mia mano sinistra",
		KeyHoldHandRight: "Prendi la mia mano destra",
		"extra":          "ignored",
	})
	assert.Equal(t, []string{
		KeyAskCancel,
		KeyGrabHandToContinue,
		KeyDestinationReached,
		KeyNavigationFailed,
		KeyGoodbye,
	}, table.Missing())
	assert.Equal(t, []string{"extra", KeyHoldHandLeft, KeyHoldHandRight}, table.Sorted())
}

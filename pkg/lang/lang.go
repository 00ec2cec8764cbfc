// Package lang holds the localized sentences spoken by the guide.
package lang

import (
	"fmt"
	"maps"
	"slices"
)

// Sentence keys spoken by the guide.
const (
	KeyHoldHandLeft       = "hold_hand_left"
	KeyHoldHandRight      = "hold_hand_right"
	KeyAskCancel          = "ask_cancel"
	KeyGrabHandToContinue = "grab_hand_to_continue"
	KeyDestinationReached = "destination_reached"
	KeyNavigationFailed   = "navigation_failed"
	KeyGoodbye            = "goodbye"
)

// Keys lists every sentence key the guide may speak.
var Keys = []string{
	KeyHoldHandLeft,
	KeyHoldHandRight,
	KeyAskCancel,
	KeyGrabHandToContinue,
	KeyDestinationReached,
	KeyNavigationFailed,
	KeyGoodbye,
}

// Table maps sentence keys to sentences in one language. The zero value is an empty table.
type Table struct {
	Code      string
	sentences map[string]string
}

// NewTable creates a table for the language code.
func NewTable(code string, sentences map[string]string) *Table {
	return &Table{Code: code, sentences: maps.Clone(sentences)}
}

// Lookup returns the sentence for key, or a visible placeholder when the key is missing.
func (t *Table) Lookup(key string) string {
	if t != nil {
		if s, ok := t.sentences[key]; ok {
			return s
		}
	}
	return Placeholder(key)
}

// Has reports whether key has a translation.
func (t *Table) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.sentences[key]
	return ok
}

// Missing returns the guide keys without a translation, in Keys order.
func (t *Table) Missing() []string {
	var missing []string
	for _, k := range Keys {
		if !t.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Len returns the number of translated keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sentences)
}

// Sorted returns the translated keys in lexical order.
func (t *Table) Sorted() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.sentences))
}

// Placeholder is the sentence spoken for an untranslated key.
func Placeholder(key string) string {
	return fmt.Sprintf("[Missing translation for %s]", key)
}

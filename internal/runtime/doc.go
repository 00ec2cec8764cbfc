// Package runtime implements the guidance interaction: the five states of the
// guide, the route walker and the Session that owns them.
package runtime

// Package graph: hierarchical node and edge addresses.
//
// Addresses are ordered sequences of string parts encoded into a single
// string: every part is followed by a NUL separator. Because NUL sorts
// below every permitted byte, plain string comparison of encoded addresses
// realizes part-wise lexicographic order, and part-boundary-safe prefix
// tests reduce to strings.HasPrefix. The empty address (zero parts) is a
// valid address and the universal prefix.

package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// addressSeparator terminates every encoded part.
const addressSeparator = "\x00"

// NodeAddress is the hierarchical key of a node. The zero value is the
// empty address: valid, and a prefix of every node address.
//
// NodeAddress and EdgeAddress are deliberately distinct types; the two key
// spaces never mix, and the compiler enforces it.
type NodeAddress string

// EdgeAddress is the hierarchical key of an edge, encoded exactly like
// NodeAddress but living in its own key space.
type EdgeAddress string

// NewNodeAddress builds a NodeAddress from ordered parts. Parts may be
// empty strings; a part containing NUL yields ErrBadAddressPart.
// Complexity: O(total part length).
func NewNodeAddress(parts ...string) (NodeAddress, error) {
	enc, err := encodeParts(parts)
	if err != nil {
		return "", err
	}

	return NodeAddress(enc), nil
}

// MustNodeAddress is NewNodeAddress that panics on invalid parts.
// Intended for fixtures and package-level declarations.
func MustNodeAddress(parts ...string) NodeAddress {
	a, err := NewNodeAddress(parts...)
	if err != nil {
		panic(err)
	}

	return a
}

// NewEdgeAddress builds an EdgeAddress from ordered parts. Parts may be
// empty strings; a part containing NUL yields ErrBadAddressPart.
// Complexity: O(total part length).
func NewEdgeAddress(parts ...string) (EdgeAddress, error) {
	enc, err := encodeParts(parts)
	if err != nil {
		return "", err
	}

	return EdgeAddress(enc), nil
}

// MustEdgeAddress is NewEdgeAddress that panics on invalid parts.
func MustEdgeAddress(parts ...string) EdgeAddress {
	a, err := NewEdgeAddress(parts...)
	if err != nil {
		panic(err)
	}

	return a
}

// Parts decodes the address back into its ordered parts.
// The returned slice is freshly allocated. Complexity: O(len).
func (a NodeAddress) Parts() []string { return decodeParts(string(a)) }

// Parts decodes the address back into its ordered parts.
// The returned slice is freshly allocated. Complexity: O(len).
func (a EdgeAddress) Parts() []string { return decodeParts(string(a)) }

// HasPrefix reports whether prefix's part sequence is a leading run of a's.
// The empty address prefixes everything. Both values must be
// constructor-built. Complexity: O(len(prefix)).
func (a NodeAddress) HasPrefix(prefix NodeAddress) bool {
	return strings.HasPrefix(string(a), string(prefix))
}

// HasPrefix reports whether prefix's part sequence is a leading run of a's.
// The empty address prefixes everything. Complexity: O(len(prefix)).
func (a EdgeAddress) HasPrefix(prefix EdgeAddress) bool {
	return strings.HasPrefix(string(a), string(prefix))
}

// String renders a display form like node["alpha","beta"] for logs and
// error text. The encoded form, not this, is canonical.
func (a NodeAddress) String() string { return formatAddress("node", string(a)) }

// String renders a display form like edge["alpha","beta"] for logs and
// error text.
func (a EdgeAddress) String() string { return formatAddress("edge", string(a)) }

// valid reports whether the underlying string is a well-formed encoding:
// empty, or terminated by the separator.
func (a NodeAddress) valid() bool { return validEncoding(string(a)) }

func (a EdgeAddress) valid() bool { return validEncoding(string(a)) }

// SortNodeAddresses sorts addrs in place into canonical part-wise order.
// Complexity: O(n log n) comparisons.
func SortNodeAddresses(addrs []NodeAddress) {
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
}

// SortEdgeAddresses sorts addrs in place into canonical part-wise order.
// Complexity: O(n log n) comparisons.
func SortEdgeAddresses(addrs []EdgeAddress) {
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
}

// encodeParts joins parts into the canonical encoding, rejecting parts
// that contain the separator byte.
func encodeParts(parts []string) (string, error) {
	var b strings.Builder
	for i, p := range parts {
		if strings.Contains(p, addressSeparator) {
			return "", fmt.Errorf("%w: part %d", ErrBadAddressPart, i)
		}
		b.WriteString(p)
		b.WriteString(addressSeparator)
	}

	return b.String(), nil
}

// decodeParts splits an encoded address back into parts. The empty
// encoding decodes to zero parts.
func decodeParts(s string) []string {
	if s == "" {
		return []string{}
	}
	// Drop the trailing separator, then split on the rest.
	return strings.Split(strings.TrimSuffix(s, addressSeparator), addressSeparator)
}

// validEncoding accepts the empty address or any separator-terminated run.
func validEncoding(s string) bool {
	return s == "" || strings.HasSuffix(s, addressSeparator)
}

// formatAddress renders kind["p1","p2"] with quoted parts.
func formatAddress(kind, s string) string {
	parts := decodeParts(s)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = strconv.Quote(p)
	}

	return kind + "[" + strings.Join(quoted, ",") + "]"
}

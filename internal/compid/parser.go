// internal/compid/parser.go
package compid

import (
	"fmt"
	"regexp"
	"strconv"
)

const namePattern = `[a-zA-Z0-9_.-]+`

// addressRegex splits a qualified name into alias or plain name, member and
// instance suffix.
var addressRegex = regexp.MustCompile(`^(?:__cp:(` + namePattern + `)\((` + namePattern + `)\)|(` + namePattern + `))(?:#(\d+))?((?:\[\d+\])*)$`)

var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("component name cannot be empty")
	}

	m := addressRegex.FindStringSubmatch(raw)
	if m == nil {
		return Address{}, fmt.Errorf("invalid component name format: %q", raw)
	}

	var addr Address
	if m[1] != "" {
		addr.Name, addr.Copy = m[1], m[2]
	} else {
		addr.Name = m[3]
	}

	if m[4] != "" {
		member, err := strconv.Atoi(m[4])
		if err != nil || member < 1 {
			return Address{}, fmt.Errorf("invalid member index in %q", raw)
		}
		addr.Member = member
	}

	for _, idx := range indexRegex.FindAllStringSubmatch(m[5], -1) {
		n, err := strconv.Atoi(idx[1])
		if err != nil || n < 1 {
			return Address{}, fmt.Errorf("instance indices must be positive integers in %q", raw)
		}
		addr.Instance = append(addr.Instance, n)
	}

	return addr, nil
}

var nameRegex = regexp.MustCompile(`^` + namePattern + `$`)

// ValidName reports whether s can be used as a component name.
func ValidName(s string) bool {
	return nameRegex.MatchString(s)
}

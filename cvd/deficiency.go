package cvd

import (
	"errors"
	"fmt"
	"strings"
)

var _ = fmt.Print

// Deficiency is a simulated dichromatic color vision deficiency.
type Deficiency int

const (
	None Deficiency = iota
	// Protan is red deficiency (protanopia).
	Protan
	// Deutan is green deficiency (deuteranopia).
	Deutan
)

var ErrUnknownDeficiency = errors.New("unknown color vision deficiency")

var DeficiencyNames = map[string]Deficiency{
	"none":         None,
	"normal":       None,
	"protan":       Protan,
	"protanopia":   Protan,
	"red":          Protan,
	"deutan":       Deutan,
	"deuteranopia": Deutan,
	"green":        Deutan,
}

var deficiencyNames = map[Deficiency]string{
	None:   "none",
	Protan: "protan",
	Deutan: "deutan",
}

func (d Deficiency) String() string {
	if n, ok := deficiencyNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Deficiency(%d)", int(d))
}

// ParseDeficiency parses one of the names in DeficiencyNames, ignoring case.
func ParseDeficiency(name string) (Deficiency, error) {
	if d, ok := DeficiencyNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownDeficiency, name)
}

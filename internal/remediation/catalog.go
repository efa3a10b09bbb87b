package remediation

import (
	"fmt"
	"sort"

	"preflight/internal/rules"
)

// Catalog maps fix-function identifiers from rule definitions to routines.
// Built once at startup; Verify lets the boot path fail fast on a rule set
// that names a routine nobody implemented.
type Catalog struct {
	routines map[string]Routine
}

// NewCatalog registers every implemented routine.
func NewCatalog() *Catalog {
	return &Catalog{routines: map[string]Routine{
		"padChessn":          padChessn,
		"fixDateFormat":      fixDateFormat,
		"fixPhoneFormat":     fixPhoneFormat,
		"padPostcode":        padPostcode,
		"fixFullTimeFTE":     fixFullTimeFTE,
		"sanitizeCourseCode": sanitizeCourseCode,
		"sanitizeUnitCode":   sanitizeUnitCode,
		"padAscedCode":       padAscedCode,
	}}
}

// Lookup resolves a fix identifier.
func (c *Catalog) Lookup(name string) (Routine, bool) {
	r, ok := c.routines[name]
	return r, ok
}

// Names lists registered identifiers, sorted for stable output.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.routines))
	for name := range c.routines {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Verify checks that every auto-fixable definition names a registered
// routine. Run at startup so a configuration error surfaces at boot, not at
// the first fix attempt.
func (c *Catalog) Verify(defs []rules.Definition) error {
	for _, def := range defs {
		if !def.AutoFixable {
			continue
		}
		if def.FixFunction == "" {
			return fmt.Errorf("rule %s is auto-fixable but names no fix function", def.Code)
		}
		if _, ok := c.routines[def.FixFunction]; !ok {
			return fmt.Errorf("rule %s names unknown fix function %q", def.Code, def.FixFunction)
		}
	}
	return nil
}

package collada

import (
	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
)

// Param is one profile-specific value inside an extra technique.
type Param struct {
	Name  string
	Value string

	// number is set when the param was added as a float.
	number slot.Slot[float64]
}

// Technique is a profile-specific parameter list.
type Technique struct {
	Profile string
	Params  []Param
}

// Extra collects <extra><technique profile="..."> blocks. Profiles and
// parameters are written in the order they were first added.
type Extra struct {
	techniques []Technique
}

// AddExtraParameter appends a parameter to the technique for profile,
// creating the technique on first use.
func (e *Extra) AddExtraParameter(profile, name, value string) {
	e.addParam(profile, Param{Name: name, Value: value})
}

// AddExtraFloat is AddExtraParameter for a number. Non-finite values fail
// validation.
func (e *Extra) AddExtraFloat(profile, name string, v float64) {
	p := Param{Name: name, Value: streamwriter.FormatFloat(v)}
	p.number.Set(v)
	e.addParam(profile, p)
}

func (e *Extra) addParam(profile string, p Param) {
	for i := range e.techniques {
		if e.techniques[i].Profile == profile {
			e.techniques[i].Params = append(e.techniques[i].Params, p)
			return
		}
	}
	e.techniques = append(e.techniques, Technique{Profile: profile, Params: []Param{p}})
}

// Techniques returns a copy of the extra techniques.
func (e *Extra) Techniques() []Technique {
	out := make([]Technique, len(e.techniques))
	for i, t := range e.techniques {
		out[i] = Technique{Profile: t.Profile, Params: append([]Param(nil), t.Params...)}
	}
	return out
}

// HasExtra reports whether any technique was added.
func (e *Extra) HasExtra() bool {
	return len(e.techniques) > 0
}

func (e *Extra) validate(parent string) error {
	for _, t := range e.techniques {
		if t.Profile == "" {
			return schemaViolation(tagTechnique, attrProfile, "profile is required under <"+parent+">")
		}
		for _, p := range t.Params {
			if !isXMLName(p.Name) {
				return invalidValue(tagTechnique, p.Name, "parameter name is not an XML name")
			}
			if v, ok := p.number.Lookup(); ok && !isFinite(v) {
				return invalidValue(tagTechnique, p.Name, "non-finite "+p.Value)
			}
		}
	}
	return nil
}

func (w *Writer) writeExtra(sw *streamwriter.Writer, e *Extra) error {
	if !e.HasExtra() {
		return nil
	}
	if err := sw.OpenElement(tagExtra); err != nil {
		return err
	}
	for _, t := range e.techniques {
		if err := sw.OpenElement(tagTechnique); err != nil {
			return err
		}
		if err := sw.AppendAttribute(attrProfile, t.Profile); err != nil {
			return err
		}
		for _, p := range t.Params {
			if err := sw.TextElement(p.Name, p.Value); err != nil {
				return err
			}
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}
	return sw.CloseElement()
}

// isXMLName accepts the ASCII subset of XML names used by COLLADA profiles.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || r == '.' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

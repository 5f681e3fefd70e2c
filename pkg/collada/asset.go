package collada

import (
	"fmt"
	"time"

	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
)

// UpAxis names the axis pointing up in the document.
type UpAxis int

const (
	XUp UpAxis = 1
	YUp UpAxis = 2
	ZUp UpAxis = 3
)

// String returns the schema token, e.g. "Y_UP".
func (a UpAxis) String() string {
	switch a {
	case XUp:
		return "X_UP"
	case YUp:
		return "Y_UP"
	case ZUp:
		return "Z_UP"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// ParseUpAxis parses "X_UP", "Y_UP" or "Z_UP".
func ParseUpAxis(s string) (UpAxis, error) {
	switch s {
	case "X_UP":
		return XUp, nil
	case "Y_UP":
		return YUp, nil
	case "Z_UP":
		return ZUp, nil
	}
	return 0, fmt.Errorf("%w: unknown up axis %q", ErrInvalidValue, s)
}

// TimeLayout is the xs:dateTime layout used for <created> and <modified>.
const TimeLayout = time.RFC3339

// Asset is the <asset> element describing the document.
type Asset struct {
	// <contributor>
	author        slot.Slot[string]
	authoringTool slot.Slot[string]
	comments      slot.Slot[string]
	copyright     slot.Slot[string]

	created  slot.Slot[time.Time]
	modified slot.Slot[time.Time]

	keywords slot.Slot[string]
	subject  slot.Slot[string]
	title    slot.Slot[string]

	// <unit meter="..." name="...">
	unitName  slot.Slot[string]
	unitMeter slot.Slot[float64]

	upAxis slot.Slot[UpAxis]
}

// NewAsset returns an asset created and modified at t.
func NewAsset(t time.Time) *Asset {
	a := &Asset{}
	a.created.Set(t)
	a.modified.Set(t)
	return a
}

// SetAuthor sets the contributor author.
func (a *Asset) SetAuthor(s string) { a.author.Set(s) }

// SetAuthoringTool sets the name of the authoring tool.
func (a *Asset) SetAuthoringTool(s string) { a.authoringTool.Set(s) }

// SetComments sets the contributor comments.
func (a *Asset) SetComments(s string) { a.comments.Set(s) }

// SetCopyright sets the copyright notice.
func (a *Asset) SetCopyright(s string) { a.copyright.Set(s) }

// SetCreated sets the creation time.
func (a *Asset) SetCreated(t time.Time) { a.created.Set(t) }

// SetModified sets the last modification time.
func (a *Asset) SetModified(t time.Time) { a.modified.Set(t) }

// SetKeywords sets the keywords.
func (a *Asset) SetKeywords(s string) { a.keywords.Set(s) }

// SetSubject sets the subject.
func (a *Asset) SetSubject(s string) { a.subject.Set(s) }

// SetTitle sets the title.
func (a *Asset) SetTitle(s string) { a.title.Set(s) }

// SetUpAxis sets the up axis.
func (a *Asset) SetUpAxis(axis UpAxis) { a.upAxis.Set(axis) }

// SetUnit sets the unit name and its size in meters.
func (a *Asset) SetUnit(name string, meter float64) {
	a.unitName.Set(name)
	a.unitMeter.Set(meter)
}

// SetUnitName sets the unit name.
func (a *Asset) SetUnitName(name string) { a.unitName.Set(name) }

// SetUnitMeter sets the unit size in meters.
func (a *Asset) SetUnitMeter(meter float64) { a.unitMeter.Set(meter) }

// Getters return the zero value for fields that were never set.

// Author returns the contributor author.
func (a *Asset) Author() string { return a.author.Value() }

// AuthoringTool returns the name of the authoring tool.
func (a *Asset) AuthoringTool() string { return a.authoringTool.Value() }

// Comments returns the contributor comments.
func (a *Asset) Comments() string { return a.comments.Value() }

// Copyright returns the copyright notice.
func (a *Asset) Copyright() string { return a.copyright.Value() }

// Created returns the creation time.
func (a *Asset) Created() time.Time { return a.created.Value() }

// Modified returns the last modification time.
func (a *Asset) Modified() time.Time { return a.modified.Value() }

// Keywords returns the keywords.
func (a *Asset) Keywords() string { return a.keywords.Value() }

// Subject returns the subject.
func (a *Asset) Subject() string { return a.subject.Value() }

// Title returns the title.
func (a *Asset) Title() string { return a.title.Value() }

// UnitName returns the unit name.
func (a *Asset) UnitName() string { return a.unitName.Value() }

// UnitMeter returns the unit size in meters.
func (a *Asset) UnitMeter() float64 { return a.unitMeter.Value() }

// UpAxis returns the up axis.
func (a *Asset) UpAxis() UpAxis { return a.upAxis.Value() }

// Validate reports the first schema or value error of the asset.
func (a *Asset) Validate() error {
	if !a.created.IsSet() {
		return schemaViolation(tagAsset, tagCreated, "required")
	}
	if !a.modified.IsSet() {
		return schemaViolation(tagAsset, tagModified, "required")
	}
	if m, ok := a.unitMeter.Lookup(); ok {
		if !isFinite(m) || m <= 0 {
			return invalidValue(tagUnit, attrMeter, "must be a finite value > 0")
		}
	}
	if axis, ok := a.upAxis.Lookup(); ok {
		if _, err := ParseUpAxis(axis.String()); err != nil {
			return invalidValue(tagAsset, tagUpAxis, axis.String())
		}
	}
	return nil
}

// WriteAsset writes the <asset> element.
func (w *Writer) WriteAsset(sw *streamwriter.Writer, a *Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := sw.OpenElement(tagAsset); err != nil {
		return err
	}

	contributor := []stringField{
		{tagAuthor, a.author},
		{tagAuthoringTool, a.authoringTool},
		{tagComments, a.comments},
		{tagCopyright, a.copyright},
	}
	if anySet(contributor) {
		if err := sw.OpenElement(tagContributor); err != nil {
			return err
		}
		if err := w.writeStringFields(sw, contributor); err != nil {
			return err
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}

	if err := sw.TextElement(tagCreated, a.created.Value().Format(TimeLayout)); err != nil {
		return err
	}
	if err := w.writeStringFields(sw, []stringField{{tagKeywords, a.keywords}}); err != nil {
		return err
	}
	if err := sw.TextElement(tagModified, a.modified.Value().Format(TimeLayout)); err != nil {
		return err
	}
	if err := w.writeStringFields(sw, []stringField{
		{tagSubject, a.subject},
		{tagTitle, a.title},
	}); err != nil {
		return err
	}

	if a.unitMeter.IsSet() || a.unitName.IsSet() {
		if err := sw.OpenElement(tagUnit); err != nil {
			return err
		}
		if m, ok := a.unitMeter.Lookup(); ok {
			if err := sw.AppendAttribute(attrMeter, streamwriter.FormatFloat(m)); err != nil {
				return err
			}
		}
		if name, ok := a.unitName.Lookup(); ok {
			if err := sw.AppendAttribute(attrName, name); err != nil {
				return err
			}
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}

	if axis, ok := a.upAxis.Lookup(); ok {
		if err := sw.TextElement(tagUpAxis, axis.String()); err != nil {
			return err
		}
	}
	return sw.CloseElement()
}

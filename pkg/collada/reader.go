package collada

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Read parses the elements this package writes from r. Elements it does not
// model are skipped. Only elements present in the input are set on the
// returned records.
func Read(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var x xmlDocument
	if err := decoder.Decode(&x); err != nil {
		return nil, fmt.Errorf("decoding COLLADA: %w", err)
	}
	return x.document()
}

// ReadFile parses a COLLADA file from disk.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading COLLADA file: %w", err)
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

type xmlDocument struct {
	XMLName      xml.Name         `xml:"COLLADA"`
	Asset        *xmlAsset        `xml:"asset"`
	Cameras      []xmlCamera      `xml:"library_cameras>camera"`
	VisualScenes []xmlVisualScene `xml:"library_visual_scenes>visual_scene"`
	Scene        *struct {
		Instance *struct {
			URL string `xml:"url,attr"`
		} `xml:"instance_visual_scene"`
	} `xml:"scene"`
}

type xmlAsset struct {
	Contributor *struct {
		Author        *string `xml:"author"`
		AuthoringTool *string `xml:"authoring_tool"`
		Comments      *string `xml:"comments"`
		Copyright     *string `xml:"copyright"`
	} `xml:"contributor"`
	Created  *string `xml:"created"`
	Keywords *string `xml:"keywords"`
	Modified *string `xml:"modified"`
	Subject  *string `xml:"subject"`
	Title    *string `xml:"title"`
	Unit     *struct {
		Meter *string `xml:"meter,attr"`
		Name  *string `xml:"name,attr"`
	} `xml:"unit"`
	UpAxis *string `xml:"up_axis"`
}

type xmlCamera struct {
	ID     string  `xml:"id,attr"`
	Name   *string `xml:"name,attr"`
	Optics struct {
		Perspective  *xmlOptic  `xml:"technique_common>perspective"`
		Orthographic *xmlOptic  `xml:"technique_common>orthographic"`
		Extras       []xmlExtra `xml:"extra"`
	} `xml:"optics"`
}

type xmlOptic struct {
	XFov        *string `xml:"xfov"`
	YFov        *string `xml:"yfov"`
	XMag        *string `xml:"xmag"`
	YMag        *string `xml:"ymag"`
	AspectRatio *string `xml:"aspect_ratio"`
	ZNear       *string `xml:"znear"`
	ZFar        *string `xml:"zfar"`
}

type xmlExtra struct {
	Techniques []struct {
		Profile string `xml:"profile,attr"`
		Params  []struct {
			XMLName xml.Name
			Value   string `xml:",chardata"`
		} `xml:",any"`
	} `xml:"technique"`
}

type xmlVisualScene struct {
	ID    *string   `xml:"id,attr"`
	Name  *string   `xml:"name,attr"`
	Nodes []xmlNode `xml:"node"`
}

// xmlNode keeps transformations in document order, which struct decoding
// of separate element lists would lose.
type xmlNode struct {
	ID, Name, SID *string
	Transforms    []xmlTransform
	Cameras       []string
	Children      []xmlNode
}

type xmlTransform struct {
	Kind TransformKind
	SID  *string
	Text string
}

func (n *xmlNode) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		v := a.Value
		switch a.Name.Local {
		case attrID:
			n.ID = &v
		case attrName:
			n.Name = &v
		case attrSID:
			n.SID = &v
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if kind, ok := transformKindByTag(t.Name.Local); ok {
				var x struct {
					SID  *string `xml:"sid,attr"`
					Text string  `xml:",chardata"`
				}
				if err := d.DecodeElement(&x, &t); err != nil {
					return err
				}
				n.Transforms = append(n.Transforms, xmlTransform{Kind: kind, SID: x.SID, Text: x.Text})
				continue
			}
			switch t.Name.Local {
			case tagInstanceCamera:
				for _, a := range t.Attr {
					if a.Name.Local == attrURL {
						n.Cameras = append(n.Cameras, a.Value)
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
			case tagNode:
				var child xmlNode
				if err := d.DecodeElement(&child, &t); err != nil {
					return err
				}
				n.Children = append(n.Children, child)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func transformKindByTag(tag string) (TransformKind, bool) {
	for k, info := range transformKinds {
		if info.tag == tag {
			return k, true
		}
	}
	return 0, false
}

func (x *xmlDocument) document() (*Document, error) {
	doc := &Document{}

	if x.Asset != nil {
		asset, err := x.Asset.asset()
		if err != nil {
			return nil, err
		}
		doc.Asset = asset
	}

	for _, xc := range x.Cameras {
		c, err := xc.camera()
		if err != nil {
			return nil, fmt.Errorf("camera %q: %w", xc.ID, err)
		}
		doc.AddCamera(c)
	}

	for _, xvs := range x.VisualScenes {
		vs := &VisualScene{}
		setString(&vs.id, xvs.ID)
		setString(&vs.name, xvs.Name)
		for _, xn := range xvs.Nodes {
			n, err := xn.node()
			if err != nil {
				return nil, fmt.Errorf("visual scene %q: %w", vs.ID(), err)
			}
			vs.AddNode(n)
		}
		doc.AddVisualScene(vs)
	}

	if x.Scene != nil && x.Scene.Instance != nil {
		doc.Scene.Set(x.Scene.Instance.URL)
	}
	return doc, nil
}

func (x *xmlAsset) asset() (*Asset, error) {
	a := &Asset{}
	if c := x.Contributor; c != nil {
		setString(&a.author, c.Author)
		setString(&a.authoringTool, c.AuthoringTool)
		setString(&a.comments, c.Comments)
		setString(&a.copyright, c.Copyright)
	}
	if x.Created != nil {
		t, err := parseTime(tagCreated, *x.Created)
		if err != nil {
			return nil, err
		}
		a.SetCreated(t)
	}
	if x.Modified != nil {
		t, err := parseTime(tagModified, *x.Modified)
		if err != nil {
			return nil, err
		}
		a.SetModified(t)
	}
	setString(&a.keywords, x.Keywords)
	setString(&a.subject, x.Subject)
	setString(&a.title, x.Title)
	if u := x.Unit; u != nil {
		if u.Meter != nil {
			m, err := parseFloat(tagUnit, attrMeter, *u.Meter)
			if err != nil {
				return nil, err
			}
			a.SetUnitMeter(m)
		}
		setString(&a.unitName, u.Name)
	}
	if x.UpAxis != nil {
		axis, err := ParseUpAxis(strings.TrimSpace(*x.UpAxis))
		if err != nil {
			return nil, err
		}
		a.SetUpAxis(axis)
	}
	return a, nil
}

func (x *xmlCamera) camera() (*Camera, error) {
	var optic *Optic
	var xo *xmlOptic
	switch {
	case x.Optics.Perspective != nil:
		optic, xo = NewPerspectiveOptic(), x.Optics.Perspective
	case x.Optics.Orthographic != nil:
		optic, xo = NewOrthographicOptic(), x.Optics.Orthographic
	default:
		return nil, schemaViolation(tagCamera, tagTechniqueCommon, "no perspective or orthographic optic")
	}

	element := optic.Kind().String()
	for _, f := range []struct {
		tag string
		raw *string
		set func(float64)
	}{
		{tagXFov, xo.XFov, optic.SetXFov},
		{tagYFov, xo.YFov, optic.SetYFov},
		{tagXMag, xo.XMag, optic.SetXMag},
		{tagYMag, xo.YMag, optic.SetYMag},
		{tagAspectRatio, xo.AspectRatio, optic.SetAspectRatio},
		{tagZNear, xo.ZNear, optic.SetZNear},
		{tagZFar, xo.ZFar, optic.SetZFar},
	} {
		if f.raw == nil {
			continue
		}
		v, err := parseFloat(element, f.tag, *f.raw)
		if err != nil {
			return nil, err
		}
		f.set(v)
	}

	for _, extra := range x.Optics.Extras {
		for _, t := range extra.Techniques {
			for _, p := range t.Params {
				optic.AddExtraParameter(t.Profile, p.XMLName.Local, p.Value)
			}
		}
	}

	c := NewCamera(x.ID, optic)
	if x.Name != nil {
		c.SetName(*x.Name)
	}
	return c, nil
}

func (x *xmlNode) node() (*Node, error) {
	n := NewNode()
	setString(&n.id, x.ID)
	setString(&n.name, x.Name)
	setString(&n.sid, x.SID)

	for _, xt := range x.Transforms {
		values, err := parseFloats(xt.Kind.String(), xt.Text)
		if err != nil {
			return nil, err
		}
		t, err := newTransformation(xt.Kind, values)
		if err != nil {
			return nil, err
		}
		if xt.SID != nil {
			t.SetSID(*xt.SID)
		}
		n.AddTransformation(t)
	}
	for _, url := range x.Cameras {
		n.InstanceCamera(url)
	}
	for _, xc := range x.Children {
		child, err := xc.node()
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func setString(s interface{ Set(string) }, v *string) {
	if v != nil {
		s.Set(*v)
	}
}

func parseFloat(element, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(v) {
		return 0, invalidValue(element, field, fmt.Sprintf("malformed number %q", s))
	}
	return v, nil
}

func parseFloats(element, s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(element, "", f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidValue(tagAsset, field, fmt.Sprintf("malformed date %q", s))
	}
	return t, nil
}

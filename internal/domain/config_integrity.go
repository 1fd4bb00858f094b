package domain

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const (
	rootElement    = "Config"
	settingElement = "Setting"
	childIndent    = "\n  "
)

// ConfigIntegrityChecker validates the structure of a configuration document.
type ConfigIntegrityChecker interface {
	// Validate returns nil when data is a well-formed configuration document.
	Validate(data []byte) error
}

// configDocument is the on-disk shape of the configuration:
//
//	<Config>
//	  <Setting><Name>outputFileExt</Name><Value>.csv</Value></Setting>
//	</Config>
//
// Comments and unrecognized elements are kept in document order so a save
// writes them back where they were.
type configDocument struct {
	Attrs    []xml.Attr
	Settings []settingNode `validate:"dive"`
	leading  []xml.Comment
	children []docNode
}

// docNode is one child of the root element.
type docNode struct {
	setting int // index into Settings, -1 otherwise
	raw     *rawNode
	comment xml.Comment
}

type settingNode struct {
	Names  []string  `xml:"Name" validate:"len=1,dive,required"`
	Values []string  `xml:"Value" validate:"max=1"`
	Extra  []rawNode `xml:",any"`
}

// rawNode keeps unrecognized elements so they survive a save.
type rawNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

func (d *configDocument) appendSetting(node settingNode) {
	d.children = append(d.children, docNode{setting: len(d.Settings)})
	d.Settings = append(d.Settings, node)
}

// UnmarshalXML implements xml.Unmarshaler for the children of the root.
func (d *configDocument) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	d.Attrs = start.Attr

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == settingElement {
				var node settingNode
				if err := dec.DecodeElement(&node, &t); err != nil {
					return err
				}

				d.appendSetting(node)

				continue
			}

			raw := &rawNode{}
			if err := dec.DecodeElement(raw, &t); err != nil {
				return err
			}

			d.children = append(d.children, docNode{setting: -1, raw: raw})
		case xml.Comment:
			d.children = append(d.children, docNode{setting: -1, comment: t.Copy()})
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements xml.Marshaler, writing children in document order.
func (d configDocument) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: rootElement}, Attr: d.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	for _, child := range d.children {
		if err := enc.EncodeToken(xml.CharData(childIndent)); err != nil {
			return err
		}

		var err error

		switch {
		case child.setting >= 0:
			err = enc.EncodeElement(d.Settings[child.setting], xml.StartElement{Name: xml.Name{Local: settingElement}})
		case child.raw != nil:
			err = enc.Encode(child.raw)
		default:
			err = enc.EncodeToken(child.comment)
		}

		if err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(xml.CharData("\n")); err != nil {
		return err
	}

	return enc.EncodeToken(start.End())
}

func (s settingNode) name() string {
	if len(s.Names) == 0 {
		return ""
	}

	return strings.TrimSpace(s.Names[0])
}

func (s settingNode) value() string {
	if len(s.Values) == 0 {
		return ""
	}

	return strings.TrimSpace(s.Values[0])
}

type schemaChecker struct{}

// NewConfigIntegrityChecker returns the checker enforcing the document schema:
// a Config root, Setting entries with exactly one non-empty Name and at most
// one Value, and no recognized setting defined twice.
func NewConfigIntegrityChecker() ConfigIntegrityChecker {
	return schemaChecker{}
}

func (schemaChecker) Validate(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}

	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	seen := make(map[string]bool, len(RecognizedSettings))

	for _, setting := range doc.Settings {
		name := setting.name()
		if name == "" {
			return errors.New("schema: setting with blank name")
		}

		if !isRecognizedSetting(name) {
			continue
		}

		if seen[name] {
			return fmt.Errorf("schema: setting %q defined more than once", name)
		}

		seen[name] = true
	}

	return nil
}

func decodeDocument(data []byte) (configDocument, error) {
	var doc configDocument

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, errors.New("empty document")
	}

	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err != nil {
			return doc, fmt.Errorf("parse: %w", err)
		}

		switch t := tok.(type) {
		case xml.Comment:
			doc.leading = append(doc.leading, t.Copy())
		case xml.StartElement:
			if t.Name.Local != rootElement {
				return doc, fmt.Errorf("parse: expected <%s> root, found <%s>", rootElement, t.Name.Local)
			}

			if err := dec.DecodeElement(&doc, &t); err != nil {
				return doc, fmt.Errorf("parse: %w", err)
			}

			return doc, nil
		}
	}
}

func encodeDocument(doc configDocument) ([]byte, error) {
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	for _, comment := range doc.leading {
		buf.WriteString("<!--")
		buf.Write(comment)
		buf.WriteString("-->\n")
	}

	buf.Write(body)
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

func newSettingNode(name, value string) settingNode {
	return settingNode{Names: []string{name}, Values: []string{value}}
}

func defaultDocument() configDocument {
	doc := configDocument{}
	for _, name := range RecognizedSettings {
		doc.appendSetting(newSettingNode(name, defaultSettingValue(name)))
	}

	return doc
}

package vkxml

import (
	"encoding/xml"
	"strings"
)

type registryXML struct {
	XMLName    xml.Name       `xml:"registry"`
	Platforms  []platformXML  `xml:"platforms>platform"`
	Tags       []tagXML       `xml:"tags>tag"`
	Types      []typeXML      `xml:"types>type"`
	Enums      []enumsXML     `xml:"enums"`
	Commands   []commandXML   `xml:"commands>command"`
	Features   []featureXML   `xml:"feature"`
	Extensions []extensionXML `xml:"extensions>extension"`
}

type platformXML struct {
	Name    string `xml:"name,attr"`
	Protect string `xml:"protect,attr"`
	Comment string `xml:"comment,attr"`
}

type tagXML struct {
	Name   string `xml:"name,attr"`
	Author string `xml:"author,attr"`
}

type typeXML struct {
	Category     string `xml:"category,attr"`
	NameAttr     string `xml:"name,attr"`
	Alias        string `xml:"alias,attr"`
	Parent       string `xml:"parent,attr"`
	ObjTypeEnum  string `xml:"objtypeenum,attr"`
	Requires     string `xml:"requires,attr"`
	ReturnedOnly string `xml:"returnedonly,attr"`
	StructExtend string `xml:"structextends,attr"`
	API          string `xml:"api,attr"`

	Name    string    `xml:"name"`
	Type    string    `xml:"type"`
	Text    string    `xml:",chardata"`
	Members []declXML `xml:"member"`
}

// TypeName prefers the name attribute and falls back to the <name> child.
func (t *typeXML) TypeName() string {
	if t.NameAttr != "" {
		return t.NameAttr
	}
	return t.Name
}

type enumsXML struct {
	Name   string    `xml:"name,attr"`
	Type   string    `xml:"type,attr"`
	Values []enumXML `xml:"enum"`
}

type enumXML struct {
	Name      string `xml:"name,attr"`
	Value     string `xml:"value,attr"`
	BitPos    string `xml:"bitpos,attr"`
	Alias     string `xml:"alias,attr"`
	Extends   string `xml:"extends,attr"`
	Offset    string `xml:"offset,attr"`
	ExtNumber string `xml:"extnumber,attr"`
	Dir       string `xml:"dir,attr"`
	API       string `xml:"api,attr"`
}

type commandXML struct {
	NameAttr     string    `xml:"name,attr"`
	Alias        string    `xml:"alias,attr"`
	SuccessCodes string    `xml:"successcodes,attr"`
	ErrorCodes   string    `xml:"errorcodes,attr"`
	API          string    `xml:"api,attr"`
	Proto        declXML   `xml:"proto"`
	Params       []declXML `xml:"param"`
}

type requireXML struct {
	API      string    `xml:"api,attr"`
	Types    []nameXML `xml:"type"`
	Commands []nameXML `xml:"command"`
	Enums    []enumXML `xml:"enum"`
}

type nameXML struct {
	Name string `xml:"name,attr"`
}

type featureXML struct {
	API      string       `xml:"api,attr"`
	Name     string       `xml:"name,attr"`
	Number   string       `xml:"number,attr"`
	Requires []requireXML `xml:"require"`
}

type extensionXML struct {
	Name       string       `xml:"name,attr"`
	Number     int          `xml:"number,attr"`
	Type       string       `xml:"type,attr"`
	Author     string       `xml:"author,attr"`
	Supported  string       `xml:"supported,attr"`
	Platform   string       `xml:"platform,attr"`
	Requires   string       `xml:"requires,attr"`
	Depends    string       `xml:"depends,attr"`
	PromotedTo string       `xml:"promotedto,attr"`
	Blocks     []requireXML `xml:"require"`
}

// declXML is a <param>, <member> or <proto>. Their content is mixed:
// "const <type>VkFoo</type>* <name>pFoo</name>[<enum>N</enum>]".
type declXML struct {
	Prefix    string
	Type      string
	Suffix    string
	Name      string
	ArraySize string

	Len      string
	AltLen   string
	Optional string
	Values   string
	API      string
}

func (d *declXML) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "len":
			d.Len = a.Value
		case "altlen":
			d.AltLen = a.Value
		case "optional":
			d.Optional = a.Value
		case "values":
			d.Values = a.Value
		case "api":
			d.API = a.Value
		}
	}

	const (
		beforeType = iota
		afterType
		afterName
	)
	state := beforeType
	var prefix, suffix, tail strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			var text string
			if err := dec.DecodeElement(&text, &tok); err != nil {
				return err
			}
			switch tok.Name.Local {
			case "type":
				d.Type = text
				state = afterType
			case "name":
				d.Name = text
				state = afterName
			case "enum":
				tail.WriteString(text)
			}
			// <comment> is dropped
		case xml.CharData:
			switch state {
			case beforeType:
				prefix.Write(tok)
			case afterType:
				suffix.Write(tok)
			case afterName:
				tail.Write(tok)
			}
		case xml.EndElement:
			d.Prefix = normalizeSpace(prefix.String())
			d.Suffix = normalizeSpace(suffix.String())
			d.ArraySize = arrayBound(tail.String())
			return nil
		}
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arrayBound extracts N from "[N]" and the first bound of "[N][M]".
func arrayBound(s string) string {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return ""
	}
	end := strings.IndexByte(s[open:], ']')
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(s[open+1 : open+end])
}

// forVulkan reports whether an api attribute includes the vulkan API.
// Elements without the attribute apply to every API.
func forVulkan(api string) bool {
	if api == "" {
		return true
	}
	return inList(api, "vulkan")
}

func inList(list, item string) bool {
	for _, v := range strings.Split(list, ",") {
		if strings.TrimSpace(v) == item {
			return true
		}
	}
	return false
}

func splitList(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

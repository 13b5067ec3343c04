// Package vkxml loads an API registry document into a registry.Registry.
//
// Malformed or unknown elements are logged and skipped; only an unreadable
// document or a broken handle hierarchy fails the load.
package vkxml

import (
	"encoding/xml"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/param"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// extension enumerant values are 1e9 + (number-1)*1000 + offset
const extEnumBase = 1000000000

var headerVersionRE = regexp.MustCompile(`(\d+)\s*$`)

// Load reads the registry document at path.
func Load(path string) (*registry.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open registry %s", path)
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load registry %s", path)
	}
	return r, nil
}

// Parse reads a registry document and links it.
func Parse(rd io.Reader) (*registry.Registry, error) {
	var doc registryXML
	if err := xml.NewDecoder(rd).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode registry xml")
	}

	l := &loader{
		reg:   registry.New(),
		log:   logger.ComponentLogger("vkxml"),
		enums: make(map[string]*enumsXML, len(doc.Enums)),
	}
	for i := range doc.Enums {
		l.enums[doc.Enums[i].Name] = &doc.Enums[i]
	}

	l.platforms(doc.Platforms)
	l.tags(doc.Tags)
	l.types(doc.Types)
	l.commands(doc.Commands)
	l.features(doc.Features)
	l.extensions(doc.Extensions)

	if err := l.reg.Link(); err != nil {
		return nil, err
	}
	l.log.Infow("registry loaded",
		"header_version", l.reg.HeaderVersion,
		"handles", len(l.reg.Handles()),
		"commands", len(l.reg.Commands()),
		"structs", len(l.reg.Structs()),
		"enums", len(l.reg.Enums()),
		"extensions", len(l.reg.Extensions()),
		logger.FieldCount, l.skipped)
	return l.reg, nil
}

type loader struct {
	reg     *registry.Registry
	log     *zap.SugaredLogger
	enums   map[string]*enumsXML
	skipped int
}

func (l *loader) skip(err error, keysAndValues ...interface{}) {
	l.skipped++
	l.log.Warnw("skipping element", append(keysAndValues, logger.FieldError, err.Error())...)
}

func (l *loader) platforms(in []platformXML) {
	for _, p := range in {
		err := l.reg.AddPlatform(&registry.Platform{Name: p.Name, Protect: p.Protect, Comment: p.Comment})
		if err != nil {
			l.skip(err, logger.FieldPlatform, p.Name)
		}
	}
}

func (l *loader) tags(in []tagXML) {
	for _, t := range in {
		l.reg.AddTag(t.Name)
	}
}

func (l *loader) types(in []typeXML) {
	var aliases []typeXML
	for _, t := range in {
		if !forVulkan(t.API) {
			continue
		}
		if t.Alias != "" {
			aliases = append(aliases, t)
			continue
		}
		name := t.TypeName()
		var err error
		switch t.Category {
		case "define":
			if name == "VK_HEADER_VERSION" {
				if m := headerVersionRE.FindStringSubmatch(strings.TrimSpace(t.Text)); m != nil {
					l.reg.HeaderVersion = m[1]
				}
			}
		case "basetype", "bitmask":
			err = l.reg.AddBaseType(name, t.Type)
		case "handle":
			parent := ""
			if ps := splitList(t.Parent); len(ps) > 0 {
				parent = ps[0]
			}
			err = l.reg.AddHandle(&registry.Handle{
				Name:         name,
				Parent:       parent,
				ObjectType:   t.ObjTypeEnum,
				Dispatchable: t.Type == "VK_DEFINE_HANDLE",
			})
		case "enum":
			err = l.reg.AddEnum(l.enum(name))
		case "struct", "union":
			err = l.reg.AddStruct(l.structure(t))
		}
		if err != nil {
			l.skip(err, logger.FieldType, name, logger.FieldCategory, t.Category)
		}
	}

	for _, t := range aliases {
		l.typeAlias(t)
	}
}

func (l *loader) typeAlias(t typeXML) {
	switch {
	case l.reg.IsHandle(t.Alias):
		h, _ := l.reg.LookupHandle(t.Alias)
		h.Alias = t.NameAttr
	case l.reg.IsStruct(t.Alias):
		s, _ := l.reg.Struct(t.Alias)
		s.Aliases = append(s.Aliases, t.NameAttr)
	default:
		if e, err := l.reg.Enum(t.Alias); err == nil {
			e.Aliases = append(e.Aliases, t.NameAttr)
			return
		}
		l.log.Debugw("alias of untracked type", logger.FieldType, t.NameAttr, "alias", t.Alias)
	}
}

func (l *loader) enum(name string) *registry.Enum {
	e := &registry.Enum{Name: name}
	block, ok := l.enums[name]
	if !ok {
		// empty FlagBits types have no <enums> block
		return e
	}
	e.Bitmask = block.Type == "bitmask"
	for _, v := range block.Values {
		if !forVulkan(v.API) {
			continue
		}
		e.Values = append(e.Values, &registry.EnumValue{
			Name:  v.Name,
			Value: enumValue(v, 0),
			Alias: v.Alias,
		})
	}
	return e
}

func (l *loader) structure(t typeXML) *registry.Struct {
	s := &registry.Struct{
		Name:         t.TypeName(),
		Union:        t.Category == "union",
		ReturnedOnly: t.ReturnedOnly == "true",
		Extends:      splitList(t.StructExtend),
	}
	for i := range t.Members {
		m := &t.Members[i]
		if !forVulkan(m.API) {
			continue
		}
		if m.Name == "sType" && m.Values != "" {
			s.StructTypeValue = m.Values
		}
		s.Members = append(s.Members, newParam(m))
	}
	return s
}

func newParam(d *declXML) *param.Param {
	p := param.New(param.Type{Prefix: d.Prefix, Name: d.Type, Suffix: d.Suffix}, d.Name)
	p.Len = d.Len
	if strings.HasPrefix(p.Len, "latexmath") {
		p.Len = d.AltLen
	}
	p.ArraySize = d.ArraySize
	p.Optional = strings.HasPrefix(d.Optional, "true")
	return p
}

func (l *loader) commands(in []commandXML) {
	for _, c := range in {
		if !forVulkan(c.API) {
			continue
		}
		var cmd *registry.Command
		if c.Alias != "" {
			cmd = registry.NewCommand(c.NameAttr, "", nil)
			cmd.Alias = c.Alias
		} else {
			var params []*param.Param
			for i := range c.Params {
				if forVulkan(c.Params[i].API) {
					params = append(params, newParam(&c.Params[i]))
				}
			}
			cmd = registry.NewCommand(c.Proto.Name, c.Proto.Type, params)
			cmd.SuccessCodes = splitList(c.SuccessCodes)
			cmd.ErrorCodes = splitList(c.ErrorCodes)
		}
		if cmd.Name == "" {
			l.skip(errors.NewStructuralError("command without a name"))
			continue
		}
		if err := l.reg.AddCommand(cmd); err != nil {
			l.skip(err, logger.FieldCommand, cmd.Name)
		}
	}
}

func (l *loader) features(in []featureXML) {
	for _, f := range in {
		if !forVulkan(f.API) {
			continue
		}
		feat := &registry.Feature{Name: f.Name, API: f.API}
		v, err := semver.NewVersion(f.Number)
		if err != nil {
			l.skip(errors.Wrapf(err, "feature %s number %q", f.Name, f.Number), logger.FieldFeature, f.Name)
			continue
		}
		feat.Number = v
		for _, req := range f.Requires {
			if !forVulkan(req.API) {
				continue
			}
			l.require(req, 0, func(name string) error { return l.reg.RequireFeature(feat, name) })
		}
		l.reg.AddFeature(feat)
	}
}

func (l *loader) extensions(in []extensionXML) {
	for _, x := range in {
		ext := &registry.Extension{
			Name:      x.Name,
			Number:    x.Number,
			Type:      x.Type,
			Author:    x.Author,
			Platform:  x.Platform,
			Supported: inList(x.Supported, "vulkan"),
			Requires:  splitList(x.Requires),
			Promoted:  x.PromotedTo,
		}
		if len(ext.Requires) == 0 && x.Depends != "" {
			ext.Requires = dependsList(x.Depends)
		}
		if err := l.reg.AddExtension(ext); err != nil {
			l.skip(err, logger.FieldExtension, x.Name)
			continue
		}
		for _, req := range x.Blocks {
			if !forVulkan(req.API) {
				continue
			}
			l.require(req, x.Number, func(name string) error { return l.reg.Require(ext, name) })
		}
	}
}

// require registers the elements of one <require> block. Enumerants that
// extend an existing enum are added to it first.
func (l *loader) require(req requireXML, extNumber int, add func(name string) error) {
	var names []string
	for _, t := range req.Types {
		names = append(names, t.Name)
	}
	for _, c := range req.Commands {
		names = append(names, c.Name)
	}
	for _, e := range req.Enums {
		if e.Extends == "" || !forVulkan(e.API) {
			continue
		}
		v := &registry.EnumValue{Name: e.Name, Value: enumValue(e, extNumber), Alias: e.Alias}
		if err := l.reg.AddEnumValue(e.Extends, v); err != nil {
			l.skip(err, logger.FieldType, e.Name)
			continue
		}
		names = append(names, e.Name)
	}
	for _, name := range names {
		if err := add(name); err != nil {
			// includes, defines and API constants are not tracked
			l.log.Debugw("required element not tracked", logger.FieldType, name, logger.FieldError, err.Error())
		}
	}
}

func enumValue(e enumXML, extNumber int) string {
	switch {
	case e.Value != "":
		return e.Value
	case e.BitPos != "":
		pos, err := strconv.Atoi(e.BitPos)
		if err != nil {
			return ""
		}
		return strconv.FormatUint(uint64(1)<<uint(pos), 10)
	case e.Offset != "":
		off, err := strconv.Atoi(e.Offset)
		if err != nil {
			return ""
		}
		if e.ExtNumber != "" {
			if n, err := strconv.Atoi(e.ExtNumber); err == nil {
				extNumber = n
			}
		}
		v := extEnumBase + (extNumber-1)*1000 + off
		if e.Dir == "-" {
			v = -v
		}
		return strconv.Itoa(v)
	}
	return ""
}

var dependsTokenRE = regexp.MustCompile(`VK_[A-Za-z0-9_]+`)

// dependsList pulls extension names out of a depends expression such as
// "(VK_KHR_get_physical_device_properties2,VK_VERSION_1_1)+VK_KHR_surface".
func dependsList(expr string) []string {
	var out []string
	for _, tok := range dependsTokenRE.FindAllString(expr, -1) {
		if !strings.HasPrefix(tok, "VK_VERSION_") {
			out = append(out, tok)
		}
	}
	return out
}

package hierarchy

import (
	"fmt"
	"strings"

	errUtils "github.com/fabric-cli/fab/errors"
	log "github.com/fabric-cli/fab/pkg/logger"
)

const (
	separator = "/"
	parentDir = ".."
	curDir    = "."
	homeDir   = "~"
)

// HomeWorkspace is where "~" leads.
const HomeWorkspace = "My workspace." + TypePersonal

// Element is one segment of a hierarchy path.
type Element struct {
	Name string
	// Type is the suffix after the last dot: Workspace, Folder or an item
	// type. OneLake segments have none.
	Type string
	Kind Kind
}

// String renders the element the way it appears in a path.
func (e Element) String() string {
	if e.Type == "" {
		return e.Name
	}
	return e.Name + "." + e.Type
}

// Context is the current position in the hierarchy. The zero value is the
// tenant root.
type Context struct {
	elements []Element
}

// New returns a context at the tenant root.
func New() *Context {
	return &Context{}
}

// Path renders the absolute path of the context.
func (c *Context) Path() string {
	if len(c.elements) == 0 {
		return separator
	}
	parts := make([]string, len(c.elements))
	for i, e := range c.elements {
		parts[i] = e.String()
	}
	return separator + strings.Join(parts, separator)
}

// Elements returns a copy of the path elements, outermost first.
func (c *Context) Elements() []Element {
	out := make([]Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Current returns the innermost element, or a tenant element at the root.
func (c *Context) Current() Element {
	if len(c.elements) == 0 {
		return Element{Kind: KindTenant}
	}
	return c.elements[len(c.elements)-1]
}

// Resolve returns the context path would lead to without moving.
func (c *Context) Resolve(path string) (*Context, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, invalidPath(path, "path is empty")
	}

	var elements []Element
	rest := path
	switch {
	case path == homeDir || strings.HasPrefix(path, homeDir+separator):
		home, err := parseElement(HomeWorkspace, nil)
		if err != nil {
			return nil, err
		}
		elements = []Element{home}
		rest = strings.TrimPrefix(strings.TrimPrefix(path, homeDir), separator)
	case strings.HasPrefix(path, separator):
		rest = strings.TrimLeft(path, separator)
	default:
		elements = c.Elements()
	}

	for _, seg := range strings.Split(rest, separator) {
		switch seg {
		case "", curDir:
			continue
		case parentDir:
			if len(elements) > 0 {
				elements = elements[:len(elements)-1]
			}
			continue
		}

		e, err := parseElement(seg, elements)
		if err != nil {
			return nil, invalidPath(path, err.Error())
		}
		elements = append(elements, e)
	}

	return &Context{elements: elements}, nil
}

// Cd moves the context to path. Absolute paths start at the tenant root,
// ".." goes up one level and "~" is the personal workspace.
func (c *Context) Cd(path string) error {
	next, err := c.Resolve(path)
	if err != nil {
		return err
	}
	log.Debug("Changing context", "from", c.Path(), "to", next.Path())
	c.elements = next.elements
	return nil
}

// parseElement parses seg as a child of the element path parents.
func parseElement(seg string, parents []Element) (Element, error) {
	parentKind := KindTenant
	parentType := ""
	if n := len(parents); n > 0 {
		parentKind = parents[n-1].Kind
		parentType = parents[n-1].Type
	}

	if parentKind == KindOneLake {
		return Element{Name: seg, Kind: KindOneLake}, nil
	}
	if parentKind == KindItem {
		if !oneLakeItemTypes[parentType] {
			return Element{}, fmt.Errorf("%s items have no browsable contents", parentType)
		}
		return Element{Name: seg, Kind: KindOneLake}, nil
	}

	dot := strings.LastIndex(seg, ".")
	if dot <= 0 || dot == len(seg)-1 {
		return Element{}, fmt.Errorf("'%s' must be of the form <name>.<type>", seg)
	}
	name, typ := seg[:dot], seg[dot+1:]

	if parentKind == KindTenant {
		switch {
		case strings.EqualFold(typ, TypeWorkspace):
			return Element{Name: name, Type: TypeWorkspace, Kind: KindWorkspace}, nil
		case strings.EqualFold(typ, TypePersonal):
			return Element{Name: name, Type: TypePersonal, Kind: KindWorkspace}, nil
		default:
			return Element{}, fmt.Errorf("'%s' is not a workspace", seg)
		}
	}

	if strings.EqualFold(typ, TypeFolder) {
		return Element{Name: name, Type: TypeFolder, Kind: KindFolder}, nil
	}
	if it, ok := canonicalItemType(typ); ok {
		return Element{Name: name, Type: it, Kind: KindItem}, nil
	}
	return Element{}, fmt.Errorf("'%s' is not a supported type", typ)
}

func invalidPath(path, reason string) error {
	return errUtils.Build(errUtils.Newf(errUtils.ErrInvalidPath, errUtils.StatusInvalidPath,
		"Invalid path '%s': %s", path, reason)).
		WithHint("Paths look like /<workspace>.Workspace/<folder>.Folder/<item>.<ItemType>").
		Err()
}

package stcx

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

// Namespace is the STC-X 1.30 namespace written by the emitters. The reader
// matches local names only and accepts any namespace.
const Namespace = "http://www.ivoa.net/xml/STC/stc-v1.30.xsd"

// Node is one element of a decoded document.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string
	Line     int
	Column   int
}

// Local returns the element's local name.
func (n *Node) Local() string {
	return n.Name.Local
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child with the given local name, or nil.
func (n *Node) Child(local string) *Node {
	for _, c := range n.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Content returns the element's character data with surrounding
// whitespace removed.
func (n *Node) Content() string {
	return strings.TrimSpace(n.Text)
}

// decode reads a whole document into a tree and returns its root element.
func decode(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, syntaxError(err, decoder)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, col := decoder.InputPos()
			n := &Node{Name: t.Name, Attrs: t.Copy().Attr, Line: line, Column: col}
			if len(stack) == 0 {
				if root != nil {
					return nil, &stcErrors.XMLError{Message: "document has more than one root element", Line: line, Column: col}
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, &stcErrors.XMLError{Message: "document has no root element"}
	}
	return root, nil
}

func syntaxError(err error, decoder *xml.Decoder) error {
	line, col := decoder.InputPos()
	var serr *xml.SyntaxError
	if errors.As(err, &serr) {
		return &stcErrors.XMLError{Message: serr.Msg, Line: serr.Line, Column: col}
	}
	return &stcErrors.XMLError{Message: err.Error(), Line: line, Column: col}
}

// element starts a node for emission.
func element(local string, children ...*Node) *Node {
	return &Node{Name: xml.Name{Local: local}, Children: children}
}

func textElement(local, text string) *Node {
	return &Node{Name: xml.Name{Local: local}, Text: text}
}

func (n *Node) withAttr(local, value string) *Node {
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: local}, Value: value})
	return n
}

func (n *Node) add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// encode writes the node and its descendants as XML tokens.
func (n *Node) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: n.Name, Attr: n.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// render serializes a node tree as an indented document fragment.
func render(root *Node) (string, error) {
	var sb strings.Builder
	enc := xml.NewEncoder(&sb)
	enc.Indent("", "  ")
	if err := root.encode(enc); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

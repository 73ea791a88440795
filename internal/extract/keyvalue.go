package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// GenericKeyValue parses the content as HTML, locates the result container
// and splits each "key: value" line of its text on the first colon. Keys are
// stored verbatim; only exact "Name", "CNIC" and "Address" keys end up in the
// named fields.
type GenericKeyValue struct {
	// Tag is the container element name, e.g. "div".
	Tag string
	// ID is the container's id attribute.
	ID string
}

func (GenericKeyValue) Name() string { return "keyvalue" }

func (g GenericKeyValue) Extract(content string) Fields {
	f := Fields{Values: map[string]string{}}
	root, err := html.Parse(strings.NewReader(content))
	if err != nil || root == nil {
		return f
	}
	container := findElement(root, g.Tag, g.ID)
	if container == nil {
		return f
	}
	var parts []string
	collectStrings(&parts, container)
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		f.Values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return f
}

// findElement returns the first element in document order with the given tag
// name and id.
func findElement(n *html.Node, tag, id string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findElement(c, tag, id); res != nil {
			return res
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// collectStrings appends every text node under n, skipping script and style
// bodies.
func collectStrings(parts *[]string, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "template":
			return
		}
	}
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStrings(parts, c)
	}
}

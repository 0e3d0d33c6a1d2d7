package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/tagbox/internal/model"
	"golang.org/x/net/html"
)

// PathSeparator separates tag names in a TAGS attribute path.
const PathSeparator = "/"

// ParseHTML parses Netscape bookmark HTML into tags and files.
// Folders become the tag hierarchy, links become files carrying the tag of
// their enclosing folder plus every tag path listed in their TAGS attribute.
func ParseHTML(r io.Reader) ([]model.Tag, []model.File, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{}
	p.walk(doc)
	return p.tags, p.files, nil
}

type parser struct {
	tags  []model.Tag
	files []model.File

	folderStack []string // tag IDs of the enclosing folders
	pending     string   // folder tag waiting for its DL
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "h3":
			name := textContent(n)
			if name != "" {
				p.pending = p.child(p.current(), name)
			}
			return

		case "a":
			p.link(n)
			return

		case "dl":
			pushed := false
			if p.pending != "" {
				p.folderStack = append(p.folderStack, p.pending)
				p.pending = ""
				pushed = true
			}

			for c := n.FirstChild; c != nil; c = c.NextSibling {
				p.walk(c)
			}

			if pushed {
				p.folderStack = p.folderStack[:len(p.folderStack)-1]
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) link(n *html.Node) {
	href := attr(n, "href")
	if href == "" {
		return
	}

	file := model.NewFile(model.NewFileParams{
		Path: href,
		Name: textContent(n),
	})
	if addDate := attr(n, "add_date"); addDate != "" {
		if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
			file.AddedAt = time.Unix(ts, 0)
		}
	}

	if folder := p.current(); folder != nil {
		file.AddTag(*folder)
	}
	for _, path := range strings.Split(attr(n, "tags"), ",") {
		if id := p.resolve(path); id != "" {
			file.AddTag(id)
		}
	}

	p.files = append(p.files, file)
}

// current returns the tag ID of the innermost folder, nil at root level.
func (p *parser) current() *string {
	if len(p.folderStack) == 0 {
		return nil
	}
	id := p.folderStack[len(p.folderStack)-1]
	return &id
}

// resolve finds or creates the tag at a root-anchored path like "Travel/Japan".
func (p *parser) resolve(path string) string {
	var parentID *string
	id := ""
	for _, name := range strings.Split(path, PathSeparator) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		childID := p.child(parentID, name)
		id = childID
		parentID = &childID
	}
	return id
}

// child finds or creates the tag named name under parentID.
func (p *parser) child(parentID *string, name string) string {
	for _, t := range p.tags {
		if sameParent(t.ParentID, parentID) && strings.EqualFold(t.Name, name) {
			return t.ID
		}
	}

	tag := model.NewTag(model.NewTagParams{Name: name, ParentID: parentID})
	p.tags = append(p.tags, tag)
	return tag.ID
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

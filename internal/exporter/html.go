package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/tagbox/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/tagbox-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tagbox-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML.
// Tags become nested folders. Each file is listed once, inside the folder of
// its first tag, and carries its remaining tags as paths in a TAGS attribute.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Tags</TITLE>\n")
	b.WriteString("<H1>Tags</H1>\n")
	b.WriteString("<DL><p>\n")

	placed := placement(store)
	writeItems(&b, store, placed, nil, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// placement maps each file to the folder it is written in: its first tag
// reachable from the root level, or "" for the root level itself.
func placement(store *model.Store) map[string]string {
	placed := make(map[string]string, len(store.Files))
	for _, f := range store.Files {
		for _, id := range f.Tags {
			if path := store.TagPath(id); len(path) > 0 && path[0].ParentID == nil {
				placed[f.ID] = id
				break
			}
		}
	}
	return placed
}

func writeItems(b *strings.Builder, store *model.Store, placed map[string]string, parentID *string, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, tag := range store.GetTagsInParent(parentID) {
		fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(tag.Name))
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)

		tagID := tag.ID
		writeItems(b, store, placed, &tagID, indent+1)

		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}

	folder := ""
	if parentID != nil {
		folder = *parentID
	}
	for _, f := range store.Files {
		if placed[f.ID] != folder {
			continue
		}
		writeFile(b, store, f, folder, prefix)
	}
}

func writeFile(b *strings.Builder, store *model.Store, f model.File, folder, prefix string) {
	var paths []string
	for _, id := range f.Tags {
		if id == folder {
			continue
		}
		if path := tagPath(store, id); path != "" {
			paths = append(paths, path)
		}
	}

	tagsAttr := ""
	if len(paths) > 0 {
		tagsAttr = fmt.Sprintf(" TAGS=\"%s\"", html.EscapeString(strings.Join(paths, ",")))
	}

	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
		prefix,
		html.EscapeString(f.Path),
		f.AddedAt.Unix(),
		tagsAttr,
		html.EscapeString(f.Name),
	)
}

// tagPath renders the root-anchored path of a tag, e.g. "Travel/Japan".
func tagPath(store *model.Store, id string) string {
	path := store.TagPath(id)
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = t.Name
	}
	return strings.Join(names, "/")
}

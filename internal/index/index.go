// Package index writes the static HTML listings of an output tree: one at
// the root linking every group, and one per group linking every artifact.
package index

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/agbru/headergen/internal/artifact"
	apperrors "github.com/agbru/headergen/internal/errors"
)

// Link is one entry of a listing.
type Link struct {
	Href string
	Text string
}

// Page is the data rendered into a listing.
type Page struct {
	Title string
	// Parent is the link back to the enclosing listing, if any.
	Parent string
	Links  []Link
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Parent}}
<p><a href="{{.Parent}}">..</a></p>
{{- end}}
<ul>
{{- range .Links}}
<li><a href="{{.Href}}">{{.Text}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

// Build writes root/index.html and root/<group>/index.html for every group.
// Group listings enumerate the quantity artifact filenames of the group in
// index order. Existing listings are overwritten.
func Build(root string, groups []string, quantity int) error {
	rootPage := Page{Title: "Generated headers"}
	for _, g := range groups {
		rootPage.Links = append(rootPage.Links, Link{Href: path.Join(g, artifact.IndexFile), Text: g})
	}
	if err := artifact.EnsureDir(root); err != nil {
		return err
	}
	if err := render(filepath.Join(root, artifact.IndexFile), rootPage); err != nil {
		return err
	}

	names := artifact.Filenames(quantity)
	for _, g := range groups {
		page := Page{
			Title:  fmt.Sprintf("%s (%d files)", g, quantity),
			Parent: "../" + artifact.IndexFile,
			Links:  make([]Link, len(names)),
		}
		for i, n := range names {
			page.Links[i] = Link{Href: n, Text: n}
		}
		dir := artifact.GroupDir(root, g)
		if err := artifact.EnsureDir(dir); err != nil {
			return err
		}
		if err := render(filepath.Join(dir, artifact.IndexFile), page); err != nil {
			return err
		}
	}
	return nil
}

func render(dest string, page Page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("render %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return apperrors.WriteError{Path: dest, Cause: err}
	}
	return nil
}

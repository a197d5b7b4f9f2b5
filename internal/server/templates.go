package server

import (
	"html/template"
)

const browseTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
    <title>{{.Title}}</title>
  </head>
  <body>
    <h3>{{.PathLabel}}</h3>
    <form method="post" action="/folder">
      <input type="text" name="name" placeholder="new folder">
      <button type="submit">Create folder</button>
    </form>
    <form method="post" action="/upload" enctype="multipart/form-data">
      <input type="file" name="file">
      <input type="hidden" name="folder" value="{{.Path}}">
      <button type="submit">Upload</button>
    </form>
    <ul>
      {{range .Entries}}
        {{if .IsDir}}
          <li type="circle">
            <a href="{{.Href}}">{{.Name}}/</a>
            <a href="{{.ArchiveHref}}">[zip]</a>
            <form method="post" action="/delete" style="display:inline">
              <input type="hidden" name="target" value="{{.Target}}">
              <button type="submit">delete</button>
            </form>
          </li>
        {{else}}
          <li>
            <a href="{{.Href}}" filesize="{{.Size}}" filedate="{{.ModifyTime}}">{{.Name}}</a>
            <form method="post" action="/delete" style="display:inline">
              <input type="hidden" name="target" value="{{.Target}}">
              <button type="submit">delete</button>
            </form>
          </li>
        {{end}}
      {{end}}
    </ul>
  </body>
</html>`

type browsePageData struct {
	Title     string
	PathLabel string
	Path      string
	Entries   []entryView
}

type entryView struct {
	Name        string
	IsDir       bool
	Href        string
	ArchiveHref string
	Target      string
	Size        int64
	ModifyTime  int64
}

func newBrowseTemplate() (*template.Template, error) {
	return template.New("browse").Parse(browseTemplate)
}

package render

import (
	"html/template"
	"io"
	"time"

	"interview-stories/internal/domain"
)

var storyPage = template.Must(template.New("story").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<article>
<h1>{{.Title}}</h1>
<p><em>{{.ShortDescription}}</em></p>
<section>{{.Body}}</section>
<footer>Last updated {{.UpdatedAt}}</footer>
</article>
</body>
</html>
`))

type storyView struct {
	Title            string
	ShortDescription string
	Body             template.HTML
	UpdatedAt        string
}

// StoryPage escribe la pagina de detalle de una historia.
func StoryPage(w io.Writer, story domain.Story) error {
	body, err := Markdown(story.Content)
	if err != nil {
		return err
	}
	return storyPage.Execute(w, storyView{
		Title:            story.Title,
		ShortDescription: story.ShortDescription,
		Body:             body,
		UpdatedAt:        story.UpdatedAt.Format(time.RFC1123),
	})
}

package topics

// Renderer formats topic content for display. ext is the topic file
// extension including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// MarkdownFunc adapts a markdown-to-terminal function into a Renderer that
// only touches .md topics
type MarkdownFunc func(content string) string

// Render applies f to markdown topics
func (f MarkdownFunc) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}
	return f(content)
}

package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// attr is a single attribute. String and number values are escaped when
// written; a bool value renders the bare name when true and nothing when
// false.
type attr = templ.KeyValue[string, any]

func at(key string, value any) attr {
	return attr{Key: key, Value: value}
}

// markup buffers a page. Text and attribute values always go through
// templ's escaping; raw is reserved for constant markup.
type markup struct {
	ctx context.Context
	buf bytes.Buffer
}

func component(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx}
		fn(m)
		_, err := w.Write(m.buf.Bytes())
		return err
	})
}

func (m *markup) raw(s string) {
	m.buf.WriteString(s)
}

func (m *markup) text(s string) {
	m.buf.WriteString(templ.EscapeString(s))
}

// open writes a start tag. Void elements need no matching end.
func (m *markup) open(tag string, attrs ...attr) {
	m.buf.WriteString("<" + tag)
	// writes to a bytes.Buffer cannot fail
	_ = templ.RenderAttributes(m.ctx, &m.buf, templ.OrderedAttributes(attrs))
	m.buf.WriteString(">")
}

func (m *markup) end(tag string) {
	m.buf.WriteString("</" + tag + ">")
}

// elem writes tag around escaped text.
func (m *markup) elem(tag, content string, attrs ...attr) {
	m.open(tag, attrs...)
	m.text(content)
	m.end(tag)
}

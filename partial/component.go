package partial

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// Props describes a partial region rendered by Wrap.
type Props struct {
	// Name identifies the region across documents.
	Name string

	// Mode selects how a later response merges into this region.
	Mode Mode

	// Key distinguishes regions sharing a name.
	Key string
}

// Marker returns the marker encoded around the region.
func (p Props) Marker() Marker {
	return Marker{Name: p.Name, Mode: p.Mode, Key: p.Key}
}

// Wrap renders children between the start and end marker comments of the
// region described by p, making it patchable by Apply.
//
//	partial.Wrap(partial.Props{Name: "main"}, page).Render(ctx, w)
//	// <!--frsh-partial:main:0:-->...<!--/frsh-partial:main:0:-->
func Wrap(p Props, children templ.Component) templ.Component {
	start := Encode(p.Marker(), false)
	end := Encode(p.Marker(), true)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeComment(w, start); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		return writeComment(w, end)
	})
}

func writeComment(w io.Writer, text string) error {
	return html.Render(w, &html.Node{Type: html.CommentNode, Data: text})
}

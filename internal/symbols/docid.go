package symbols

import (
	"strings"

	"git.home.luguber.info/inful/moddoc/internal/model"
)

// Canonical doc IDs key structured comments to symbols:
//
//	T:Widgets.Gadget
//	M:Widgets.Gadget.Frob(Core.Container,System.Int32)
//	M:Widgets.Gadget.#ctor
//	P:Widgets.Gadget.Size
//	F:Widgets.Gadget.MaxDepth
//	E:Widgets.Gadget.Changed
//
// Method IDs carry the parameter type list so overloads stay distinct.

// TypeDocID returns the canonical ID for a type symbol.
func TypeDocID(t *Type) string {
	return "T:" + t.FQN
}

// MemberDocID returns the canonical ID for a member of the given type. An
// explicitly set Member.DocID wins over the derived form.
func MemberDocID(t *Type, m *Member) string {
	if m.DocID != "" {
		return m.DocID
	}
	var b strings.Builder
	switch m.Kind {
	case model.KindProperty:
		b.WriteString("P:")
	case model.KindField:
		b.WriteString("F:")
	case model.KindEvent:
		b.WriteString("E:")
	default:
		b.WriteString("M:")
	}
	b.WriteString(t.FQN)
	b.WriteByte('.')
	if m.Kind == model.KindConstructor {
		b.WriteString("#ctor")
	} else {
		b.WriteString(m.Name)
	}
	if m.Kind == model.KindMethod || m.Kind == model.KindConstructor {
		b.WriteByte('(')
		for i, p := range m.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			if p.Type != nil {
				b.WriteString(p.Type.FQN)
			}
		}
		b.WriteByte(')')
	}
	return b.String()
}

package bfvm

import (
	"fmt"
	"strings"
)

// Render returns the eight-symbol text of ops.
func Render(ops ...Op) string {
	var b strings.Builder
	for _, op := range ops {
		op.render(&b)
	}
	return b.String()
}

func (o Op) Render() string {
	var b strings.Builder
	o.render(&b)
	return b.String()
}

func repeat(b *strings.Builder, n int, pos, neg byte) {
	c := pos
	if n < 0 {
		c = neg
		n = -n
	}
	for range n {
		b.WriteByte(c)
	}
}

func renderAdd(b *strings.Builder, n int) {
	repeat(b, n, '+', '-')
}

func renderShift(b *strings.Builder, n int) {
	repeat(b, n, '>', '<')
}

func renderMove(b *strings.Builder, src, dest int) {
	renderShift(b, src)
	b.WriteString("[-")
	renderShift(b, dest-src)
	b.WriteByte('+')
	renderShift(b, src-dest)
	b.WriteByte(']')
	renderShift(b, -src)
}

func renderCopy(b *strings.Builder, src, tmp, dest int) {
	renderShift(b, src)
	b.WriteString("[-")
	renderShift(b, tmp-src)
	b.WriteByte('+')
	renderShift(b, dest-tmp)
	b.WriteByte('+')
	renderShift(b, src-dest)
	b.WriteByte(']')
	renderShift(b, tmp-src)
	renderMove(b, 0, src-tmp)
	renderShift(b, -tmp)
}

func (o Op) render(b *strings.Builder) {
	switch o.Kind {

	case KindAdd:
		renderAdd(b, o.Value)

	case KindShift:
		renderShift(b, o.Value)

	case KindMove:
		renderMove(b, o.Src, o.Dest)

	case KindZero:
		b.WriteString("[-]")

	case KindCopy:
		renderCopy(b, o.Src, o.Tmp, o.Dest)

	case KindLoop:
		b.WriteByte('[')
		for _, op := range o.Body {
			op.render(b)
		}
		b.WriteByte(']')

	case KindIn:
		b.WriteByte(',')

	case KindOut:
		b.WriteByte('.')

	case KindOutN:
		tmp1, tmp2 := o.Tmp, o.Dest
		renderCopy(b, o.Src, tmp1, tmp2)
		renderShift(b, tmp1)
		renderAdd(b, int(o.Char))
		renderShift(b, tmp2-tmp1)
		b.WriteString("[-")
		renderShift(b, tmp1-tmp2)
		b.WriteByte('.')
		renderShift(b, tmp2-tmp1)
		b.WriteByte(']')
		renderShift(b, tmp1-tmp2)
		renderAdd(b, -int(o.Char))
		renderShift(b, -tmp1)

	case KindOutS:
		cur := 0
		for i := 0; i < len(o.Text); i++ {
			c := int(o.Text[i])
			renderAdd(b, c-cur)
			b.WriteByte('.')
			cur = c
		}
		renderAdd(b, -cur)

	case KindAssertZero:

	default:
		panic(fmt.Errorf("bad op kind: %v", o.Kind))
	}
}

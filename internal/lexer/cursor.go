package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"graft/internal/source"
)

// Cursor представляет собой позицию в ресурсе
type Cursor struct {
	Res *source.Resource
	Off uint32
}

// NewCursor creates a new cursor for the provided resource.
func NewCursor(res *source.Resource) Cursor {
	if _, err := safecast.Conv[uint32](len(res.Content)); err != nil {
		panic(fmt.Errorf("resource content overflow: %w", err))
	}
	return Cursor{Res: res, Off: 0}
}

func (c *Cursor) limit() uint32 {
	return uint32(len(c.Res.Content))
}

// EOF проверяет, достигнут ли конец ресурса
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Res.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.Res.Content[c.Off], c.Res.Content[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Res.Content[c.Off]
	c.Off++
	return b
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Resource: c.Res.ID,
		Start:    uint32(m),
		End:      c.Off,
	}
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Res.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

package parser

import (
	"fmt"
	"strings"

	"github.com/mcncl/destoken/internal/errors"
	"github.com/mcncl/destoken/internal/models"
)

// frame is an open container on the parse stack. Exactly one field is set.
type frame struct {
	obj *models.Object
	arr *models.Array
}

func (f frame) value() models.Value {
	if f.obj != nil {
		return f.obj
	}
	return f.arr
}

// builder turns scanner tokens into a value tree using a stack of open
// containers, a text buffer and the key most recently closed by a colon.
type builder struct {
	opts  options
	stack []frame
	root  *models.Object
	buf   strings.Builder

	key    string
	hasKey bool
}

func newBuilder(opts options) *builder {
	return &builder{opts: opts}
}

func (b *builder) apply(tok token) error {
	switch tok.kind {
	case tokenText:
		b.buf.WriteRune(tok.text)
	case tokenObjectStart:
		return b.open(frame{obj: models.NewObject()}, tok.offset)
	case tokenArrayStart:
		return b.open(frame{arr: models.NewArray()}, tok.offset)
	case tokenContainerEnd:
		return b.close(tok)
	case tokenColon:
		b.key = strings.TrimSpace(b.buf.String())
		b.hasKey = true
		b.buf.Reset()
	case tokenSeparator:
		return b.flush(tok.offset)
	}
	return nil
}

func (b *builder) open(f frame, offset int) error {
	if len(b.stack) == 0 {
		if b.root != nil {
			return parseError(errors.ErrMultipleJSON, offset, "second root value")
		}
		if f.obj == nil {
			return parseError(errors.ErrRootNotObject, offset, "root value is an array")
		}
		if !b.opts.legacyTrailing && b.buf.Len() > 0 {
			return parseError(errors.ErrInvalidJSON, offset, fmt.Sprintf("unexpected text %q before root object", b.buf.String()))
		}
		b.root = f.obj
	} else {
		b.attach(f.value())
	}
	b.stack = append(b.stack, f)
	b.clearKey()
	return nil
}

func (b *builder) close(tok token) error {
	if !b.opts.legacyTrailing {
		if err := b.flush(tok.offset); err != nil {
			return err
		}
	}
	if len(b.stack) == 0 {
		return parseError(errors.ErrUnbalanced, tok.offset, fmt.Sprintf("unexpected %q", tok.text))
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// flush binds the buffered literal to the open container, if there is one.
func (b *builder) flush(offset int) error {
	if b.buf.Len() == 0 {
		return nil
	}
	raw := strings.TrimSpace(b.buf.String())
	b.buf.Reset()

	if len(b.stack) == 0 {
		if b.opts.legacyTrailing {
			b.clearKey()
			return nil
		}
		if b.root == nil {
			return parseError(errors.ErrNoRoot, offset, fmt.Sprintf("value %q outside of any object", raw))
		}
		return parseError(errors.ErrMultipleJSON, offset, fmt.Sprintf("value %q after the root object", raw))
	}

	b.attach(Coerce(raw))
	b.clearKey()
	return nil
}

// attach adds v to the container on top of the stack. Inside an object a value
// with no pending key is dropped.
func (b *builder) attach(v models.Value) {
	top := b.stack[len(b.stack)-1]
	if top.arr != nil {
		top.arr.Append(v)
		return
	}
	if b.hasKey {
		top.obj.Set(b.key, v)
	}
}

func (b *builder) clearKey() {
	b.key = ""
	b.hasKey = false
}

// finish validates the end state and hands over the root.
func (b *builder) finish(end int) (*models.Object, error) {
	if !b.opts.legacyTrailing {
		if err := b.flush(end); err != nil {
			return nil, err
		}
	}
	if n := len(b.stack); n > 0 {
		return nil, parseError(errors.ErrUnbalanced, end, fmt.Sprintf("%d container(s) not closed", n))
	}
	if b.root == nil {
		return nil, parseError(errors.ErrNoRoot, end, "no object found")
	}
	return b.root, nil
}

func parseError(sentinel error, offset int, detail string) error {
	return errors.NewParsingError(fmt.Sprintf("%s at offset %d", detail, offset), sentinel)
}

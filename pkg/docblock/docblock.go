// Package docblock parses documentation comments ("docblocks") into a
// positioned syntax tree.
//
// Every "/** ... */" comment in the source becomes a comment node holding
// an optional description and the block tags that follow it. Prose is parsed
// as Markdown; every node carries its position in the original source, with
// columns and offsets counted in UTF-16 code units.
//
//	root, err := docblock.Parse(src)
//	if err != nil {
//		return err
//	}
//	for _, tag := range dast.FindByKind(root, dast.NodeBlockTag) {
//		fmt.Println(tag.Name, tag.Position)
//	}
package docblock

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/internal/logging"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/lexer"
	"github.com/yaklabco/docblock/pkg/location"
)

// File is a source file with its text already loaded.
type File interface {
	Path() string
	Text() string
}

// SourceFile is a File held in memory.
type SourceFile struct {
	Name    string
	Content string
}

// Path implements File.
func (f SourceFile) Path() string {
	return f.Name
}

// Text implements File.
func (f SourceFile) Text() string {
	return f.Content
}

// Parse parses every docblock in source.
func Parse(source string, opts ...Option) (*dast.Node, error) {
	return ParseContext(context.Background(), source, opts...)
}

// ParseFile parses the text of file. Errors are prefixed with its path.
func ParseFile(file File, opts ...Option) (*dast.Node, error) {
	return parseFile(context.Background(), file, opts...)
}

// ParseFileContext is like ParseFile with cancellation.
func ParseFileContext(ctx context.Context, file File, opts ...Option) (*dast.Node, error) {
	return parseFile(ctx, file, opts...)
}

func parseFile(ctx context.Context, file File, opts ...Option) (*dast.Node, error) {
	root, err := parse(ctx, file.Text(), file.Path(), Options{}.Apply(opts...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path(), err)
	}
	return root, nil
}

// ParseContext is like Parse but stops between comments once ctx is done.
func ParseContext(ctx context.Context, source string, opts ...Option) (*dast.Node, error) {
	return parse(ctx, source, "", Options{}.Apply(opts...))
}

func parse(ctx context.Context, source, filename string, opts Options) (root *dast.Node, err error) {
	defer assert.Recover(&err)

	loc := location.NewFrom(source, opts.From)

	tokens := lexer.New(loc, lexer.Options{Multiline: opts.Multiline, From: opts.From}).Tokens()
	opts.Logger.Debug("lexed", logging.FieldTokens, len(tokens), logging.FieldPath, filename)

	p := newParser(ctx, loc, tokens, opts)
	p.filename = filename

	root, err = p.root()
	if err != nil {
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			syntaxErr.Point = loc.ToUTF16(syntaxErr.Point)
		}
		return nil, err
	}

	unwrapParagraphs(root)

	toUTF16(root, loc)

	if err := runTransforms(root, opts.Transforms); err != nil {
		return nil, err
	}

	opts.Logger.Debug("parsed",
		logging.FieldComments, root.ChildCount(),
		logging.FieldTransforms, len(opts.Transforms),
	)

	return root, nil
}

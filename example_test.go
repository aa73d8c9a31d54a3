package arenacodec_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/arenacodec"
	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/ast"
	"github.com/hupe1980/arenacodec/blobstore"
	"github.com/hupe1980/arenacodec/compress"
)

func exampleProgram(a *arena.Arena) ast.Program {
	ref, err := arena.Alloc(a, ast.IdentifierReference{
		Span:        ast.Span{Start: 0, End: 5},
		Name:        "hello",
		ReferenceID: arena.NewCell(ast.ReferenceID(7)),
	})
	if err != nil {
		log.Fatal(err)
	}
	stmt, err := arena.Alloc(a, ast.ExpressionStatement{Span: ast.Span{Start: 0, End: 6}, Expression: ref})
	if err != nil {
		log.Fatal(err)
	}

	body := arena.NewArray[ast.Statement](a)
	if err := body.Push(stmt); err != nil {
		log.Fatal(err)
	}
	return ast.Program{Span: ast.Span{Start: 0, End: 6}, Body: body}
}

// Example_framed saves a program with the incremental codec and decodes it
// into a fresh arena.
func Example_framed() {
	ctx := context.Background()
	store := arenacodec.New(blobstore.NewMemoryStore(), arenacodec.WithCompression(compress.ZSTD))

	src := store.NewArena()
	defer src.Free()
	if err := arenacodec.SaveFramed(ctx, store, "main.bin", ast.ProgramCodec, exampleProgram(src)); err != nil {
		log.Fatal(err)
	}

	dst := store.NewArena()
	defer dst.Free()
	p, err := arenacodec.LoadFramed(ctx, store, "main.bin", dst, ast.ProgramCodec)
	if err != nil {
		log.Fatal(err)
	}

	stmt := p.Body.At(0).(*ast.ExpressionStatement)
	ref := stmt.Expression.(*ast.IdentifierReference)
	fmt.Println(ref.Name, ref.ReferenceID.Get())
	// Output: hello 7
}

// Example_archive opens an archive unit in place and reads it through views.
func Example_archive() {
	ctx := context.Background()
	store := arenacodec.New(blobstore.NewMemoryStore())

	src := store.NewArena()
	defer src.Free()
	if err := arenacodec.SaveArchive(ctx, store, "main.rkyv", ast.ProgramArchiver, exampleProgram(src)); err != nil {
		log.Fatal(err)
	}

	unit, err := arenacodec.OpenArchive(ctx, store, "main.rkyv", ast.ProgramArchiver)
	if err != nil {
		log.Fatal(err)
	}
	defer unit.Close()

	stmt, _ := unit.Root().Body().At(0).ExpressionStatement()
	ref, _ := stmt.Expression().IdentifierReference()
	fmt.Println(ref.Name(), ref.ReferenceID(), unit.ZeroCopy())
	// Output: hello 7 true
}

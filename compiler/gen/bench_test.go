package gen_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/gen/typegraphql"
	"github.com/syssam/crudgen/compiler/load"
)

// chainSchema returns n entities, each related to the next one.
func chainSchema(n int) *load.Schema {
	s := &load.Schema{}
	for i := 0; i < n; i++ {
		e := &load.Entity{
			Name: fmt.Sprintf("Node%d", i),
			Fields: []*load.Field{
				{Name: "id", Type: "Int", ID: true, Default: true},
				{Name: "label", Type: "String", Nullable: true},
				{Name: "createdAt", Type: "DateTime"},
			},
		}
		if i > 0 {
			e.Fields = append(e.Fields, &load.Field{Name: "prev", Type: fmt.Sprintf("Node%d", i-1)})
		}
		if i < n-1 {
			e.Fields = append(e.Fields, &load.Field{Name: "next", Type: fmt.Sprintf("Node%d", i+1), List: true})
		}
		s.Entities = append(s.Entities, e)
	}
	return s
}

func BenchmarkCompile(b *testing.B) {
	graph, err := gen.NewGraph(gen.MustNewConfig(gen.WithTarget(b.TempDir())), chainSchema(20))
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := gen.NewCompiler(graph).WithEmitter(typegraphql.NewEmitter()).Compile()
		require.NoError(b, err)
	}
}

func BenchmarkWrite(b *testing.B) {
	cfg := gen.MustNewConfig(gen.WithTarget(b.TempDir()))
	graph, err := gen.NewGraph(cfg, chainSchema(20))
	require.NoError(b, err)
	tree, err := gen.NewCompiler(graph).WithEmitter(typegraphql.NewEmitter()).Compile()
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, gen.NewWriter(cfg).Write(context.Background(), tree))
	}
}

package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	var order []string
	mark := func(name string) func(huma.Context, func(huma.Context)) {
		return func(ctx huma.Context, next func(huma.Context)) {
			order = append(order, name)
			next(ctx)
		}
	}

	c := NewContainer(mark("common"))
	c.Add(mark("a"), mark("b"))

	first := c.GetAllAndClear()
	assert.Len(t, first, 3)

	second := c.GetAllAndClear()
	assert.Len(t, second, 1)

	first.Handler(func(huma.Context) { order = append(order, "handler") })(nil)
	assert.Equal(t, []string{"common", "a", "b", "handler"}, order)
}

package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container копит мидлвари для очередной операции
type Container struct {
	common huma.Middlewares
	items  huma.Middlewares
}

// NewContainer создает контейнер; common добавляются в начало каждого набора
func NewContainer(common ...func(huma.Context, func(huma.Context))) *Container {
	return &Container{common: common}
}

// Add добавляет мидлвари в текущий набор
func (mc *Container) Add(mw ...func(ctx huma.Context, next func(huma.Context))) *Container {
	mc.items = append(mc.items, mw...)
	return mc
}

// GetAllAndClear возвращает общие и накопленные мидлвари и очищает набор
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := make(huma.Middlewares, 0, len(mc.common)+len(mc.items))
	result = append(result, mc.common...)
	result = append(result, mc.items...)
	mc.items = nil
	return result
}

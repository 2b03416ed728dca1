package main

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/groundclear/common"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

var pixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

type drawItem struct {
	tr    component.Transform
	r     component.Renderable
	order int
}

func drawWorld(screen *ebiten.Image, w *ecs.World) {
	var items []drawItem
	ecs.ForEach2(w, component.RenderableComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, r *component.Renderable, tr *component.Transform) {
			if r.Hidden || ecs.Has(w, e, component.InactiveComponent.Kind()) {
				return
			}
			items = append(items, drawItem{tr: *tr, r: *r, order: len(items)})
		})
	sort.SliceStable(items, func(i, j int) bool { return items[i].r.Layer < items[j].r.Layer })

	for _, it := range items {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(it.r.Width, it.r.Height)
		op.GeoM.Rotate(it.tr.Rotation)
		op.GeoM.Translate(it.tr.X, it.tr.Y)
		op.ColorScale.ScaleWithColor(it.r.Color)
		screen.DrawImage(pixel, op)
	}
}

func drawFade(screen *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	a := uint8(common.Clamp01(alpha) * 255)
	vector.DrawFilledRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.RGBA{A: a}, false)
}

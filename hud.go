package main

import (
	"image/color"
	"sort"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
	"golang.org/x/image/font/basicfont"
)

type hudButton struct {
	label  string
	entity ecs.Entity
}

// NewHUD builds the top-right panel with one button per ButtonAction in the
// current scene. Clicks go through the world as ClickEvents so they behave
// the same as clicking the entity itself.
func NewHUD(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Scene: "+g.scene.Name, &face, white),
		widget.TextOpts.WidgetOpts(rowData),
	))

	addButton := func(label string, onClick func()) {
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	for _, b := range sceneButtons(g.world) {
		e := b.entity
		addButton(b.label, func() {
			g.world.Events().Push(ecs.ClickEvent{Entity: e})
		})
	}
	if g.debug {
		addButton("Fire now", g.forceTransition)
		addButton("Reload", g.reload)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func sceneButtons(w *ecs.World) []hudButton {
	var buttons []hudButton
	ecs.ForEach(w, component.ButtonActionComponent.Kind(), func(e ecs.Entity, action *component.ButtonAction) {
		label := action.Label
		if label == "" {
			if name, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
				label = name.Value
			}
		}
		buttons = append(buttons, hudButton{label: label, entity: e})
	})
	sort.SliceStable(buttons, func(i, j int) bool { return buttons[i].label < buttons[j].label })
	return buttons
}

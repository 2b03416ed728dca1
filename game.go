package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/groundclear/common"
	"github.com/milk9111/groundclear/config"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
	"github.com/milk9111/groundclear/ecs/entity"
	"github.com/milk9111/groundclear/ecs/system"
	"github.com/milk9111/groundclear/groundwatch"
	"github.com/milk9111/groundclear/scene"
)

const frameStep = time.Second / common.TPS

type Game struct {
	frames int
	debug  bool

	world  *ecs.World
	scene  *entity.Scene
	scenes *scene.Manager
	hud    *ebitenui.UI

	watcher *config.Watcher
	keys    []ebiten.Key
}

func NewGame(start string, debug, watch bool) (*Game, error) {
	order, err := config.LoadBuildOrder()
	if err != nil {
		return nil, err
	}

	g := &Game{debug: debug}
	g.scenes = scene.NewManager(order, g.loadScene)
	if start == "" {
		err = g.scenes.LoadIndex(0)
	} else {
		err = g.scenes.LoadScene(start)
	}
	if err != nil {
		return nil, err
	}

	if watch {
		g.startWatcher()
	}
	return g, nil
}

// loadScene replaces the world with a freshly built one.
func (g *Game) loadScene(name string) error {
	w := ecs.NewWorld()
	system.Install(w, log.Default())
	sc, err := entity.LoadScene(w, name)
	if err != nil {
		return err
	}
	g.world = w
	g.scene = sc
	g.hud = NewHUD(g)
	return nil
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{config.DiskDir, filepath.Join(config.DiskDir, "scenes")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("watch: no %s directory to watch", config.DiskDir)
		return
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch: %v", err)
		return
	}
	g.watcher = w
	log.Printf("watch: watching %v", dirs)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	g.hud.Update()
	g.readInput()

	g.world.Update(frameStep)

	if req, ok := system.TakeSceneChangeRequest(g.world); ok {
		if err := g.scenes.Load(req.Target); err != nil {
			log.Printf("scene: session %s: %v", req.Session, err)
			system.CancelSceneFade(g.world)
		}
	}
	return nil
}

// readInput copies this frame's key presses into the Input singleton and
// turns clicks on Clickable entities into ClickEvents.
func (g *Game) readInput() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	pressed := make([]string, 0, len(g.keys))
	for _, k := range g.keys {
		pressed = append(pressed, k.String())
	}
	if in, ok := ecs.Get(g.world, g.scene.Input, component.InputComponent.Kind()); ok {
		in.JustPressed = pressed
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if e, ok := system.PickClickable(g.world, float64(x), float64(y)); ok {
			g.world.Events().Push(ecs.ClickEvent{Entity: e})
		}
	}

	if !g.debug {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.forceTransition()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
}

func (g *Game) forceTransition() {
	if gw := g.groundWatch(); gw != nil && gw.Watcher != nil {
		if err := gw.Watcher.Fire(); err != nil {
			log.Printf("debug: %v", err)
		}
	}
}

func (g *Game) reload() {
	if err := g.scenes.Reload(); err != nil {
		log.Printf("scene: reload: %v", err)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case ch, ok := <-g.watcher.Changes:
		if !ok {
			g.watcher = nil
			return
		}
		current, _ := g.scenes.Current()
		switch ch.Scene {
		case current:
			log.Printf("watch: %s changed, reloading", ch.Path)
			g.reload()
		case "":
			log.Printf("watch: %s changed, restart to apply the new build order", ch.Path)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("watch: %v", err)
		}
	default:
	}
}

func (g *Game) groundWatch() *component.GroundWatch {
	e, ok := g.world.First(component.GroundWatchComponent.Kind())
	if !ok {
		return nil
	}
	gw, _ := ecs.Get(g.world, e, component.GroundWatchComponent.Kind())
	return gw
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.Background)
	drawWorld(screen, g.world)
	drawFade(screen, system.FadeAlpha(g.world))
	g.hud.Draw(screen)
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	name, index := g.scenes.Current()
	s := fmt.Sprintf("scene %s (%d)", name, index)
	if gw := g.groundWatch(); gw != nil && gw.Watcher != nil {
		s += "\n" + formatSnapshot(gw.Watcher.Snapshot())
	}
	if g.debug {
		s += fmt.Sprintf("\nframes %d  fps %.1f  [F] fire  [R] reload", g.frames, ebiten.ActualFPS())
	}
	return s
}

func formatSnapshot(s groundwatch.Snapshot) string {
	out := fmt.Sprintf("%s  touching %d  seen %d/%d", s.State, len(s.Touching), len(s.EverTouched), s.Expected)
	if s.Remaining > 0 {
		out += fmt.Sprintf("  starts in %.1fs", s.Remaining.Seconds())
	}
	if s.Dropped > 0 {
		out += fmt.Sprintf("  dropped %d", s.Dropped)
	}
	return out
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

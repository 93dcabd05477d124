// Command visualize is an interactive debug host for the localization and
// pure-pursuit core: it renders the maze, the region decomposition, the
// simulated time-of-flight rays, and the live pose estimate, and lets a
// developer drive the simulated robot around with the keyboard.
package main

import (
	"errors"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mdrc-robotics/pacbot-core/internal/core"
	"github.com/mdrc-robotics/pacbot-core/internal/core/standardgrids"
)

var (
	// ErrQuit cleanly exits the whole program when returned from App.Update.
	ErrQuit = errors.New("quit visualize")
	// ErrRestart requests a fresh App with the robot reset to its start cell.
	ErrRestart = errors.New("restart visualize")
)

const cellPx = 20

// App is the ebiten.Game implementation driving the debug view.
type App struct {
	grid    *core.Grid
	regions []core.Region
	robot   *core.RobotDefinition

	truePos core.Cell
	path    []core.Cell

	cfg        core.ControlConfig
	prev       *core.Pose
	last       core.ControlOutput
	lastDists  [4]core.DistReading
	candidates []core.Region

	showRegions bool
	doCVAdjust  bool

	pendingExit error
}

// New builds a fresh App on the competition maze, robot at its default
// start cell.
func New() *App {
	g, err := core.BuildGrid(standardgrids.Pacman)
	if err != nil {
		log.Fatalf("pacman grid failed validation: %v", err)
	}
	regions := core.BuildRegions(g)
	robot, err := core.NewTriWheelRobotDefinition(1, 0.45, 8, 0.5)
	if err != nil {
		log.Fatalf("invalid robot definition: %v", err)
	}
	path := g.BFSPath(core.Cell{Row: 1, Col: 1}, core.Cell{Row: 1, Col: 25})

	return &App{
		grid:        g,
		regions:     regions,
		robot:       robot,
		truePos:     core.Cell{Row: 1, Col: 1},
		path:        path,
		doCVAdjust:  true,
		showRegions: true,
		cfg: core.ControlConfig{
			Lookahead:          2.5,
			BaseSpeed:          2.0,
			SnappingDist:       0.5,
			SnappingMultiplier: 2.0,
			MaxSpeed:           6.0,
			DoCVAdjust:         true,
		},
	}
}

func (a *App) Update() error {
	if a.pendingExit != nil {
		return a.pendingExit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.pendingExit = ErrQuit
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.pendingExit = ErrRestart
		return nil
	}

	a.handleMovement()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.showRegions = !a.showRegions
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		a.doCVAdjust = !a.doCVAdjust
		a.cfg.DoCVAdjust = a.doCVAdjust
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copyPoseToClipboard()
	}
	if x, y := ebiten.CursorPosition(); inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.placeTrueAt(x, y)
	}

	a.stepControl()
	return nil
}

// handleMovement nudges truePos along the four cardinal directions, one
// open cell per keypress, rejecting moves onto a wall.
func (a *App) handleMovement() {
	var d core.Direction
	var ok bool
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD):
		d, ok = core.DirRight, true
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA):
		d, ok = core.DirLeft, true
	case inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW):
		d, ok = core.DirUp, true
	case inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyS):
		d, ok = core.DirDown, true
	}
	if !ok {
		return
	}
	for _, n := range a.grid.Neighbors(a.truePos) {
		if dir, match := a.truePos.DirectionTo(n); match && dir == d {
			a.truePos = n
			return
		}
	}
}

// placeTrueAt snaps truePos to the open cell nearest the clicked pixel.
func (a *App) placeTrueAt(px, py int) {
	x := float32(px) / cellPx
	y := float32(py) / cellPx
	if c, ok := a.grid.NodeNearest(x, y); ok {
		a.truePos = c
	}
}

func (a *App) copyPoseToClipboard() {
	text := formatPose(a.last.EstimatedPose)
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("clipboard write failed: %v", err)
	}
}

// stepControl synthesizes sensor readings for the current true position and
// runs one control tick, exactly as the real robot loop would.
func (a *App) stepControl() {
	dists := core.SimulateDistReadings(a.grid, a.truePos, a.robot.RobotRadius, a.robot.TOFMax, [4]float32{})
	a.lastDists = dists
	a.candidates = core.CandidateRegions(a.grid, a.regions, a.robot, dists)
	cv := a.truePos
	sensors := core.SensorFrame{IMUYawOK: true, Dist: dists, CVCell: &cv}

	remaining := a.path
	if len(a.path) > 0 {
		if idx := indexOfCell(a.path, a.truePos); idx >= 0 {
			remaining = a.path[idx:]
		}
	}

	out := core.Step(a.grid, a.regions, a.robot, a.prev, sensors, remaining, a.cfg)
	a.last = out
	pose := out.EstimatedPose
	a.prev = &pose
}

func indexOfCell(path []core.Cell, c core.Cell) int {
	for i, p := range path {
		if p == c {
			return i
		}
	}
	return -1
}

func (a *App) Layout(_, _ int) (int, int) {
	return core.GridSize * cellPx, core.GridSize*cellPx + 90
}

func main() {
	ebiten.SetWindowTitle("pacbot-core visualize")
	ebiten.SetWindowSize(core.GridSize*cellPx, core.GridSize*cellPx+90)
	for {
		err := ebiten.RunGame(New())
		switch {
		case err == nil:
			return
		case errors.Is(err, ErrQuit):
			return
		case errors.Is(err, ErrRestart):
			continue
		default:
			log.Fatal(err)
		}
	}
}

package main

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/mdrc-robotics/pacbot-core/internal/core"
)

var hudFace = basicfont.Face7x13

var (
	colBG        = color.RGBA{R: 10, G: 12, B: 18, A: 255}
	colWall      = color.RGBA{R: 40, G: 50, B: 70, A: 255}
	colRegion    = color.RGBA{R: 60, G: 120, B: 200, A: 40}
	colRegionOut = color.RGBA{R: 60, G: 150, B: 220, A: 90}
	colTruePos   = color.RGBA{R: 240, G: 200, B: 40, A: 255}
	colEstimate  = color.RGBA{R: 60, G: 220, B: 120, A: 220}
	colRay       = color.RGBA{R: 220, G: 90, B: 90, A: 140}
	colPath      = color.RGBA{R: 90, G: 90, B: 140, A: 90}
	colCandidate = color.RGBA{R: 240, G: 160, B: 40, A: 70}
	colHUDBg     = color.RGBA{R: 18, G: 20, B: 28, A: 235}
)

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colBG)

	a.drawWalls(screen)
	if a.showRegions {
		a.drawRegions(screen)
	}
	a.drawCandidates(screen)
	a.drawPath(screen)
	a.drawRays(screen)
	a.drawTruePos(screen)
	a.drawEstimate(screen)
	a.drawHUD(screen)
}

func (a *App) drawWalls(screen *ebiten.Image) {
	for _, r := range a.grid.Walls() {
		x := float32(r.MinCol) * cellPx
		y := float32(r.MinRow) * cellPx
		w := float32(r.MaxCol-r.MinCol+1) * cellPx
		h := float32(r.MaxRow-r.MinRow+1) * cellPx
		vector.FillRect(screen, x, y, w, h, colWall, false)
	}
}

func (a *App) drawRegions(screen *ebiten.Image) {
	for _, reg := range a.regions {
		x := float32(reg.LowX) * cellPx
		y := float32(reg.LowY) * cellPx
		w := float32(reg.HighX-reg.LowX+1) * cellPx
		h := float32(reg.HighY-reg.LowY+1) * cellPx
		vector.FillRect(screen, x, y, w, h, colRegion, false)
		vector.StrokeRect(screen, x, y, w, h, 1, colRegionOut, false)
	}
}

// drawCandidates highlights every region still consistent with the current
// sensor readings (core.CandidateRegions), not just the winning estimate.
func (a *App) drawCandidates(screen *ebiten.Image) {
	for _, reg := range a.candidates {
		x := float32(reg.LowX) * cellPx
		y := float32(reg.LowY) * cellPx
		w := float32(reg.HighX-reg.LowX+1) * cellPx
		h := float32(reg.HighY-reg.LowY+1) * cellPx
		vector.StrokeRect(screen, x, y, w, h, 2, colCandidate, false)
	}
}

func (a *App) drawPath(screen *ebiten.Image) {
	for i := 0; i+1 < len(a.path); i++ {
		p0 := a.path[i]
		p1 := a.path[i+1]
		x0 := float32(p0.Col)*cellPx + cellPx/2
		y0 := float32(p0.Row)*cellPx + cellPx/2
		x1 := float32(p1.Col)*cellPx + cellPx/2
		y1 := float32(p1.Row)*cellPx + cellPx/2
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colPath, false)
	}
}

// drawRays draws the four simulated TOF beams from truePos out to their
// measured distance, in the same [+x,+y,-x,-y] order SimulateDistReadings
// uses.
func (a *App) drawRays(screen *ebiten.Image) {
	cx := float32(a.truePos.Col)*cellPx + cellPx/2
	cy := float32(a.truePos.Row)*cellPx + cellPx/2
	dirs := [4][2]float32{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, d := range dirs {
		dr := a.lastDists[i].Distance + a.robot.RobotRadius
		ex := cx + d[0]*dr*cellPx
		ey := cy + d[1]*dr*cellPx
		vector.StrokeLine(screen, cx, cy, ex, ey, 1.5, colRay, false)
	}
}

func (a *App) drawTruePos(screen *ebiten.Image) {
	cx := float32(a.truePos.Col)*cellPx + cellPx/2
	cy := float32(a.truePos.Row)*cellPx + cellPx/2
	vector.FillRect(screen, cx-3, cy-3, 6, 6, colTruePos, false)
}

func (a *App) drawEstimate(screen *ebiten.Image) {
	pose := a.last.EstimatedPose
	cx := pose.X*cellPx + cellPx/2
	cy := pose.Y*cellPx + cellPx/2
	const r = 5
	for i := 0; i < 12; i++ {
		a0 := float32(i) / 12 * 2 * math32.Pi
		a1 := float32(i+1) / 12 * 2 * math32.Pi
		vector.StrokeLine(screen,
			cx+r*math32.Cos(a0), cy+r*math32.Sin(a0),
			cx+r*math32.Cos(a1), cy+r*math32.Sin(a1),
			1.5, colEstimate, false)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	y := core.GridSize*cellPx + 4
	vector.FillRect(screen, 0, float32(y)-2, float32(core.GridSize*cellPx), 90, colHUDBg, false)

	lines := []string{
		fmt.Sprintf("true=%s  est=%s  diag=%s", formatCell(a.truePos), formatPose(a.last.EstimatedPose), diagLabel(a.last.Diag.Kind)),
		fmt.Sprintf("vel=(%.2f,%.2f)  wheels=%s", a.last.VelocityX, a.last.VelocityY, formatWheels(a.last.WheelAngularVelocities)),
		"[arrows/wasd] move  [r] regions  [v] cv-adjust  [c] copy pose  [backspace] restart  [q/esc] quit",
		fmt.Sprintf("regions=%t  cv_adjust=%t", a.showRegions, a.doCVAdjust),
	}
	for i, l := range lines {
		text.Draw(screen, l, hudFace, 6, y+14*(i+1), color.White)
	}
}

func formatCell(c core.Cell) string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

func formatPose(p core.Pose) string {
	return fmt.Sprintf("(%.3f,%.3f,h=%.3f)", p.X, p.Y, p.Heading)
}

func formatWheels(ws []float32) string {
	out := "["
	for i, w := range ws {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.2f", w)
	}
	return out + "]"
}

func diagLabel(k core.DiagnosticKind) string {
	switch k {
	case core.DiagSensorFault:
		return "sensor_fault"
	case core.DiagLocalizerFallback:
		return "localizer_fallback"
	case core.DiagNoLocalization:
		return "no_localization"
	default:
		return "ok"
	}
}

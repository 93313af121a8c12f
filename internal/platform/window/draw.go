package window

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/games/schoolrun"
)

const wheelRadius = 18

// renderer paints snapshots. Text falls back to the debug font when the
// embedded faces cannot be parsed.
type renderer struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
}

func newRenderer() *renderer {
	r := &renderer{}
	if src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err == nil {
		r.regular = src
	}
	if src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err == nil {
		r.bold = src
	}
	return r
}

func (r *renderer) draw(dst *ebiten.Image, snap schoolrun.Snapshot) {
	dst.Fill(colorPage)

	switch {
	case snap.Street != nil:
		r.drawStreet(dst, snap.Street)
	case snap.Indoor != nil:
		r.drawIndoor(dst, snap.Indoor)
	}

	r.drawHUD(dst, snap)
	r.drawCaptions(dst, snap)
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 1, c, false)
}

func fillCircle(dst *ebiten.Image, cx, cy, radius float64, c color.Color) {
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius), c, true)
}

func line(dst *ebiten.Image, x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// label draws text centered on (x, y).
func (r *renderer) label(dst *ebiten.Image, s string, x, y, size float64, bold bool, c color.Color) {
	src := r.regular
	if bold && r.bold != nil {
		src = r.bold
	}
	if src == nil {
		ebitenutil.DebugPrintAt(dst, s, int(x)-len(s)*3, int(y)-8)
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, &text.GoTextFace{Source: src, Size: size}, op)
}

// labelLeft draws text with its top-left corner at (x, y).
func (r *renderer) labelLeft(dst *ebiten.Image, s string, x, y, size float64, c color.Color) {
	if r.regular == nil {
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, &text.GoTextFace{Source: r.regular, Size: size}, op)
}

func (r *renderer) drawStreet(dst *ebiten.Image, st *schoolrun.StreetSnapshot) {
	w := st.World
	groundY := w.GroundY()
	cam := st.Camera

	fillRect(dst, 0, 0, w.ViewportW, groundY-120, colorSky)
	drawCity(dst, w, cam)
	drawTrees(dst, w, cam)

	fillRect(dst, 0, groundY, w.ViewportW, w.ViewportH-groundY, colorGrass)
	fillRect(dst, 0, groundY+22, w.ViewportW, 28, colorRoad)

	for _, c := range st.Cars {
		drawCar(dst, c, cam)
	}

	drawStairs(dst, st, cam)
	r.drawSchool(dst, st, cam)
	r.drawBus(dst, st, cam)

	if st.Phase == schoolrun.PhaseInBus {
		windows := busWindows(st.Bus, cam)
		mid := windows[1]
		drawHead(dst, mid.X+mid.W/2, mid.Y+mid.H/2)
	} else {
		drawPlayer(dst, st.Player, cam)
	}

	drawBigDoor(dst, st, cam)
}

// drawCity paints the distant buildings at a quarter of the camera speed.
func drawCity(dst *ebiten.Image, w config.StreetWorld, cam float64) {
	const bw = 180.0
	groundY := w.GroundY()
	shift := cam * 0.25

	for bx := -600.0; bx < w.LevelWidth+600; bx += 300 {
		idx := int(math.Abs(math.Floor(bx/300))) % 4
		bh := 80 + float64(idx)*18
		x := math.Round(bx - shift)
		top := math.Round(groundY - 40 - bh)
		if x+bw < -100 || x > w.ViewportW+100 {
			continue
		}

		fillRect(dst, x, top, bw, bh, buildingColors[idx])

		rows := max(2, int(bh/28))
		for row := range rows {
			for col := range 3 {
				wx := x + 14 + float64(col)*math.Round((bw-28)/3)
				wy := top + 12 + float64(row)*22
				fillRect(dst, wx, wy, math.Round(bw*0.16), 12, colorWindowLt)
			}
		}
	}
}

// drawTrees paints the roadside trees at half the camera speed.
func drawTrees(dst *ebiten.Image, w config.StreetWorld, cam float64) {
	groundY := w.GroundY()
	shift := cam * 0.5

	for tx := -200.0; tx < w.LevelWidth+200; tx += 360 {
		x := math.Round(tx - shift)
		if x < -80 || x > w.ViewportW+80 {
			continue
		}
		fillRect(dst, x+8, groundY-26, 8, 20, colorTrunk)
		fillCircle(dst, x+12, groundY-34, 18, colorFoliage)
		fillCircle(dst, x-2, groundY-22, 14, colorFoliage)
		fillCircle(dst, x+26, groundY-22, 14, colorFoliage)
	}
}

func drawCar(dst *ebiten.Image, c schoolrun.Car, cam float64) {
	x, y := math.Round(c.X-cam), math.Round(c.Y)
	fillRect(dst, x, y, c.W, c.H, carColor(c.Color))
	fillRect(dst, x+8, y+5, c.W-16, c.H/2-2, colorCarGlass)
	fillCircle(dst, x+18, y+c.H, 10, colorTire)
	fillCircle(dst, x+c.W-18, y+c.H, 10, colorTire)
}

func drawStairs(dst *ebiten.Image, st *schoolrun.StreetSnapshot, cam float64) {
	groundY := st.World.GroundY()
	s := st.Stairs
	for i := range s.Steps {
		x := math.Round(st.StairsX + float64(i)*s.StepW - cam)
		y := math.Round(groundY + float64(i)*s.StepH)
		fillRect(dst, x, y, s.StepW, s.StepH, colorStep)
		strokeRect(dst, x, y, s.StepW, s.StepH, colorStepEdge)
	}
}

// schoolTop is the y coordinate of the school's base, below the stairs.
func schoolTop(st *schoolrun.StreetSnapshot) float64 {
	return st.World.GroundY() + float64(st.Stairs.Steps)*st.Stairs.StepH + 8
}

func (r *renderer) drawSchool(dst *ebiten.Image, st *schoolrun.StreetSnapshot, cam float64) {
	const nameBar = 36
	sc := st.School
	x := math.Round(sc.X - cam)
	base := schoolTop(st)
	roof := base - float64(sc.Stories)*sc.StoryH

	fillRect(dst, x, roof-nameBar, sc.Width, nameBar, colorSchool)
	r.label(dst, sc.Name, x+math.Round(sc.Width/2), roof-nameBar/2, 18, true, colorInk)

	paneW, paneH := math.Round(sc.Width*0.09), math.Round(sc.StoryH*0.25)
	for s := range sc.Stories {
		y := base - float64(sc.Stories-s)*sc.StoryH
		fillRect(dst, x, y, sc.Width, sc.StoryH, colorSchool)
		for c := range 4 {
			wx := x + 18 + float64(c)*math.Round((sc.Width-36)/4)
			fillRect(dst, wx, y+18, paneW, paneH, colorPane)
			strokeRect(dst, wx, y+18, paneW, paneH, colorPaneEdge)
		}
	}
}

// drawBigDoor paints the school entrance in front of everything else.
func drawBigDoor(dst *ebiten.Image, st *schoolrun.StreetSnapshot, cam float64) {
	const dw, dh = 54.0, 80.0
	sc := st.School
	x := math.Round(sc.X-cam) + sc.Width - dw - 5
	y := schoolTop(st) - dh - 10
	fillRect(dst, x, y, dw, dh, colorDoor)
	fillCircle(dst, x+dw-12, y+dh/2, 4, colorKnob)
}

// busWindows returns the three window rectangles in screen space.
func busWindows(b schoolrun.Bus, cam float64) [3]core.Box {
	bx, by := math.Round(b.X-cam), math.Round(b.Y)
	ww := max(28, math.Round(b.W*0.13))
	wh := max(20, math.Round(b.H*0.28))
	gap := max(6, math.Round((b.W-24-ww*3)/2))

	var out [3]core.Box
	for i := range out {
		out[i] = core.Box{X: bx + 12 + float64(i)*(ww+gap), Y: by - 18, W: ww, H: wh}
	}
	return out
}

func (r *renderer) drawBus(dst *ebiten.Image, st *schoolrun.StreetSnapshot, cam float64) {
	b := st.Bus
	bx, by := math.Round(b.X-cam), math.Round(b.Y)
	top := by - b.H/2

	fillRect(dst, bx, top, b.W, b.H, colorBus)
	fillRect(dst, bx, top+math.Round(b.H*0.18), b.W, math.Round(b.H*0.16), colorStripe)
	fillRect(dst, bx, by-6, b.W, 6, colorInk)

	for _, w := range busWindows(b, cam) {
		fillRect(dst, w.X, w.Y, w.W, w.H, colorBusGlass)
	}

	wheelY := math.Round(by + b.H/2 - wheelRadius/2)
	fillCircle(dst, bx+24, wheelY, wheelRadius, colorTire)
	fillCircle(dst, bx+b.W-34, wheelY, wheelRadius, colorTire)

	// Door slides right as it opens
	doorX := bx + b.W - 52 + math.Round(b.DoorProg*28)
	fillRect(dst, doorX, by-10, 28, 30, colorTire)

	r.labelLeft(dst, "School Transport", bx+10, top+4, 14, colorPane)
}

// drawHead draws the passenger's head, used when peeking out of a bus window.
func drawHead(dst *ebiten.Image, x, y float64) {
	fillCircle(dst, x+2, y, 10, colorSkin)
	fillRect(dst, x-8, y-8, 24, 8, colorHair)
}

// legEnd rotates a leg of the given length hanging from (x, y).
func legEnd(x, y, length, angle float64) (float64, float64) {
	return x - length*math.Sin(angle), y + length*math.Cos(angle)
}

func drawPlayer(dst *ebiten.Image, p schoolrun.Player, cam float64) {
	x, y := math.Round(p.X-cam), math.Round(p.Y)

	fillRect(dst, x-10, y-18, 20, 18, colorUniform)
	fillRect(dst, x-10, y, 20, 8, colorMaroon)
	fillCircle(dst, x+2, y-26, 10, colorSkin)
	fillRect(dst, x-8, y-34, 24, 8, colorHair)
	fillRect(dst, x+12, y-12, 10, 18, colorMaroon)

	swing := math.Sin(p.WalkPhase) * 0.6 * 0.35
	hipX, hipY := x+2, y+12
	for _, leg := range []struct{ dx, angle float64 }{{-8, swing}, {8, -swing}} {
		lx := hipX + leg.dx + 1
		ex, ey := legEnd(lx, hipY, 14, leg.angle)
		line(dst, lx, hipY, ex, ey, 6, colorSkin)
	}
}

func (r *renderer) drawIndoor(dst *ebiten.Image, in *schoolrun.IndoorSnapshot) {
	const slab = 12
	w := in.World
	fillRect(dst, 0, 0, w.Width, w.Height, colorWall)

	for i, f := range in.Floors {
		fillRect(dst, 0, f.CeilingY-4, w.Width, 4, colorCeiling)
		fillRect(dst, 0, f.SurfaceY, w.Width, slab, colorSlab)
		if i < len(in.FloorNames) {
			r.labelLeft(dst, in.FloorNames[i], 8, f.CeilingY+4, 13, colorInk)
		}
	}

	for _, g := range in.Gaps {
		y := in.Floors[g.Floor].SurfaceY
		fillRect(dst, g.XMin, y, g.XMax-g.XMin, slab, colorHole)
		line(dst, g.XMin, y, g.XMin, y+slab, 2, colorDanger)
		line(dst, g.XMax, y, g.XMax, y+slab, 2, colorDanger)
	}

	for _, z := range in.WetPatches {
		y := in.Floors[z.Floor].SurfaceY
		fillRect(dst, z.XMin, y-4, z.XMax-z.XMin, 4, colorWet)
	}

	for _, s := range in.Stairs {
		drawIndoorStair(dst, s, in.Floors, in.ClimbSteps)
	}

	r.drawClassroom(dst, in)
	drawPlayer(dst, in.Player, 0)

	if _, dead := in.Status.(schoolrun.Dead); dead {
		p := in.Player
		strokeRect(dst, p.X-p.W/2-4, p.Y-p.H/2-16, p.W+8, p.H+24, colorDanger)
	}
}

// drawIndoorStair draws the steps along the diagonal between two floors.
func drawIndoorStair(dst *ebiten.Image, s config.StairConfig, floors []config.FloorConfig, steps int) {
	steps = max(1, steps)
	from, to := floors[s.From].SurfaceY, floors[s.To].SurfaceY
	stepW := s.Width / float64(steps)

	for i := range steps {
		t := float64(i+1) / float64(steps)
		x := core.Lerp(s.X, s.X+s.Width, float64(i)/float64(steps))
		y := core.Lerp(from, to, t)
		fillRect(dst, x, y, stepW, from-y, colorStep)
		strokeRect(dst, x, y, stepW, from-y, colorStepEdge)
	}
	line(dst, s.X, from-30, s.X+s.Width, to-30, 2, colorStepEdge)
}

func (r *renderer) drawClassroom(dst *ebiten.Image, in *schoolrun.IndoorSnapshot) {
	c := in.Classroom
	floor := in.Floors[c.Floor].SurfaceY
	top := floor - c.Height

	fillRect(dst, c.X, top, c.Width, c.Height, colorSchool)
	strokeRect(dst, c.X, top, c.Width, c.Height, colorInk)
	r.label(dst, "CLASS", c.X+c.Width/2, top+16, 16, true, colorInk)
	fillRect(dst, c.X+c.Width-34, floor-60, 26, 60, colorDoor)
	fillCircle(dst, c.X+c.Width-14, floor-30, 3, colorKnob)
}

func (r *renderer) drawHUD(dst *ebiten.Image, snap schoolrun.Snapshot) {
	rate := snap.TickRate
	if rate <= 0 {
		rate = 60
	}
	hud := fmt.Sprintf("Level %d   %.1fs", snap.Level, float64(snap.Ticks)/float64(rate))
	if snap.Indoor != nil {
		hud += "   " + snap.Indoor.FloorName
		if snap.Indoor.Deaths > 0 {
			hud += fmt.Sprintf("   falls %d", snap.Indoor.Deaths)
		}
	}
	r.labelLeft(dst, hud, 10, 8, 14, colorText)

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%.0f fps", ebiten.ActualFPS()), dst.Bounds().Dx()-60, dst.Bounds().Dy()-16)
}

func (r *renderer) drawCaptions(dst *ebiten.Image, snap schoolrun.Snapshot) {
	size := dst.Bounds()
	cx, cy := float64(size.Dx())/2, float64(size.Dy())/2

	if snap.Prompt != "" && len(snap.Banner) == 0 {
		r.label(dst, snap.Prompt, cx, 40, 16, false, colorText)
	}
	if len(snap.Banner) == 0 {
		return
	}

	light := !snap.Paused && snap.Street != nil && snap.Street.Phase == schoolrun.PhaseStartPrompt
	overlay, ink := overlayDark, color.Color(colorPane)
	if light {
		overlay, ink = overlayLight, colorTire
	}
	fillRect(dst, 0, 0, float64(size.Dx()), float64(size.Dy()), overlay)

	r.label(dst, snap.Banner[0], cx, cy-18, 28, false, ink)
	for i, s := range snap.Banner[1:] {
		r.label(dst, s, cx, cy+12+float64(i)*20, 16, false, ink)
	}
}

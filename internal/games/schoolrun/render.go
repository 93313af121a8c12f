package schoolrun

import (
	"fmt"
	"math"

	"github.com/vovakirdan/schoolrun/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '▄'
	RoadChar     = '═'
	CarChar      = '█'
	BusChar      = '█'
	WindowChar   = '▢'
	StairChar    = '▀'
	BuildingChar = '░'
	FloorChar    = '▀'
	WetChar      = '≈'
	GapChar      = '▽'
	HeadChar     = '☻'
	BodyChar     = '█'
)

// Render draws the current scene to the screen.
func (s *Session) Render(dst *core.Screen) {
	Draw(dst, s.Snapshot())
}

// Draw paints a snapshot into a character screen. Row 0 is the HUD; the
// scene is scaled to the remaining rows.
func Draw(dst *core.Screen, snap Snapshot) {
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	switch {
	case snap.Street != nil:
		drawStreet(dst, snap.Street)
	case snap.Indoor != nil:
		drawIndoor(dst, snap.Indoor)
	}

	drawHUD(dst, snap)
	if snap.Prompt != "" {
		drawCentered(dst, 1, snap.Prompt, core.ColorBrightWhite)
	}
	drawBanner(dst, snap.Banner)
}

// view maps world pixels to screen cells.
type view struct {
	camera float64
	sx, sy float64
	top    int
}

func newView(dst *core.Screen, worldW, worldH, camera float64) view {
	return view{
		camera: camera,
		sx:     float64(dst.Width()) / worldW,
		sy:     float64(dst.Height()-1) / worldH,
		top:    1,
	}
}

func (v view) col(x float64) int {
	return int(math.Floor((x - v.camera) * v.sx))
}

func (v view) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// rect converts a world box to a cell rectangle at least one cell in size.
func (v view) rect(x, y, w, h float64) core.Rect {
	c0, r0 := v.col(x), v.row(y)
	c1, r1 := v.col(x+w), v.row(y+h)
	return core.NewRect(c0, r0, max(1, c1-c0), max(1, r1-r0))
}

func drawStreet(dst *core.Screen, st *StreetSnapshot) {
	v := newView(dst, st.World.ViewportW, st.World.ViewportH, st.Camera)
	groundY := st.World.GroundY()

	// Distant buildings scroll at a quarter of the camera speed
	far := v
	far.camera = st.Camera * 0.25
	for bx := -600.0; bx < st.World.LevelWidth+600; bx += 300 {
		idx := int(math.Abs(math.Floor(bx/300))) % 4
		bh := 80 + float64(idx)*18
		dst.DrawRect(far.rect(bx, groundY-40-bh, 180, bh), BuildingChar, core.ColorGray)
	}

	groundRow := v.row(groundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)
	for r := groundRow + 1; r < dst.Height(); r++ {
		dst.DrawHLine(0, r, dst.Width(), RoadChar, core.ColorGray)
	}

	drawSchool(dst, v, st)

	for _, c := range st.Cars {
		dst.DrawRect(v.rect(c.X, c.Y, c.W, c.H), CarChar, c.Color)
	}

	drawBus(dst, v, st)

	if st.Phase != PhaseInBus {
		drawPlayer(dst, v, st.Player)
	}
}

func drawSchool(dst *core.Screen, v view, st *StreetSnapshot) {
	groundY := st.World.GroundY()
	for i := 0; i < st.Stairs.Steps; i++ {
		x := st.StairsX + float64(i)*st.Stairs.StepW
		dst.DrawRect(v.rect(x, groundY+float64(i)*st.Stairs.StepH, st.Stairs.StepW, st.Stairs.StepH), StairChar, core.ColorWhite)
	}

	sc := st.School
	bottom := groundY + float64(st.Stairs.Steps)*st.Stairs.StepH + 8
	height := float64(sc.Stories)*sc.StoryH + 36
	r := v.rect(sc.X, bottom-height, sc.Width, height)
	dst.DrawBox(r, core.ColorPink)

	name := sc.Name
	if len([]rune(name)) > r.W-2 {
		name = string([]rune(name)[:max(0, r.W-2)])
	}
	dst.DrawTextColor(r.X+(r.W-len([]rune(name)))/2, r.Y+1, name, core.ColorPink)

	// One row of windows per story
	for s := 0; s < sc.Stories; s++ {
		wy := bottom - float64(sc.Stories-s)*sc.StoryH + 18
		for c := 0; c < 4; c++ {
			wx := sc.X + 18 + float64(c)*math.Round((sc.Width-36)/4)
			dst.SetColor(v.col(wx), v.row(wy), WindowChar, core.ColorBrightWhite)
		}
	}

	door := v.rect(sc.DoorX(), bottom-90, sc.DoorWidth, 80)
	dst.DrawRect(door, '█', core.ColorBrown)
}

func drawBus(dst *core.Screen, v view, st *StreetSnapshot) {
	b := st.Bus
	r := v.rect(b.X, b.Y-b.H/2, b.W, b.H)
	dst.DrawRect(r, BusChar, core.ColorGray)

	label := "School Transport"
	if len(label) <= r.W-2 {
		dst.DrawTextColor(r.X+1, r.Y, label, core.ColorBrightYellow)
	}

	// Three windows; the middle one shows the passenger
	winRow := v.row(b.Y - 18)
	for i := 0; i < 3; i++ {
		wx := b.X + 12 + float64(i)*(b.W-24)/3 + 16
		ch, color := WindowChar, core.ColorBrightBlue
		if i == 1 && st.Phase == PhaseInBus {
			ch, color = HeadChar, core.ColorSkin
		}
		dst.SetColor(v.col(wx), winRow, ch, color)
	}

	// Door slides right as it opens
	doorX := b.Front() - 52 + b.DoorProg*28
	doorColor := core.ColorBrightWhite
	if b.DoorProg > 0.5 {
		doorColor = core.ColorBrightGreen
	}
	dst.DrawRect(v.rect(doorX, b.Y-10, 28, 30), '▌', doorColor)
}

func drawPlayer(dst *core.Screen, v view, p Player) {
	x := v.col(p.X)
	head := v.row(p.Y - p.H/2)
	body := v.row(p.Y)
	if body == head {
		body++
	}

	dst.SetColor(x, head, HeadChar, core.ColorSkin)
	dst.SetColor(x, body, BodyChar, core.ColorNavy)

	legs := '╿'
	if p.WalkPhase != 0 {
		if math.Sin(p.WalkPhase) > 0 {
			legs = '╱'
		} else {
			legs = '╲'
		}
	}
	dst.SetColor(x, body+1, legs, core.ColorSkin)
}

func drawIndoor(dst *core.Screen, in *IndoorSnapshot) {
	v := newView(dst, in.World.Width, in.World.Height, 0)

	for i, f := range in.Floors {
		row := v.row(f.SurfaceY)
		dst.DrawHLine(0, row, dst.Width(), FloorChar, core.ColorBrown)
		dst.DrawTextColor(1, row-1, fmt.Sprintf("%d", i), core.ColorGray)
	}

	for _, z := range in.WetPatches {
		f := in.Floors[z.Floor]
		c0, c1 := v.col(z.XMin), v.col(z.XMax)
		dst.DrawHLine(c0, v.row(f.SurfaceY), max(1, c1-c0+1), WetChar, core.ColorBrightBlue)
	}

	for _, z := range in.Gaps {
		f := in.Floors[z.Floor]
		c0, c1 := v.col(z.XMin), v.col(z.XMax)
		row := v.row(f.SurfaceY)
		dst.DrawHLine(c0, row, max(1, c1-c0+1), ' ', core.ColorDefault)
		dst.DrawHLine(c0, row+1, max(1, c1-c0+1), GapChar, core.ColorRed)
	}

	for _, s := range in.Stairs {
		from, to := in.Floors[s.From].SurfaceY, in.Floors[s.To].SurfaceY
		steps := max(1, in.ClimbSteps)
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			x := core.Lerp(s.X, s.X+s.Width, t)
			y := core.Lerp(from, to, t)
			dst.SetColor(v.col(x), v.row(y), '▟', core.ColorWhite)
		}
	}

	room := in.Classroom
	surface := in.Floors[room.Floor].SurfaceY
	r := v.rect(room.X, surface-room.Height, room.Width, room.Height)
	dst.DrawBox(r, core.ColorBrightGreen)
	dst.DrawTextColor(r.X+1, r.Y+1, "CLASS", core.ColorBrightGreen)

	color := core.ColorSkin
	if _, dead := in.Status.(Dead); dead {
		color = core.ColorRed
	}
	p := in.Player
	dst.SetColor(v.col(p.X), v.row(p.Y-p.H/2), HeadChar, color)
	dst.SetColor(v.col(p.X), v.row(p.Y), BodyChar, core.ColorNavy)
	if p.Sliding {
		dst.SetColor(v.col(p.X)-1, v.row(p.Y), '~', core.ColorBrightBlue)
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	rate := snap.TickRate
	if rate <= 0 {
		rate = 60
	}
	seconds := float64(snap.Ticks) / float64(rate)

	hud := fmt.Sprintf(" Level %d  Time %5.1fs", snap.Level, seconds)
	switch {
	case snap.Street != nil:
		hud += "  " + snap.Street.Phase.String()
	case snap.Indoor != nil:
		hud += fmt.Sprintf("  %s  Falls %d", snap.Indoor.FloorName, snap.Indoor.Deaths)
	}
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
}

func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	dst.DrawTextColor((dst.Width()-len([]rune(text)))/2, y, text, c)
}

func drawBanner(dst *core.Screen, lines []string) {
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w := min(dst.Width(), width+4)
	h := len(lines) + 2
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorBrightWhite)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightYellow
		}
		drawCentered(dst, r.Y+1+i, l, color)
	}
}

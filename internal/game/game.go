package game

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Viewer window layout.
const (
	viewW       = 1280
	viewH       = 800
	hudMargin   = 8
	simTickRate = 60.0 // fixed-step simulation rate
)

// Player helm tuning for the viewer.
const (
	helmTurnRate = 1.1  // rad/s at full rudder
	helmAccel    = 6.0  // units/s² throttle response
	helmMaxSpeed = 12.0 // units/s
)

var hudFace font.Face = basicfont.Face7x13

// Game is the windowed ebiten front end over a BattleSim. All combat logic
// lives in the sim; this layer is input, camera, and vector rendering.
type Game struct {
	sim *BattleSim

	camZoom   float64
	simSpeed  float64 // 0 = paused, 0.5, 1, 2, 4
	tickAccum float64

	chainAmmo bool

	prevKeys map[ebiten.Key]bool

	drawBuf []*Projectile // reused each frame
}

// NewGame builds a viewer around a fresh auto-wave battle.
func NewGame(opts ...SimOption) *Game {
	opts = append(opts, WithAutoWaves())
	return &Game{
		sim:      NewBattleSim(opts...),
		camZoom:  4.0,
		simSpeed: 1.0,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

// Update handles input and steps the simulation at a fixed rate scaled by
// the speed control.
func (g *Game) Update() error {
	dt := 1.0 / simTickRate
	p := &g.sim.Player

	// Helm.
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		p.Heading = normalizeAngle(p.Heading - helmTurnRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		p.Heading = normalizeAngle(p.Heading + helmTurnRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		p.Speed = clamp(p.Speed+helmAccel*dt, 0, helmMaxSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		p.Speed = clamp(p.Speed-helmAccel*dt, 0, helmMaxSpeed)
	}

	// Guns.
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.sim.FireBroadside(SidePort)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.sim.FireBroadside(SideStarboard)
	}

	// Controls.
	if g.keyPressed(ebiten.KeySpace) {
		if g.simSpeed == 0 {
			g.simSpeed = 1
		} else {
			g.simSpeed = 0
		}
	}
	if g.keyPressed(ebiten.KeyMinus) && g.simSpeed > 0.5 {
		g.simSpeed /= 2
	}
	if g.keyPressed(ebiten.KeyEqual) && g.simSpeed < 4 {
		g.simSpeed *= 2
	}
	if g.keyPressed(ebiten.KeyZ) && g.camZoom > 1 {
		g.camZoom /= 1.5
	}
	if g.keyPressed(ebiten.KeyX) && g.camZoom < 12 {
		g.camZoom *= 1.5
	}
	if g.keyPressed(ebiten.KeyC) {
		g.chainAmmo = !g.chainAmmo
		g.sim.Projectiles.SetChainAmmo(g.chainAmmo)
	}
	if g.keyPressed(ebiten.KeyR) {
		if err := g.sim.CopyDebugReport(300); err != nil {
			log.Printf("clipboard: %v", err)
		}
	}

	// Fixed-step sim advance with fractional accumulation for sub-1x speeds.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1 {
		g.tickAccum -= 1
		if g.sim.Player.HP > 0 {
			p.Pos = p.Pos.Add(headingVec(p.Heading).Scale(p.Speed * dt))
			g.sim.Step(dt)
		}
	}
	return nil
}

// worldToScreen projects a world point into screen space with the camera
// centred on the player.
func (g *Game) worldToScreen(v Vec3) (float32, float32) {
	p := g.sim.Player.Pos
	x := (v.X-p.X)*g.camZoom + viewW/2
	y := (v.Z-p.Z)*g.camZoom + viewH/2
	return float32(x), float32(y)
}

var behaviorColors = map[Behavior]color.RGBA{
	BehaviorFlee:      {R: 200, G: 170, B: 90, A: 255},  // merchant gold
	BehaviorCircle:    {R: 200, G: 60, B: 60, A: 255},   // corsair red
	BehaviorBeeline:   {R: 255, G: 120, B: 30, A: 255},  // fire ship orange
	BehaviorPhase:     {R: 150, G: 220, B: 220, A: 255}, // ghost pale
	BehaviorFormation: {R: 70, G: 110, B: 220, A: 255},  // navy blue
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Open water.
	screen.Fill(color.RGBA{R: 14, G: 34, B: 52, A: 255})

	// Enemy hulls.
	for _, s := range g.sim.Ships {
		sx, sy := g.worldToScreen(s.Pos)
		c := behaviorColors[s.Behavior]
		if s.Phased {
			c.A = 90
		}
		r := float32(s.HitRadius * g.camZoom)
		vector.DrawFilledCircle(screen, sx, sy, r, c, true)
		if s.Boss {
			vector.StrokeCircle(screen, sx, sy, r+3, 2.0,
				color.RGBA{R: 255, G: 60, B: 60, A: 220}, true)
		}
		if s.IsFormationLeader() {
			vector.StrokeCircle(screen, sx, sy, r+2, 1.0,
				color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
		}
		// Heading line.
		hx := sx + float32(math.Cos(s.Heading))*r*2
		hy := sy + float32(math.Sin(s.Heading))*r*2
		vector.StrokeLine(screen, sx, sy, hx, hy, 1.0,
			color.RGBA{R: 255, G: 255, B: 255, A: 150}, true)
		// HP sliver.
		frac := float32(clamp01(s.HP / s.MaxHP))
		vector.DrawFilledRect(screen, sx-r, sy-r-5, 2*r*frac, 2,
			color.RGBA{R: 80, G: 220, B: 80, A: 200}, false)
	}

	// Player.
	px, py := g.worldToScreen(g.sim.Player.Pos)
	pr := float32(g.sim.Player.HullRadius * g.camZoom)
	vector.DrawFilledCircle(screen, px, py, pr, color.RGBA{R: 240, G: 240, B: 240, A: 255}, true)
	hx := px + float32(math.Cos(g.sim.Player.Heading))*pr*2.2
	hy := py + float32(math.Sin(g.sim.Player.Heading))*pr*2.2
	vector.StrokeLine(screen, px, py, hx, hy, 1.5, color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)

	// Projectiles: radius swells with altitude so arcs read on a flat view.
	g.drawBuf = g.sim.Projectiles.activeProjectiles(g.drawBuf[:0])
	for _, p := range g.drawBuf {
		sx, sy := g.worldToScreen(p.pos)
		r := float32(1.0+clamp(p.pos.Y*0.25, 0, 2)) * float32(g.camZoom) * 0.3
		c := color.RGBA{R: 40, G: 40, B: 40, A: 255}
		if p.fromPlayer {
			c = color.RGBA{R: 250, G: 250, B: 200, A: 255}
		}
		vector.DrawFilledCircle(screen, sx, sy, r, c, true)
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.sim.currentWave
	lines := []string{
		fmt.Sprintf("wave %d  weather %s  ships %d", g.sim.WaveNumber, w.Weather, g.sim.AliveCount()),
		fmt.Sprintf("hp %.0f/%.0f  gold %d", g.sim.Player.HP, g.sim.Player.MaxHP, g.sim.Gold),
		fmt.Sprintf("shots %d  speed x%.1f  zoom %.1f", g.sim.Projectiles.ActiveCount(), g.simSpeed, g.camZoom),
		"arrows/wasd helm  q/e broadsides  c chain ammo  space pause  -/= speed  z/x zoom  r report",
	}
	if g.chainAmmo {
		lines = append(lines, "chain ammo loaded")
	}
	if g.sim.omen != nil {
		lines = append(lines, fmt.Sprintf("omen: %s", g.sim.omen.Name))
	}
	if g.sim.Player.HP <= 0 {
		lines = append(lines, "SUNK - close the window")
	}
	for i, l := range lines {
		text.Draw(screen, l, hudFace, hudMargin, hudMargin+14+(i*16), color.White)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewW, viewH
}

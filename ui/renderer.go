package ui

import (
	"fmt"

	"snake-search/game"
	"snake-search/game/entity"
	"snake-search/game/manager"
	"snake-search/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxScores     = 200 // Maximum number of scores to show in graph
	borderPadding = 10
)

// Scene is the screen currently shown by the shell
type Scene int

const (
	StartScene Scene = iota
	GameScene
)

type Renderer struct {
	screenWidth  int32
	screenHeight int32
	graphHeight  int32
	graphWidth   int32
	gameWidth    int32
	statsPanel   int32
	layout       Layout
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func toColor(c entity.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

// Draw renders one frame of the given scene
func (r *Renderer) Draw(scene Scene, s *game.Session, stats *manager.StateManager) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/40, r.statsPanel/12)
	lineHeight := min(r.screenHeight/30, r.statsPanel/9)

	if scene == StartScene {
		r.drawStartScene(s, stats, fontSize*2)
		rl.EndDrawing()
		return
	}

	r.layout = NewLayout(r.gameWidth, r.screenHeight, s.Grid().Size, borderPadding)
	r.drawBoard(s)
	r.drawStatsPanel(s, stats, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) drawStartScene(s *game.Session, stats *manager.StateManager, fontSize int32) {
	title := "SNAKE"
	rl.DrawText(title, (r.screenWidth-rl.MeasureText(title, fontSize*2))/2, r.screenHeight/3, fontSize*2, rl.Green)

	hint := "Press ENTER to start"
	rl.DrawText(hint, (r.screenWidth-rl.MeasureText(hint, fontSize))/2, r.screenHeight/2, fontSize, rl.White)

	agents := ""
	for i, snap := range s.Snapshots() {
		if i > 0 {
			agents += ", "
		}
		agents += snap.Strategy.String()
	}
	info := fmt.Sprintf("Agents: %s - High score: %d", agents, stats.GetHighScore())
	rl.DrawText(info, (r.screenWidth-rl.MeasureText(info, fontSize/2))/2, r.screenHeight/2+fontSize*2, fontSize/2, rl.Gray)
}

func (r *Renderer) drawBoard(s *game.Session) {
	l := r.layout
	size := s.Grid().Size

	rl.DrawRectangle(l.OffsetX-1, l.OffsetY-1, l.Width()+2, l.Height()+2, rl.DarkGray)
	for i := 0; i < size*size; i++ {
		c := s.Grid().CellAt(i)
		x, y := l.CellOrigin(c)
		rl.DrawRectangleLines(x, y, l.CellSize, l.CellSize, rl.Gray)
	}

	for _, w := range s.WallCells() {
		x, y := l.CellOrigin(w)
		rl.DrawRectangle(x, y, l.CellSize, l.CellSize, rl.LightGray)
	}

	food := s.FoodCell()
	fx, fy := l.CellOrigin(food)
	rl.DrawRectangle(fx, fy, l.CellSize, l.CellSize, rl.Red)

	colors := s.Colors()
	for i, snap := range s.Snapshots() {
		base := toColor(colors[i])
		if !snap.Alive {
			base = rl.Fade(base, 0.35)
		}
		for j := len(snap.Body) - 1; j >= 0; j-- {
			color := base
			if j == len(snap.Body)-1 { // Tail
				color = rl.White
			} else if j == 0 { // Head
				color = rl.Color{
					R: uint8(min(int32(base.R)*13/10, 255)),
					G: uint8(min(int32(base.G)*13/10, 255)),
					B: uint8(min(int32(base.B)*13/10, 255)),
					A: base.A,
				}
			}
			x, y := l.CellOrigin(snap.Body[j])
			rl.DrawRectangle(x, y, l.CellSize, l.CellSize, color)
		}
		if snap.Alive && len(snap.Body) > 0 {
			r.drawHeading(snap.Body[0], snap.Direction)
		}
	}
}

// drawHeading puts a yellow triangle on the head pointing where the snake goes
func (r *Renderer) drawHeading(head types.Cell, d types.Direction) {
	tri := r.layout.HeadingTriangle(head, d)
	rl.DrawTriangle(
		rl.Vector2{X: tri[0][0], Y: tri[0][1]},
		rl.Vector2{X: tri[1][0], Y: tri[1][1]},
		rl.Vector2{X: tri[2][0], Y: tri[2][1]},
		rl.Yellow)
}

func (r *Renderer) drawStatsPanel(s *game.Session, stats *manager.StateManager, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	rl.DrawText("Points:", statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	colors := s.Colors()
	for i, snap := range s.Snapshots() {
		label := fmt.Sprintf("%c %s: %d", rune('A'+i), snap.Strategy, snap.Points)
		if !snap.Alive {
			label += " (" + snap.Collision.String() + ")"
		}
		rl.DrawText(label, statsX+5, statsY, fontSize, toColor(colors[i]))
		statsY += lineHeight
	}

	statsY += lineHeight / 2
	rl.DrawText("History:", statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("High: %d", stats.GetHighScore()), statsX+5, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Avg: %.2f", stats.GetAverageScore()), statsX+5, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Median: %.1f", stats.GetMedianScore()), statsX+5, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Games: %d", stats.GetGamesPlayed()), statsX+5, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Time: %.1fs (max %.1fs)", stats.GetAverageDuration(), stats.GetMaxDuration()), statsX+5, statsY, fontSize, rl.White)

	r.drawScoreGraph(stats, statsX, fontSize)

	if s.Over() {
		text := "Game Over! Press ENTER"
		width := rl.MeasureText(text, fontSize*2)
		l := r.layout
		rl.DrawText(text, l.OffsetX+(l.Width()-width)/2, l.OffsetY+l.Height()/2, fontSize*2, rl.White)
	}
}

func (r *Renderer) drawScoreGraph(stats *manager.StateManager, graphX, fontSize int32) {
	graphHeight := r.graphHeight
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	scores := stats.GetScoreHistory()
	if len(scores) > maxScores {
		scores = scores[len(scores)-maxScores:]
	}
	if len(scores) < 2 {
		return
	}

	maxScore := 1
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}

	for j := 1; j < len(scores); j++ {
		x1 := graphX + int32(float32(r.graphWidth)*float32(j-1)/float32(maxScores))
		y1 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j-1])/float32(maxScore))
		x2 := graphX + int32(float32(r.graphWidth)*float32(j)/float32(maxScores))
		y2 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j])/float32(maxScore))
		rl.DrawLine(x1, y1, x2, y2, rl.Green)
	}

	// Average score line (dashed)
	avgY := graphY + graphHeight - int32(float32(graphHeight)*float32(stats.GetAverageScore())/float32(maxScore))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}

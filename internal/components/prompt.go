package components

import (
	"wallclimb/internal/engine"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PromptWidget is the on-screen interaction hint ("E - Climb" etc).
type PromptWidget struct {
	engine.BaseComponent

	FontSize int32
	Color    rl.Color
	Panel    rl.Color

	text    string
	visible bool
}

func NewPromptWidget() *PromptWidget {
	return &PromptWidget{
		FontSize: 22,
		Color:    rl.RayWhite,
		Panel:    rl.NewColor(20, 20, 28, 200),
	}
}

func (p *PromptWidget) ShowPrompt(text string) {
	p.text = text
	p.visible = text != ""
}

func (p *PromptWidget) HidePrompt() {
	p.text = ""
	p.visible = false
}

func (p *PromptWidget) Text() string {
	return p.text
}

func (p *PromptWidget) Visible() bool {
	return p.visible
}

// Draw renders the prompt centered near the bottom of the screen.
func (p *PromptWidget) Draw(screenWidth, screenHeight int32) {
	if !p.visible {
		return
	}

	textWidth := float32(rl.MeasureText(p.text, p.FontSize))
	padding := float32(12)
	rect := rl.Rectangle{
		X:      (float32(screenWidth)-textWidth)/2 - padding,
		Y:      float32(screenHeight)*0.75 - padding,
		Width:  textWidth + padding*2,
		Height: float32(p.FontSize) + padding*2,
	}

	rl.DrawRectangleRec(rect, p.Panel)
	rl.DrawRectangleLinesEx(rect, 1, rl.Gold)

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, int64(p.FontSize))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(p.Color))
	inner := rl.Rectangle{X: rect.X + padding, Y: rect.Y + padding, Width: textWidth, Height: float32(p.FontSize)}
	gui.Label(inner, p.text)
}

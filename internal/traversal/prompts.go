package traversal

const (
	PromptClimb        = "E - Climb"
	PromptStopClimbing = "E - Stop Climbing"
	PromptJumpToLedge  = "Space - Jump to Ledge"
	PromptLetGo        = "Space - Let Go"
)

// showPrompt suppresses repeats of the text already on screen.
func (c *TraversalComponent) showPrompt(text string) {
	if c.state.CurrentPrompt == text {
		return
	}
	c.state.CurrentPrompt = text
	c.prompt.ShowPrompt(text)
}

// hidePrompt only hides text that is currently shown, so a late hide
// cannot clobber a newer prompt.
func (c *TraversalComponent) hidePrompt(text string) {
	if text == "" || c.state.CurrentPrompt != text {
		return
	}
	c.state.CurrentPrompt = ""
	c.prompt.HidePrompt()
}

func (c *TraversalComponent) hideCurrentPrompt() {
	c.hidePrompt(c.state.CurrentPrompt)
}

// modePrompt is the prompt owed to the wall in front when no ledge is
// selected.
func (c *TraversalComponent) modePrompt() string {
	switch c.state.Mode {
	case ModeGrounded:
		return PromptClimb
	case ModeClimbing:
		return PromptStopClimbing
	}
	return ""
}

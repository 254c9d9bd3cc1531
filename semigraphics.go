package vscroll

// Glyphs used for borders, captions and scroll bars.
const (
	SemigraphicsHorizontalEllipsis = "…" // …

	BoxDrawingsLightHorizontal      = "─" // ─
	BoxDrawingsLightVertical        = "│" // │
	BoxDrawingsLightDownAndRight    = "┌" // ┌
	BoxDrawingsLightDownAndLeft     = "┐" // ┐
	BoxDrawingsLightUpAndRight      = "└" // └
	BoxDrawingsLightUpAndLeft       = "┘" // ┘
	BoxDrawingsLightArcDownAndRight = "╭" // ╭
	BoxDrawingsLightArcDownAndLeft  = "╮" // ╮
	BoxDrawingsLightArcUpAndLeft    = "╯" // ╯
	BoxDrawingsLightArcUpAndRight   = "╰" // ╰
)

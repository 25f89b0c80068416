package view

import (
	"github.com/Iron-Ham/bridge/internal/speech"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// SpeakerName is the companion shown in front of every message.
const SpeakerName = "NOVA"

// SpeechLine renders the companion's current message, or a quiet prompt.
func SpeechLine(s styles.Styles, msg speech.Message, speaking bool) string {
	if !speaking {
		return s.Speaker.Render(SpeakerName) + s.Muted.Render(" ▸ ...")
	}
	text := s.Speech.Render(msg.Text)
	if msg.Priority == speech.PriorityHigh {
		text = s.Title.Render(msg.Text)
	}
	return s.Speaker.Render(SpeakerName) + s.Muted.Render(" ▸ ") + text
}

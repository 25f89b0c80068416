package sim

import (
	"time"

	"github.com/Iron-Ham/bridge/internal/bridge"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// DemoScript is a short session that touches every component: the boot
// sequence with a faulted instrument, a quick sweep across two threats, the
// greeting and the nudge queued behind it, one panel reveal with damage, a
// deflection, and a hover that takes over from the nudge.
func DemoScript() []Step {
	return []Step{
		{At: 0, Name: "engage", Do: func(b *bridge.Bridge) error {
			b.Start()
			return nil
		}},
		{At: ms(2000), Name: "hover gym-membership", Do: hover("gym-membership")},
		{At: ms(2100), Name: "hover fraud-alert", Do: hover("fraud-alert")},
		{At: ms(3200), Name: "fault inst-02", Do: fault("inst-02", true)},
		{At: ms(4500), Name: "repair inst-02", Do: fault("inst-02", false)},
		{At: ms(5500), Name: "expand shields", Do: func(b *bridge.Bridge) error {
			return b.Panels().Expand("shields")
		}},
		{At: ms(6800), Name: "damage shields", Do: func(b *bridge.Bridge) error {
			b.Panels().SetHealth("shields", 0.6)
			return nil
		}},
		{At: ms(7200), Name: "collapse", Do: func(b *bridge.Bridge) error {
			b.Panels().Collapse()
			return nil
		}},
		{At: ms(7800), Name: "deflect fraud-alert", Do: func(b *bridge.Bridge) error {
			return b.Threats().Deflect("fraud-alert")
		}},
		{At: ms(12500), Name: "hover streaming", Do: hover("streaming")},
	}
}

func hover(id string) func(*bridge.Bridge) error {
	return func(b *bridge.Bridge) error {
		return b.Threats().SetHovered(id)
	}
}

func fault(id string, on bool) func(*bridge.Bridge) error {
	return func(b *bridge.Bridge) error {
		b.Power().ReportError(id, on)
		return nil
	}
}

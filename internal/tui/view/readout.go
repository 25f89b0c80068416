package view

import "time"

// ReadoutLines are typed out one character at a time while the console glows.
var ReadoutLines = []string{
	"SYNESTHESIAPAY BRIDGE v4.2.0",
	"QUANTUM PROCESSOR ............ ONLINE",
	"THREAT DETECTION ARRAY ....... CALIBRATING",
	"SHIELD GENERATOR ............. STANDBY",
	"NAVIGATION MATRIX ............ SYNCHRONIZED",
	"FINANCIAL SENSORS ............ ACTIVE",
	"HULL INTEGRITY ............... 100%",
	"ALL SYSTEMS OPERATIONAL",
}

// Readout typing speed.
const (
	ReadoutCharInterval = 20 * time.Millisecond
	ReadoutLinePause    = 400 * time.Millisecond
)

// Readout returns the completed lines and the partially typed line, elapsed
// after the readout started. A line takes one tick per character plus one to
// commit, then pauses before the next begins.
func Readout(elapsed time.Duration) (done []string, typing string) {
	if elapsed < 0 {
		return nil, ""
	}
	t := elapsed
	for _, line := range ReadoutLines {
		typeFor := time.Duration(len(line)+1) * ReadoutCharInterval
		if t < typeFor {
			chars := min(int(t/ReadoutCharInterval), len(line))
			return done, line[:chars]
		}
		t -= typeFor
		done = append(done, line)
		if t < ReadoutLinePause {
			return done, ""
		}
		t -= ReadoutLinePause
	}
	return done, ""
}

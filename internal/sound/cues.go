// Package sound names the table's sound cues. Playback itself lives
// in the audio collaborator; the engine only picks and publishes cue
// names.
package sound

import (
	"math/rand"
	"strings"
)

// Cue is a single playable sound effect.
type Cue string

const (
	// Player death
	CueDeath   Cue = "death"
	CueWilhelm Cue = "wilhelm"

	// Morning
	CueRooster Cue = "rooster"
	CueAlarm   Cue = "alarm"
	CueTimer   Cue = "timer"

	// Goodnight
	CueMusicBox Cue = "music_box"

	// Reveal
	CueDrumroll   Cue = "drumroll"
	CueDrama      Cue = "drama"
	CueSadTrumpet Cue = "sad_trumpet"
)

// groups collects the cues appropriate to each table moment.
var groups = map[string][]Cue{
	"morning":   {CueRooster, CueAlarm, CueTimer},
	"goodnight": {CueMusicBox},
	"reveal":    {CueDrumroll, CueDrama, CueSadTrumpet},
	"death":     {CueDeath, CueWilhelm},
}

// FromString returns the cue for a given name if present.
func FromString(name string) (Cue, bool) {
	name = strings.ToLower(name)
	for _, cues := range groups {
		for _, c := range cues {
			if string(c) == name {
				return c, true
			}
		}
	}
	return "", false
}

// Groups lists the known group names.
func Groups() []string {
	return []string{"morning", "goodnight", "reveal", "death"}
}

// Pick returns a random cue from the named group so repeated moments
// don't always sound the same.
func Pick(rng *rand.Rand, group string) (Cue, bool) {
	cues, ok := groups[strings.ToLower(group)]
	if !ok || len(cues) == 0 {
		return "", false
	}
	return cues[rng.Intn(len(cues))], true
}

// Package lighting names the table's lighting scenes. The DMX rig
// itself belongs to the lighting collaborator; the engine only picks
// and publishes scene names.
package lighting

import "strings"

// Scene is a single predefined lighting look.
type Scene string

const (
	// Game moments
	SceneDeath     Scene = "death"
	SceneDrama     Scene = "drama"
	SceneGoodnight Scene = "goodnight"
	SceneMorning   Scene = "morning"
	SceneReveal    Scene = "reveal"

	// Utility
	SceneBlackout  Scene = "blackout"
	SceneSpotlight Scene = "spotlight"
	SceneFog       Scene = "fog"
)

var scenes = []Scene{
	SceneDeath, SceneDrama, SceneGoodnight, SceneMorning, SceneReveal,
	SceneBlackout, SceneSpotlight, SceneFog,
}

// FromString returns the scene for a given name if present.
func FromString(name string) (Scene, bool) {
	name = strings.ToLower(name)
	for _, s := range scenes {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// Scenes lists the known scene names.
func Scenes() []string {
	out := make([]string, len(scenes))
	for i, s := range scenes {
		out[i] = string(s)
	}
	return out
}

// ForMoment maps a table moment (the sound groups: morning, goodnight,
// reveal, death) to its lighting scene, if one exists.
func ForMoment(moment string) (Scene, bool) {
	switch strings.ToLower(moment) {
	case "morning":
		return SceneMorning, true
	case "goodnight":
		return SceneGoodnight, true
	case "reveal":
		return SceneReveal, true
	case "death":
		return SceneDeath, true
	default:
		return "", false
	}
}

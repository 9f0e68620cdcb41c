package console

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"

	"github.com/deathsdoor/deathsdoor/internal/game"
)

const wrapWidth = 80

// templateFuncs provides utility functions for templates, plus a wrap
// helper for rulebook text.
var templateFuncs = func() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["wrap"] = func(s string) string {
		return wordwrap.String(s, wrapWidth)
	}
	return funcs
}()

// expandTemplate expands a template string using the provided data.
func expandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

const scriptsTmpl = `{{ if not . }}No scripts loaded.
{{ else }}{{ range . }}{{ printf "%-24s" .Name }} {{ .CharacterCount }} characters
{{ end }}{{ end }}`

func renderScripts(scripts []game.ScriptSummary) (string, error) {
	return expandTemplate(scriptsTmpl, scripts)
}

type rolesView struct {
	Included []string
	Space    *game.RoleDistribution
}

const rolesTmpl = `{{ if not .Included }}No roles included yet.
{{ else }}Roles in play:
{{ range .Included }}  {{ . }}
{{ end }}{{ end }}{{ with .Space }}Free space: {{ .Townsfolk }} townsfolk, {{ .Outsiders }} outsiders, {{ .Minions }} minions, {{ .Demons }} demons
{{ end }}`

func renderRoles(included []string, space *game.RoleDistribution) (string, error) {
	return expandTemplate(rolesTmpl, rolesView{Included: included, Space: space})
}

type grimoireView struct {
	Snap    game.Snapshot
	Players []game.PlayerSnapshot
}

const grimoireTmpl = `{{ .Snap.Script }} | {{ .Snap.State }}{{ if eq (printf "%s" .Snap.State) "in-progress" }} | {{ .Snap.Phase }} {{ .Snap.Nights }}{{ end }}{{ if .Snap.Winner }} | {{ .Snap.Winner }} wins{{ end }}
{{ if not .Players }}No players seated.
{{ else }}{{ range .Players }}{{ if .Alive }}  {{ else }}+ {{ end }}{{ printf "%-16s" .Name }} {{ printf "%-16s" (default "(no role)" .Character) }}{{ range .Effects }} [{{ .Kind }}:{{ .Source }}]{{ end }}{{ if .UsedDeadVote }} (vote spent){{ end }}
{{ end }}{{ end }}`

// renderGrimoire prints the seat list. Dead players get a tombstone
// marker in the left column.
func renderGrimoire(snap game.Snapshot, players []game.PlayerSnapshot) (string, error) {
	return expandTemplate(grimoireTmpl, grimoireView{Snap: snap, Players: players})
}

type playerView struct {
	Player    game.PlayerSnapshot
	Character *game.Character
}

const playerTmpl = `{{ .Player.Name }}{{ if not .Player.Alive }} (dead){{ end }} | {{ .Player.Alignment }}
{{ with .Character }}{{ .Name }} ({{ .Category }})
{{ wrap .Ability }}
{{ if .Reminders }}Reminders: {{ join ", " .Reminders }}
{{ end }}{{ else }}No role dealt yet.
{{ end }}{{ range .Player.Effects }}[{{ .Kind }}:{{ .Source }}]
{{ end }}`

func renderPlayer(p game.PlayerSnapshot, char *game.Character) (string, error) {
	return expandTemplate(playerTmpl, playerView{Player: p, Character: char})
}

type nightOrderView struct {
	First  bool
	Nights int
	Steps  []game.NightStep
}

const nightOrderTmpl = `{{ if .First }}First night order:
{{ else }}Night {{ .Nights }} order:
{{ end }}{{ range $i, $s := .Steps }}{{ add $i 1 }}. {{ $s.Name }}{{ if $s.Description }}
{{ indent 3 (wrap $s.Description) }}{{ end }}
{{ end }}`

func renderNightOrder(first bool, nights int, steps []game.NightStep) (string, error) {
	return expandTemplate(nightOrderTmpl, nightOrderView{First: first, Nights: nights, Steps: steps})
}

package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deathsdoor/deathsdoor/internal/game"
	"github.com/deathsdoor/deathsdoor/internal/lighting"
	"github.com/deathsdoor/deathsdoor/internal/sound"
)

// session is the per-connection console state. The epoch pins every
// mutation to the game this storyteller believes is running.
type session struct {
	console *Console
	epoch   uuid.UUID
}

const helpText = `Commands:
  scripts                      list available scripts
  newgame <script>             start a fresh game on a script
  include <role>[, <role>...]  add roles to the game
  exclude <role>               remove an unheld role
  roles                        show included roles and free space
  add <player>                 seat a player
  traveler <player> <role>     seat a traveler with a role
  remove <player>              unseat a player
  draw <player>                deal a random included role
  assign <player> <role>       deal a specific included role
  reveal [seconds]             wait until every seat holds a role
  players                      show the grimoire
  player <name>                show one player in detail
  kill <name> / revive <name>  toggle life state
  align <name> good|evil       set alignment
  poison <name> [source]       apply the poisoned effect
  cure <name>                  remove the poisoned effect
  effect <name> <kind> [src]   apply any status effect
  clear <name> <kind>          remove a status effect
  resolve <name>               check whether an ability fires
  deadvote <name>              spend a dead player's vote
  phase                        advance night/day
  nightorder                   show tonight's wake order
  threshold                    votes needed to execute
  execute <votes>              check an execution tally
  conclude good|evil           end the game
  sound <cue|group>            play a sound cue
  light <scene>                trigger a lighting scene
  timer show|set|add|start|stop
  quit
`

// dispatch parses one input line and runs the matching command. Blank
// and whitespace-only lines are a no-op.
func (s *session) dispatch(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "help":
		return helpText, nil
	case "quit", "exit":
		return "", errQuit
	case "scripts":
		return renderScripts(s.console.mgr.ListScripts())
	case "newgame":
		return s.newGame(args)
	case "include":
		return s.include(args)
	case "exclude":
		return s.exclude(args)
	case "roles", "setup":
		return s.roles()
	case "add":
		return s.addPlayer(args)
	case "traveler":
		return s.addTraveler(args)
	case "remove":
		return s.removePlayer(args)
	case "draw":
		return s.draw(args)
	case "assign":
		return s.assign(args)
	case "reveal":
		return s.reveal(ctx, args)
	case "players":
		return s.players()
	case "player":
		return s.playerDetail(args)
	case "kill":
		return s.setAlive(args, false)
	case "revive":
		return s.setAlive(args, true)
	case "align":
		return s.align(args)
	case "poison":
		if len(args) < 1 {
			return "", NewUserError("Usage: poison <name> [source]")
		}
		return s.applyEffect(insertKind(args, game.EffectPoisoned))
	case "cure":
		if len(args) < 1 {
			return "", NewUserError("Usage: cure <name>")
		}
		return s.clearEffect(insertKind(args, game.EffectPoisoned))
	case "effect":
		return s.applyEffect(args)
	case "clear":
		return s.clearEffect(args)
	case "resolve":
		return s.resolve(args)
	case "deadvote":
		return s.deadVote(args)
	case "phase":
		return s.advancePhase()
	case "nightorder":
		return s.nightOrder()
	case "threshold":
		return s.threshold()
	case "execute":
		return s.execute(args)
	case "conclude":
		return s.conclude(args)
	case "sound":
		return s.playSound(args)
	case "light":
		return s.triggerLight(args)
	case "timer":
		return s.timerCmd(args)
	default:
		return "", NewUserError(fmt.Sprintf("Unknown command: %s (try 'help')", cmd))
	}
}

// insertKind turns "poison <name> [source]" argument lists into the
// shape applyEffect expects: <name> <kind> [source].
func insertKind(args []string, kind game.EffectKind) []string {
	if len(args) == 0 {
		return args
	}
	out := []string{args[0], string(kind)}
	return append(out, args[1:]...)
}

func (s *session) newGame(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: newgame <script>")
	}
	snap, err := s.console.mgr.NewGame(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	s.epoch = snap.Epoch
	return fmt.Sprintf("New game on %q. Include roles to begin.\n", snap.Script), nil
}

func (s *session) include(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: include <role>[, <role>...]")
	}
	names := splitRoleList(args)
	err := s.console.mgr.IncludeRoles(s.epoch, names)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Included %d role(s).\n", len(names)), nil
}

func (s *session) exclude(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: exclude <role>")
	}
	err := s.console.mgr.ExcludeRole(s.epoch, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return "Excluded.\n", nil
}

func (s *session) roles() (string, error) {
	snap, err := s.console.mgr.Snapshot()
	if err != nil {
		return "", err
	}
	space, err := s.console.mgr.FreeSpace(s.epoch)
	if err != nil {
		// Free space needs a legal player count. Show roles anyway.
		return renderRoles(snap.Included, nil)
	}
	return renderRoles(snap.Included, &space)
}

func (s *session) addPlayer(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: add <player>")
	}
	name := strings.Join(args, " ")
	err := s.console.mgr.AddPlayer(s.epoch, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Seated %s.\n", name), nil
}

func (s *session) addTraveler(args []string) (string, error) {
	if len(args) < 2 {
		return "", NewUserError("Usage: traveler <player> <role>")
	}
	err := s.console.mgr.AddTraveler(s.epoch, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Seated traveler %s.\n", args[0]), nil
}

func (s *session) removePlayer(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: remove <player>")
	}
	err := s.console.mgr.RemovePlayer(s.epoch, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return "Removed.\n", nil
}

func (s *session) draw(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: draw <player>")
	}
	name := strings.Join(args, " ")
	char, err := s.console.mgr.DrawCharacter(s.epoch, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s drew %s.\n", name, char), nil
}

func (s *session) assign(args []string) (string, error) {
	if len(args) < 2 {
		return "", NewUserError("Usage: assign <player> <role>")
	}
	err := s.console.mgr.AssignCharacter(s.epoch, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is the %s.\n", args[0], strings.Join(args[1:], " ")), nil
}

func (s *session) reveal(ctx context.Context, args []string) (string, error) {
	timeout := 30 * time.Second
	if len(args) > 0 {
		secs, err := strconv.Atoi(args[0])
		if err != nil || secs <= 0 {
			return "", NewUserError("Usage: reveal [seconds]")
		}
		timeout = time.Duration(secs) * time.Second
	}
	err := s.console.mgr.WaitRoleReveal(ctx, s.epoch, timeout)
	if err != nil {
		return "", err
	}
	s.playGroup("reveal")
	return "Every seat holds a role.\n", nil
}

func (s *session) players() (string, error) {
	players, err := s.console.mgr.ListPlayers(s.epoch)
	if err != nil {
		return "", err
	}
	snap, err := s.console.mgr.Snapshot()
	if err != nil {
		return "", err
	}
	return renderGrimoire(snap, players)
}

func (s *session) playerDetail(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: player <name>")
	}
	p, err := s.console.mgr.GetPlayer(s.epoch, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	var char *game.Character
	if p.Character != "" {
		char, err = s.console.mgr.Catalog().Lookup(p.Character)
		if err != nil {
			return "", err
		}
	}
	return renderPlayer(p, char)
}

func (s *session) setAlive(args []string, alive bool) (string, error) {
	if len(args) < 1 {
		verb := "kill"
		if alive {
			verb = "revive"
		}
		return "", NewUserError(fmt.Sprintf("Usage: %s <name>", verb))
	}
	name := strings.Join(args, " ")
	err := s.console.mgr.SetAlive(s.epoch, name, alive)
	if err != nil {
		return "", err
	}
	if alive {
		return fmt.Sprintf("%s lives again.\n", name), nil
	}
	s.playGroup("death")
	return fmt.Sprintf("%s is dead.\n", name), nil
}

func (s *session) align(args []string) (string, error) {
	if len(args) != 2 {
		return "", NewUserError("Usage: align <name> good|evil")
	}
	alignment := game.Alignment(strings.ToLower(args[1]))
	if alignment != game.AlignmentGood && alignment != game.AlignmentEvil {
		return "", NewUserError("Alignment must be good or evil")
	}
	err := s.console.mgr.SetAlignment(s.epoch, args[0], alignment)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is now %s.\n", args[0], alignment), nil
}

func (s *session) applyEffect(args []string) (string, error) {
	if len(args) < 2 {
		return "", NewUserError("Usage: effect <name> <kind> [source]")
	}
	source := game.SourceStoryteller
	if len(args) > 2 {
		source = strings.Join(args[2:], " ")
	}
	kind := game.EffectKind(strings.ToLower(args[1]))
	err := s.console.mgr.ApplyStatusEffect(s.epoch, args[0], kind, source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is %s (from %s).\n", args[0], kind, source), nil
}

func (s *session) clearEffect(args []string) (string, error) {
	if len(args) < 2 {
		return "", NewUserError("Usage: clear <name> <kind>")
	}
	kind := game.EffectKind(strings.ToLower(args[1]))
	err := s.console.mgr.RemoveStatusEffect(s.epoch, args[0], kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is no longer %s.\n", args[0], kind), nil
}

func (s *session) resolve(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: resolve <name>")
	}
	res, err := s.console.mgr.ResolveAbility(s.epoch, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	if res.Suppressed {
		return fmt.Sprintf("%s's ability does nothing (%s). Act it out anyway.\n", res.Player, res.Reason), nil
	}
	return fmt.Sprintf("%s's ability works tonight.\n", res.Player), nil
}

func (s *session) deadVote(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: deadvote <name>")
	}
	name := strings.Join(args, " ")
	err := s.console.mgr.RecordDeadVote(s.epoch, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s spent their dead vote.\n", name), nil
}

func (s *session) advancePhase() (string, error) {
	phase, err := s.console.mgr.AdvancePhase(s.epoch)
	if err != nil {
		return "", err
	}
	if phase == game.PhaseDay {
		s.playGroup("morning")
		return "Dawn breaks.\n", nil
	}
	s.playGroup("goodnight")
	return "Night falls.\n", nil
}

func (s *session) nightOrder() (string, error) {
	snap, err := s.console.mgr.Snapshot()
	if err != nil {
		return "", err
	}
	script, err := s.console.mgr.Scripts().Get(snap.Script)
	if err != nil {
		return "", err
	}

	steps := script.OtherNight
	first := snap.Nights <= 1
	if first {
		steps = script.FirstNight
	}

	// Only show steps for roles actually in this game, plus the fixed
	// storyteller steps every night has.
	included := make(map[string]bool, len(snap.Included))
	for _, name := range snap.Included {
		included[game.NormalizeName(name)] = true
	}
	var shown []game.NightStep
	for _, step := range steps {
		if step.AlwaysShow || included[game.NormalizeName(step.Name)] {
			shown = append(shown, step)
		}
	}

	return renderNightOrder(first, snap.Nights, shown)
}

func (s *session) threshold() (string, error) {
	votes, err := s.console.mgr.ExecutionThreshold(s.epoch)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Execution needs %d vote(s).\n", votes), nil
}

func (s *session) execute(args []string) (string, error) {
	if len(args) != 1 {
		return "", NewUserError("Usage: execute <votes>")
	}
	votes, err := strconv.Atoi(args[0])
	if err != nil || votes < 0 {
		return "", NewUserError("Votes must be a non-negative number")
	}
	ok, err := s.console.mgr.CheckExecution(s.epoch, votes)
	if err != nil {
		return "", err
	}
	if ok {
		s.playGroup("death")
		return fmt.Sprintf("%d vote(s) is enough. The town executes.\n", votes), nil
	}
	return fmt.Sprintf("%d vote(s) is not enough.\n", votes), nil
}

func (s *session) conclude(args []string) (string, error) {
	if len(args) != 1 {
		return "", NewUserError("Usage: conclude good|evil")
	}
	winner := game.Alignment(strings.ToLower(args[0]))
	err := s.console.mgr.Conclude(s.epoch, winner)
	if err != nil {
		return "", err
	}
	s.playGroup("reveal")
	return fmt.Sprintf("Game over. %s wins.\n", winner), nil
}

func (s *session) playSound(args []string) (string, error) {
	if len(args) != 1 {
		return "", NewUserError(fmt.Sprintf("Usage: sound <cue|group> (groups: %s)", strings.Join(sound.Groups(), ", ")))
	}
	if cue, ok := sound.FromString(args[0]); ok {
		s.console.cues.PublishSound(string(cue))
		return fmt.Sprintf("Playing %s.\n", cue), nil
	}
	if cue, ok := sound.Pick(s.console.rng, args[0]); ok {
		s.console.cues.PublishSound(string(cue))
		return fmt.Sprintf("Playing %s.\n", cue), nil
	}
	return "", NewUserError(fmt.Sprintf("Unknown sound %q", args[0]))
}

func (s *session) triggerLight(args []string) (string, error) {
	if len(args) != 1 {
		return "", NewUserError(fmt.Sprintf("Usage: light <scene> (scenes: %s)", strings.Join(lighting.Scenes(), ", ")))
	}
	scene, ok := lighting.FromString(args[0])
	if !ok {
		return "", NewUserError(fmt.Sprintf("Unknown scene %q", args[0]))
	}
	s.console.cues.PublishLight(string(scene))
	return fmt.Sprintf("Scene %s.\n", scene), nil
}

func (s *session) timerCmd(args []string) (string, error) {
	if len(args) < 1 {
		return "", NewUserError("Usage: timer show|set <secs>|add <secs>|start|stop")
	}
	switch strings.ToLower(args[0]) {
	case "show":
		secs, running := s.console.timer.Remaining()
		state := "paused"
		if running {
			state = "running"
		}
		return fmt.Sprintf("%s remaining (%s).\n", formatSeconds(secs), state), nil
	case "set", "add":
		if len(args) != 2 {
			return "", NewUserError(fmt.Sprintf("Usage: timer %s <secs>", args[0]))
		}
		secs, err := strconv.Atoi(args[1])
		if err != nil {
			return "", NewUserError("Seconds must be a number")
		}
		if args[0] == "set" {
			s.console.timer.Set(secs)
		} else {
			s.console.timer.Add(secs)
		}
		remaining, _ := s.console.timer.Remaining()
		return fmt.Sprintf("Timer at %s.\n", formatSeconds(remaining)), nil
	case "start":
		s.console.timer.SetRunning(true)
		return "Timer running.\n", nil
	case "stop":
		s.console.timer.SetRunning(false)
		return "Timer paused.\n", nil
	default:
		return "", NewUserError("Usage: timer show|set <secs>|add <secs>|start|stop")
	}
}

// playGroup fires a random sound cue from a group along with the
// group's lighting scene, skipping silently when no bus is wired.
func (s *session) playGroup(group string) {
	if s.console.cues == nil {
		return
	}
	if cue, ok := sound.Pick(s.console.rng, group); ok {
		s.console.cues.PublishSound(string(cue))
	}
	if scene, ok := lighting.ForMoment(group); ok {
		s.console.cues.PublishLight(string(scene))
	}
}

// splitRoleList joins the raw args back together and splits on commas,
// so both "include monk, soldier" and "include monk" parse.
func splitRoleList(args []string) []string {
	joined := strings.Join(args, " ")
	parts := strings.Split(joined, ",")
	var names []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

func formatSeconds(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

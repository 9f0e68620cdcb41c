package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDispatchGameFlow(t *testing.T) {
	sess, _ := testSession(t)
	ctx := context.Background()

	steps := []string{
		"include imp, poisoner, monk, soldier, mayor",
		"add alice",
		"add bob",
		"draw alice",
		"draw bob",
	}
	for _, step := range steps {
		_, err := sess.dispatch(ctx, step)
		if err != nil {
			t.Fatalf("dispatching %q: %v", step, err)
		}
	}

	out, err := sess.dispatch(ctx, "players")
	if err != nil {
		t.Fatalf("listing players: %v", err)
	}
	if !strings.Contains(out, "alice") || !strings.Contains(out, "bob") {
		t.Errorf("grimoire missing players:\n%s", out)
	}
}

func TestDispatchIgnoresBlankInput(t *testing.T) {
	sess, _ := testSession(t)
	ctx := context.Background()

	tests := map[string]string{
		"empty":       "",
		"spaces":      "   ",
		"tab":         "\t",
		"mixed blank": " \t ",
	}

	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := sess.dispatch(ctx, line)
			if err != nil {
				t.Fatalf("dispatching blank line: %v", err)
			}
			testutil.AssertEqual(t, "output", out, "")
		})
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	sess, _ := testSession(t)

	_, err := sess.dispatch(context.Background(), "grimble")
	testutil.AssertErrorContains(t, err, "Unknown command")
}

func TestDispatchUsageErrors(t *testing.T) {
	sess, _ := testSession(t)
	ctx := context.Background()

	tests := map[string]string{
		"missing player": "add",
		"missing role":   "assign alice",
		"bad alignment":  "align alice neutral",
		"bad votes":      "execute lots",
	}

	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := sess.dispatch(ctx, line)
			if err == nil {
				t.Fatalf("expected usage error for %q", line)
			}
			var ue *UserError
			if !errors.As(err, &ue) {
				t.Errorf("expected user error, got %v", err)
			}
		})
	}
}

func TestKillPlaysDeathCue(t *testing.T) {
	sess, sounds := testSession(t)
	ctx := context.Background()

	for _, step := range []string{"include imp, monk", "add alice", "kill alice"} {
		_, err := sess.dispatch(ctx, step)
		if err != nil {
			t.Fatalf("dispatching %q: %v", step, err)
		}
	}

	played := sounds.played()
	if len(played) != 1 {
		t.Fatalf("expected one cue, got %v", played)
	}
	if played[0] != "death" && played[0] != "wilhelm" {
		t.Errorf("expected a death-group cue, got %q", played[0])
	}
	testutil.AssertEqual(t, "lighting scenes", sounds.lit(), []string{"death"})
}

func TestLightCommand(t *testing.T) {
	sess, cues := testSession(t)
	ctx := context.Background()

	out, err := sess.dispatch(ctx, "light blackout")
	if err != nil {
		t.Fatalf("triggering scene: %v", err)
	}
	testutil.AssertEqual(t, "output", out, "Scene blackout.\n")
	testutil.AssertEqual(t, "scenes", cues.lit(), []string{"blackout"})

	_, err = sess.dispatch(ctx, "light disco")
	testutil.AssertErrorContains(t, err, "Unknown scene")
}

func TestPhaseAnnouncements(t *testing.T) {
	sess, sounds := testSession(t)
	ctx := context.Background()

	_, err := sess.dispatch(ctx, "include imp")
	if err != nil {
		t.Fatalf("including role: %v", err)
	}

	out, err := sess.dispatch(ctx, "phase")
	if err != nil {
		t.Fatalf("advancing to day: %v", err)
	}
	testutil.AssertEqual(t, "day message", out, "Dawn breaks.\n")

	out, err = sess.dispatch(ctx, "phase")
	if err != nil {
		t.Fatalf("advancing to night: %v", err)
	}
	testutil.AssertEqual(t, "night message", out, "Night falls.\n")

	testutil.AssertEqual(t, "cues played", len(sounds.played()), 2)
	testutil.AssertEqual(t, "lighting scenes", sounds.lit(), []string{"morning", "goodnight"})
}

func TestPoisonSuppressesAbility(t *testing.T) {
	sess, _ := testSession(t)
	ctx := context.Background()

	for _, step := range []string{
		"include imp, monk",
		"add alice",
		"assign alice monk",
		"poison alice",
	} {
		_, err := sess.dispatch(ctx, step)
		if err != nil {
			t.Fatalf("dispatching %q: %v", step, err)
		}
	}

	out, err := sess.dispatch(ctx, "resolve alice")
	if err != nil {
		t.Fatalf("resolving: %v", err)
	}
	if !strings.Contains(out, "does nothing (poisoned)") {
		t.Errorf("expected poisoned suppression, got %q", out)
	}

	_, err = sess.dispatch(ctx, "cure alice")
	if err != nil {
		t.Fatalf("curing: %v", err)
	}

	out, err = sess.dispatch(ctx, "resolve alice")
	if err != nil {
		t.Fatalf("resolving after cure: %v", err)
	}
	if !strings.Contains(out, "works tonight") {
		t.Errorf("expected live ability, got %q", out)
	}
}

func TestTimerCommand(t *testing.T) {
	sess, _ := testSession(t)
	ctx := context.Background()

	out, err := sess.dispatch(ctx, "timer set 90")
	if err != nil {
		t.Fatalf("setting timer: %v", err)
	}
	testutil.AssertEqual(t, "set output", out, "Timer at 1:30.\n")

	_, err = sess.dispatch(ctx, "timer start")
	if err != nil {
		t.Fatalf("starting timer: %v", err)
	}

	out, err = sess.dispatch(ctx, "timer show")
	if err != nil {
		t.Fatalf("showing timer: %v", err)
	}
	testutil.AssertEqual(t, "show output", out, "1:30 remaining (running).\n")
}

func TestNightOrderFiltersToIncludedRoles(t *testing.T) {
	sess, _ := testSession(t)
	ctx := context.Background()

	_, err := sess.dispatch(ctx, "include imp, monk")
	if err != nil {
		t.Fatalf("including roles: %v", err)
	}

	out, err := sess.dispatch(ctx, "nightorder")
	if err != nil {
		t.Fatalf("rendering night order: %v", err)
	}

	// First night: Dusk and Dawn always show, the Poisoner step is
	// hidden because the role isn't in this game.
	if !strings.Contains(out, "Dusk") || !strings.Contains(out, "Dawn") {
		t.Errorf("missing fixed steps:\n%s", out)
	}
	if strings.Contains(out, "Poisoner") {
		t.Errorf("showed step for excluded role:\n%s", out)
	}
}

func TestConcludeReportsWinner(t *testing.T) {
	sess, sounds := testSession(t)
	ctx := context.Background()

	_, err := sess.dispatch(ctx, "include imp")
	if err != nil {
		t.Fatalf("including role: %v", err)
	}

	out, err := sess.dispatch(ctx, "conclude good")
	if err != nil {
		t.Fatalf("concluding: %v", err)
	}
	testutil.AssertEqual(t, "conclude output", out, "Game over. good wins.\n")
	testutil.AssertEqual(t, "reveal cue played", len(sounds.played()), 1)
	testutil.AssertEqual(t, "reveal scene", sounds.lit(), []string{"reveal"})

	_, err = sess.dispatch(ctx, "add carol")
	if err == nil {
		t.Error("expected mutation after conclusion to fail")
	}
}

package launcher_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"broom/internal/launcher"
	"broom/internal/testsupport"
)

type fakeEngine struct {
	invoked   int
	rulesPath string
	args      []string
	code      int
}

func (f *fakeEngine) Invoke(_ context.Context, rulesPath string, args []string) (int, error) {
	f.invoked++
	f.rulesPath = rulesPath
	f.args = append([]string(nil), args...)
	return f.code, nil
}

func newLauncher(t *testing.T, engine launcher.Invoker) (*launcher.Launcher, *bytes.Buffer) {
	t.Helper()
	st := testsupport.NewSettings(t)
	stderr := &bytes.Buffer{}
	l := launcher.New(st)
	l.Stderr = stderr
	if engine != nil {
		l.Engine = engine
	}
	return l, stderr
}

func TestRunFailsWhenEngineMissing(t *testing.T) {
	fake := &fakeEngine{}
	l, stderr := newLauncher(t, fake)
	if err := os.Remove(l.Settings.Engine.Path); err != nil {
		t.Fatalf("remove engine: %v", err)
	}

	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != launcher.ExitPrecondition {
		t.Fatalf("expected exit %d, got %d", launcher.ExitPrecondition, code)
	}
	if fake.invoked != 0 {
		t.Fatal("engine must not be invoked on a failed precondition")
	}
	if !strings.Contains(stderr.String(), "ERROR") {
		t.Fatalf("expected ERROR diagnostic, got %q", stderr.String())
	}
}

func TestRunFailsWhenRulesMissing(t *testing.T) {
	fake := &fakeEngine{}
	l, stderr := newLauncher(t, fake)
	if err := os.Remove(l.Settings.Rules); err != nil {
		t.Fatalf("remove rules: %v", err)
	}

	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != launcher.ExitPrecondition || fake.invoked != 0 {
		t.Fatalf("expected precondition skip, got code=%d invoked=%d", code, fake.invoked)
	}
	if !strings.Contains(stderr.String(), "rules") {
		t.Fatalf("expected rules diagnostic, got %q", stderr.String())
	}
}

func TestRunFailsWhenRuntimeMissing(t *testing.T) {
	fake := &fakeEngine{}
	l, _ := newLauncher(t, fake)
	l.Settings.Engine.Runtime = "definitely-not-an-interpreter"
	t.Setenv("PATH", t.TempDir())

	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != launcher.ExitPrecondition || fake.invoked != 0 {
		t.Fatalf("expected precondition skip, got code=%d invoked=%d", code, fake.invoked)
	}
}

func TestRunPropagatesEngineExitCode(t *testing.T) {
	for _, want := range []int{0, 1, 2, 7, 130, 255} {
		fake := &fakeEngine{code: want}
		l, _ := newLauncher(t, fake)

		code, err := l.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if code != want {
			t.Fatalf("expected exit %d, got %d", want, code)
		}
		if fake.invoked != 1 {
			t.Fatalf("expected one invocation, got %d", fake.invoked)
		}
	}
}

func TestRunForwardsArgumentsVerbatim(t *testing.T) {
	fake := &fakeEngine{}
	l, _ := newLauncher(t, fake)

	args := []string{"--dry-run", "", "a b c", "--weird='quoted value'"}
	if _, err := l.Run(context.Background(), args); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if fake.rulesPath != l.Settings.Rules {
		t.Fatalf("expected rules path %q, got %q", l.Settings.Rules, fake.rulesPath)
	}
	if len(fake.args) != len(args) {
		t.Fatalf("expected %d args, got %d", len(args), len(fake.args))
	}
	for i := range args {
		if fake.args[i] != args[i] {
			t.Fatalf("arg %d: got %q want %q", i, fake.args[i], args[i])
		}
	}
}

func TestRunSkipsWhenLockHeld(t *testing.T) {
	fake := &fakeEngine{code: 9}
	l, stderr := newLauncher(t, fake)

	holder := flock.New(l.Settings.Lock)
	acquired, err := holder.TryLock()
	if err != nil || !acquired {
		t.Fatalf("pre-acquire lock: acquired=%v err=%v", acquired, err)
	}
	defer func() { _ = holder.Unlock() }()

	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != launcher.ExitOK {
		t.Fatalf("lock contention must exit %d, got %d", launcher.ExitOK, code)
	}
	if fake.invoked != 0 {
		t.Fatal("engine must not be invoked while the lock is held elsewhere")
	}
	if !strings.Contains(stderr.String(), "in progress") {
		t.Fatalf("expected contention message, got %q", stderr.String())
	}
}

func TestRunReleasesLockAfterEngineExit(t *testing.T) {
	fake := &fakeEngine{code: 1}
	l, _ := newLauncher(t, fake)

	if _, err := l.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	probe := flock.New(l.Settings.Lock)
	acquired, err := probe.TryLock()
	if err != nil {
		t.Fatalf("probe lock: %v", err)
	}
	if !acquired {
		t.Fatal("lock must be free after the launcher returns")
	}
	_ = probe.Unlock()
}

func TestExactlyOneOfTwoLaunchersProceeds(t *testing.T) {
	st := testsupport.NewSettings(t)

	type result struct {
		code    int
		invoked int
	}
	results := make(chan result, 2)
	release := make(chan struct{})

	for i := 0; i < 2; i++ {
		go func() {
			fake := &blockingEngine{release: release}
			l := launcher.New(st)
			l.Stderr = &bytes.Buffer{}
			l.Engine = fake
			code, err := l.Run(context.Background(), nil)
			if err != nil {
				t.Errorf("Run returned error: %v", err)
			}
			results <- result{code: code, invoked: fake.invoked}
		}()
	}

	first := <-results
	close(release)
	second := <-results

	invocations := first.invoked + second.invoked
	if invocations != 1 {
		t.Fatalf("expected exactly one engine invocation, got %d", invocations)
	}
	// The skipped instance reports success.
	if first.code != 0 && second.code != 0 {
		t.Fatalf("expected the skipped launcher to exit 0, got %d and %d", first.code, second.code)
	}
}

type blockingEngine struct {
	invoked int
	release chan struct{}
}

func (b *blockingEngine) Invoke(context.Context, string, []string) (int, error) {
	b.invoked++
	<-b.release
	return 0, nil
}

func TestNewUsesCommandEngine(t *testing.T) {
	st := testsupport.NewSettings(t)
	l := launcher.New(st)
	engine, ok := l.Engine.(*launcher.CommandEngine)
	if !ok {
		t.Fatalf("expected *CommandEngine, got %T", l.Engine)
	}
	if engine.Path != st.Engine.Path {
		t.Fatalf("unexpected engine path: %q", engine.Path)
	}
	if filepath.Dir(st.Lock) == "" {
		t.Fatal("settings must carry a lock path")
	}
}

// Command gbpplanner drives the planning core headlessly: it loads a
// scenario (built-in or from a simulations directory), ticks the
// orchestrator until the run ends, and reports the final metrics.
//
// Renderer-oriented flags (--fullscreen, --width, --height, --record) are
// accepted for command-line compatibility but have no effect here; there
// is no renderer in this build.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/katalvlaran/gbpplanner/config"
	"github.com/katalvlaran/gbpplanner/orchestrator"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitBadArgs = 2

	tickDt = 0.1
	// maxTicks bounds a run whose configuration sets no max_time, so a
	// robot that never reaches its goal cannot hang the process.
	maxTicks = 10000

	maxVerbosity = 3
)

// verbosity is a repeatable boolean flag: each bare --verbose raises the
// level by one, up to maxVerbosity.
type verbosity int

func (v *verbosity) String() string { return strconv.Itoa(int(*v)) }

func (v *verbosity) IsBoolFlag() bool { return true }

func (v *verbosity) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on && *v < maxVerbosity {
		*v++
	}

	return nil
}

type options struct {
	dumpDefault     string
	dumpEnvironment string
	listScenarios   bool
	initialScenario string
	simulationsDir  string
	workingDir      string
	headless        bool
	fullscreen      bool
	width           int
	height          int
	record          bool
	verbose         verbosity
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gbpplanner", flag.ContinueOnError)
	fs.StringVar(&opts.dumpDefault, "dump-default", "", "print defaults for {config|formation|environment} and exit")
	fs.StringVar(&opts.dumpEnvironment, "dump-environment", "", "print a built-in environment {intersection|circle|intermediate|complex|maze|test} and exit")
	fs.BoolVar(&opts.listScenarios, "list-scenarios", false, "list available scenarios and exit")
	fs.StringVar(&opts.initialScenario, "initial-scenario", "circle", "scenario to load at startup")
	fs.StringVar(&opts.simulationsDir, "simulations-dir", "", "directory of *.json scenario descriptors")
	fs.StringVar(&opts.workingDir, "working-dir", "", "change to this directory before running")
	fs.BoolVar(&opts.headless, "headless", true, "run without a renderer (always true in this build)")
	fs.BoolVar(&opts.fullscreen, "fullscreen", false, "no-op: renderer flag kept for compatibility")
	fs.IntVar(&opts.width, "width", 0, "no-op: renderer flag kept for compatibility")
	fs.IntVar(&opts.height, "height", 0, "no-op: renderer flag kept for compatibility")
	fs.BoolVar(&opts.record, "record", false, "no-op: renderer flag kept for compatibility")
	fs.Var(&opts.verbose, "verbose", "increase per-tick diagnostics (repeatable, up to 3)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected positional arguments: %v", fs.Args())
	}

	return opts, nil
}

func dumpDefault(target string) (int, error) {
	switch target {
	case "config":
		data, err := config.Default().DumpJSON()
		if err != nil {
			return exitRuntime, err
		}
		fmt.Println(string(data))
	case "formation", "environment":
		// The default formation is the robot set of the default
		// environment; the default environment is "circle".
		s, err := orchestrator.BuiltinEnvironment("circle")
		if err != nil {
			return exitRuntime, err
		}
		if target == "formation" {
			s = orchestrator.Scenario{Name: s.Name, Robots: s.Robots, RobotRadius: s.RobotRadius, GoalRadius: s.GoalRadius}
		}
		data, err := s.DumpJSON()
		if err != nil {
			return exitRuntime, err
		}
		fmt.Println(string(data))
	default:
		return exitBadArgs, fmt.Errorf("unknown dump-default target %q (want config, formation, or environment)", target)
	}

	return exitOK, nil
}

func dumpEnvironment(name string) (int, error) {
	s, err := orchestrator.BuiltinEnvironment(name)
	if err != nil {
		return exitBadArgs, err
	}
	data, err := s.DumpJSON()
	if err != nil {
		return exitRuntime, err
	}
	fmt.Println(string(data))

	return exitOK, nil
}

func listScenarios(simulationsDir string) (int, error) {
	for _, name := range orchestrator.BuiltinEnvironmentNames() {
		fmt.Println(name)
	}
	if simulationsDir != "" {
		names, err := orchestrator.ListScenarioFiles(simulationsDir)
		if err != nil {
			return exitRuntime, err
		}
		for _, name := range names {
			fmt.Println(name)
		}
	}

	return exitOK, nil
}

// allGoalsReached reports whether every robot sits inside the goal radius
// of its final waypoint.
func allGoalsReached(o *orchestrator.Orchestrator) bool {
	for _, id := range o.Robots() {
		p, err := o.Planner(id)
		if err != nil || !p.GoalReached() {
			return false
		}
	}

	return true
}

func run(opts options) (int, error) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return exitRuntime, err
	}
	o, err := orchestrator.New(cfg)
	if err != nil {
		return exitRuntime, err
	}
	if err := o.LoadScenarioByName(opts.initialScenario, opts.simulationsDir); err != nil {
		return exitRuntime, err
	}
	if opts.verbose >= 1 {
		fmt.Printf("loaded scenario %q with %d robots\n", opts.initialScenario, len(o.Robots()))
	}

	for tick := 0; tick < maxTicks && !o.Done(); tick++ {
		if err := o.Tick(tickDt); err != nil {
			return exitRuntime, err
		}
		if opts.verbose >= 2 {
			m := o.Metrics()
			fmt.Printf("tick=%d t=%.2fs delivered=%d lost=%d\n", m.Ticks, m.SimTime, m.MessagesDelivered, m.MessagesLost)
		}
		if opts.verbose >= 3 {
			for _, id := range o.Robots() {
				p, perr := o.Planner(id)
				if perr != nil {
					continue
				}
				s := p.State()
				fmt.Printf("  robot %d pos=(%.2f, %.2f) vel=(%.2f, %.2f)\n", id, s.X, s.Y, s.VX, s.VY)
			}
		}
		if allGoalsReached(o) {
			break
		}
	}

	m := o.Metrics()
	fmt.Printf("finished after %d ticks (%.2fs simulated): %d delivered, %d lost, %d orphaned\n",
		m.Ticks, m.SimTime, m.MessagesDelivered, m.MessagesLost, m.MessagesOrphaned)

	return exitOK, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitBadArgs)
	}

	if opts.workingDir != "" {
		if err := os.Chdir(opts.workingDir); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitRuntime)
		}
	}

	var code int
	switch {
	case opts.dumpDefault != "":
		code, err = dumpDefault(opts.dumpDefault)
	case opts.dumpEnvironment != "":
		code, err = dumpEnvironment(opts.dumpEnvironment)
	case opts.listScenarios:
		code, err = listScenarios(opts.simulationsDir)
	default:
		code, err = run(opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

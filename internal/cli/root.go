package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geange/fsa"
	"github.com/geange/fsa/internal/config"
	"github.com/geange/fsa/internal/logging"
	"github.com/geange/fsa/internal/output"
)

type rootOptions struct {
	configPath     string
	definitionPath string
	seed           uint64
	size           int
	nfa            bool
	prune          bool
	epsilonClosure bool
	outputJSON     bool
	logLevel       string
}

// session is what every subcommand works with once flags and config are resolved.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	json   bool
	opts   []fsa.Option
}

// NewRootCommand builds the fsa command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "fsa",
		Short: "Finite automaton construction and minimization",
		Long: `Generate random finite automata, determinize them with the subset construction,
minimize them with partition refinement and simulate words against them.

The automaton is either generated from the config (see --config, --seed) or read
from a YAML definition file (--definition).`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	flags.StringVarP(&o.definitionPath, "definition", "d", "", "YAML automaton definition; replaces generation")
	flags.Uint64Var(&o.seed, "seed", 0, "random seed (overrides config)")
	flags.IntVar(&o.size, "size", 0, "number of generated states (overrides config)")
	flags.BoolVar(&o.nfa, "nfa", false, "generate an NFA instead of a DFA")
	flags.BoolVar(&o.prune, "prune", false, "drop unreachable states after generation")
	flags.BoolVar(&o.epsilonClosure, "epsilon-closure", false, "follow epsilon edges when determinizing and simulating")
	flags.BoolVar(&o.outputJSON, "json", false, "print JSON instead of a table")
	flags.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newGenerateCommand(o),
		newDeterminizeCommand(o),
		newMinimizeCommand(o),
		newPruneCommand(o),
		newAcceptCommand(o),
		newEquivalentCommand(o),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) session(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("size") {
		cfg.Generator.Size = o.size
	}
	if flags.Changed("nfa") {
		cfg.Generator.IsDFA = !o.nfa
	}
	if flags.Changed("prune") {
		cfg.Generator.PruneUnreachable = o.prune
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	s := &session{
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
		json:   o.outputJSON,
		opts:   []fsa.Option{fsa.WithLogger(logger)},
	}
	if o.epsilonClosure {
		s.opts = append(s.opts, fsa.WithEpsilonClosure())
	}
	return s, nil
}

// source returns the automaton the command operates on.
func (s *session) source(definitionPath string) (*fsa.Automaton, *fsa.Alphabet, error) {
	if definitionPath != "" {
		a, alphabet, err := config.LoadDefinition(definitionPath)
		if err != nil {
			return nil, nil, err
		}
		s.logger.Debug("loaded definition", zap.String("path", definitionPath), zap.Stringer("automaton", a))
		return a, alphabet, nil
	}

	alphabet, err := s.cfg.Generator.Validate()
	if err != nil {
		return nil, nil, err
	}
	a, err := fsa.GenerateFiniteAutomaton(fsa.NewRandom(s.cfg.Seed), s.cfg.Generator, s.opts...)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("generated", zap.Uint64("seed", s.cfg.Seed), zap.Stringer("automaton", a))
	return a, alphabet, nil
}

// determinized returns a unchanged when it is already a DFA.
func (s *session) determinized(a *fsa.Automaton, alphabet *fsa.Alphabet) (*fsa.Automaton, error) {
	if a.IsDFA() {
		return a, nil
	}
	return fsa.ConvertNFAtoDFA(a, alphabet, s.opts...)
}

func (s *session) print(a *fsa.Automaton, alphabet *fsa.Alphabet) error {
	if s.json {
		return output.PrintJSON(s.out, output.NewAutomatonView(a, alphabet))
	}
	output.TransitionTable(a, alphabet).Render(s.out)
	output.Info(s.out, "%s", a)
	return nil
}

package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/geange/fsa"
	"github.com/geange/fsa/internal/output"
)

func newGenerateCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Print the source automaton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.session(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			a, alphabet, err := s.source(o.definitionPath)
			if err != nil {
				return err
			}
			return s.print(a, alphabet)
		},
	}
}

func newDeterminizeCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "determinize",
		Short: "Convert the source automaton to a DFA with the subset construction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.session(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			a, alphabet, err := s.source(o.definitionPath)
			if err != nil {
				return err
			}
			dfa, err := fsa.ConvertNFAtoDFA(a, alphabet, s.opts...)
			if err != nil {
				return err
			}
			return s.print(dfa, alphabet)
		},
	}
}

func newMinimizeCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "minimize",
		Short: "Minimize the source automaton, determinizing it first if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.session(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			a, alphabet, err := s.source(o.definitionPath)
			if err != nil {
				return err
			}
			dfa, err := s.determinized(a, alphabet)
			if err != nil {
				return err
			}
			minimal, err := fsa.MinimizeDFA(dfa, alphabet, s.opts...)
			if err != nil {
				return err
			}
			return s.print(minimal, alphabet)
		},
	}
}

func newPruneCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove states unreachable from any start state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.session(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			a, alphabet, err := s.source(o.definitionPath)
			if err != nil {
				return err
			}
			pruned, err := fsa.PruneUnreachableStates(a, s.opts...)
			if err != nil {
				return err
			}
			return s.print(pruned, alphabet)
		},
	}
}

func newAcceptCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <word>...",
		Short: "Report whether each word is accepted by the source automaton",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.session(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			a, _, err := s.source(o.definitionPath)
			if err != nil {
				return err
			}

			results := make(map[string]bool, len(args))
			for _, w := range args {
				ok, err := fsa.IsWordAccepted(a, w, s.opts...)
				if err != nil {
					return err
				}
				results[w] = ok
			}

			if s.json {
				return output.PrintJSON(s.out, results)
			}
			for _, w := range args {
				if results[w] {
					output.Success(s.out, "%q accepted", w)
				} else {
					output.Failure(s.out, "%q rejected", w)
				}
			}
			return nil
		},
	}
}

func newEquivalentCommand(o *rootOptions) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "equivalent <u> <v>",
		Short: "Decide whether two words reach the same state of the minimal DFA",
		Long: `Minimizes the source automaton and compares the states reached by the two words.
Equal states mean the words cannot be told apart by any suffix.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.session(cmd)
			if err != nil {
				return err
			}
			defer s.logger.Sync()

			a, alphabet, err := s.source(o.definitionPath)
			if err != nil {
				return err
			}
			dfa, err := s.determinized(a, alphabet)
			if err != nil {
				return err
			}
			minimal, err := fsa.MinimizeDFA(dfa, alphabet, s.opts...)
			if err != nil {
				return err
			}

			state := from
			if state == "" {
				state = minimal.StartNodes()[0].Label
			} else if _, ok := minimal.Lookup(state); !ok {
				return errors.Wrapf(fsa.ErrUnknownState, "--from %q is not a state of the minimal DFA", state)
			}
			equivalent := fsa.WordsEquivalent(minimal, state, args[0], args[1])

			if s.json {
				return output.PrintJSON(s.out, map[string]interface{}{
					"u":          args[0],
					"v":          args[1],
					"from":       state,
					"equivalent": equivalent,
				})
			}
			if equivalent {
				output.Success(s.out, "%q and %q are equivalent from %s", args[0], args[1], state)
			} else {
				output.Failure(s.out, "%q and %q are distinguishable from %s", args[0], args[1], state)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "state of the minimal DFA to start from (default: its start state)")
	return cmd
}

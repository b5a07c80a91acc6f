// SPDX-License-Identifier: MPL-2.0

package protocol

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
)

// HelpArgument is the full name of the flag that requests help.
const HelpArgument = "help"

// PartialRules is the rule set of the first pass of a dynamic program:
// arguments owned by sources that are not registered yet are neither
// unknown nor missing.
var PartialRules = args.AllRules.Without(args.RuleMissingRequired, args.RuleInvalidArgument)

const (
	// OutcomeSuccess means every source is loaded and the tool may run.
	OutcomeSuccess Outcome = iota
	// OutcomeHelp means help was requested; Result.Help holds the text.
	OutcomeHelp
	// OutcomeFault means resolution failed; Result.Err holds the cause.
	OutcomeFault
)

type (
	// Outcome tags a Result.
	Outcome int

	// NamedSource is an argument source and the name it is registered under.
	NamedSource struct {
		Name   string
		Source args.Source
	}

	// Program supplies the argument sources known before parsing.
	Program interface {
		StaticSources() []NamedSource
	}

	// Expander is implemented by programs whose argument surface depends on
	// the command line. DynamicSources is called once, after the partial
	// load, and may inspect the partially populated fields.
	Expander interface {
		DynamicSources(ctx context.Context) ([]NamedSource, error)
	}

	// HelpRenderer turns the registered declarations into help text.
	HelpRenderer interface {
		RenderHelp(details appinfo.Details, sources []args.SourceInfo) string
	}

	// Hooks are called at fixed points of resolution.
	Hooks struct {
		// Loaded runs after every load. final is false for the lenient load of
		// the first pass; an error then is logged and resolution continues.
		Loaded func(final bool) error
	}

	// Resolver runs the resolution state machine.
	Resolver struct {
		Details appinfo.Details
		Help    HelpRenderer
		Hooks   Hooks
		Logger  *log.Logger
	}

	// Result is the terminal outcome of Resolve.
	Result struct {
		Outcome Outcome
		// Help is the rendered help for OutcomeHelp.
		Help string
		// Usage is the rendered help printed alongside an argument fault.
		Usage string
		Err   error
		Trace []State
	}
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeHelp:
		return "help"
	case OutcomeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Resolve registers prog's sources in the session's store and drives the
// session to a terminal state. On OutcomeSuccess the session is Loaded and
// the caller marks it dispatched when it runs the tool.
func (r *Resolver) Resolve(ctx context.Context, sess *Session, prog Program) Result {
	if sess.State() != StateInit {
		return r.fault(sess, &TransitionError{From: sess.State(), To: StateParsed}, false)
	}
	if err := register(sess.store, prog.StaticSources()); err != nil {
		return r.fault(sess, err, false)
	}

	exp, dynamic := prog.(Expander)
	if !dynamic {
		return r.strictPass(sess)
	}

	if err := sess.parse(); err != nil {
		return r.parseFault(sess, err)
	}
	if err := r.partialPass(sess); err != nil {
		return r.fault(sess, err, false)
	}

	if err := sess.transition(StateDynamicExpansion); err != nil {
		return r.fault(sess, err, false)
	}
	extra, err := exp.DynamicSources(ctx)
	if err != nil {
		// Help must still be reachable when the first pass could not pick
		// the extra sources, e.g. a missing selector.
		if sess.store.IsPresent(HelpArgument) {
			return r.help(sess)
		}
		return r.fault(sess, err, true)
	}
	if err := register(sess.store, extra); err != nil {
		return r.fault(sess, err, false)
	}
	return r.strictPass(sess)
}

func (r *Resolver) partialPass(sess *Session) error {
	if err := sess.transition(StatePartiallyValidated); err != nil {
		return err
	}
	outcome := sess.store.Validate(PartialRules)
	for _, v := range outcome.Violations {
		r.debug("partial validation", "rule", v.Rule, "argument", v.Argument, "message", v.Message)
	}

	for _, src := range sess.store.Sources() {
		skipped, err := sess.store.LoadLenient(src.Name)
		if err != nil {
			return err
		}
		for _, c := range skipped {
			r.debug("partial load skipped value", "source", src.Name, "argument", c.Argument, "value", c.Value)
		}
	}
	if err := sess.transition(StateLoaded); err != nil {
		return err
	}
	if r.Hooks.Loaded != nil {
		if err := r.Hooks.Loaded(false); err != nil {
			r.debug("partial load hook", "err", err)
		}
	}
	return nil
}

// strictPass parses against the final declaration set, checks for help,
// then validates and loads with every rule enabled.
func (r *Resolver) strictPass(sess *Session) Result {
	if err := sess.parse(); err != nil {
		return r.parseFault(sess, err)
	}
	if sess.store.IsPresent(HelpArgument) {
		return r.help(sess)
	}

	if err := sess.transition(StateFullyValidated); err != nil {
		return r.fault(sess, err, false)
	}
	if outcome := sess.store.Validate(args.AllRules); !outcome.OK() {
		return r.fault(sess, outcome.Err(), true)
	}

	if err := sess.store.LoadAll(); err != nil {
		return r.fault(sess, err, true)
	}
	if err := sess.transition(StateLoaded); err != nil {
		return r.fault(sess, err, false)
	}
	if r.Hooks.Loaded != nil {
		if err := r.Hooks.Loaded(true); err != nil {
			return r.fault(sess, err, true)
		}
	}
	return Result{Outcome: OutcomeSuccess, Trace: sess.Trace()}
}

// parseFault turns a failed parse into help when the snapshot that was
// still produced asks for it.
func (r *Resolver) parseFault(sess *Session, err error) Result {
	if sess.State() == StateParsed && sess.store.IsPresent(HelpArgument) {
		return r.help(sess)
	}
	return r.fault(sess, err, true)
}

func (r *Resolver) help(sess *Session) Result {
	if err := sess.transition(StateHelp); err != nil {
		return r.fault(sess, err, false)
	}
	return Result{Outcome: OutcomeHelp, Help: r.render(sess), Trace: sess.Trace()}
}

func (r *Resolver) fault(sess *Session, err error, withUsage bool) Result {
	if !sess.State().IsTerminal() {
		_ = sess.transition(StateFaulted)
	}
	res := Result{Outcome: OutcomeFault, Err: err, Trace: sess.Trace()}
	if withUsage {
		res.Usage = r.render(sess)
	}
	return res
}

func (r *Resolver) render(sess *Session) string {
	if r.Help == nil {
		return ""
	}
	return r.Help.RenderHelp(r.Details, sess.store.Sources())
}

func (r *Resolver) debug(msg string, keyvals ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, keyvals...)
	}
}

func register(store *args.Store, sources []NamedSource) error {
	for _, ns := range sources {
		if ns.Source == nil {
			return fmt.Errorf("%w: source %q is nil", args.ErrInvalidDeclaration, ns.Name)
		}
		if err := store.RegisterSource(ns.Name, ns.Source); err != nil {
			return err
		}
	}
	return nil
}

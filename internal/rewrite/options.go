package rewrite

import (
	"github.com/okian/routefix/pkg/logger"
)

// Option configures a Fixer.
type Option func(*Fixer)

// WithLogger sets the logger used during a run.
func WithLogger(l logger.Logger) Option {
	return func(f *Fixer) {
		if l != nil {
			f.log = l
		}
	}
}

// WithRules replaces the default route rules.
func WithRules(rules []Rule) Option {
	return func(f *Fixer) {
		if len(rules) > 0 {
			f.rules = append([]Rule(nil), rules...)
		}
	}
}

// WithRecorder sets the sink for run metrics.
func WithRecorder(r Recorder) Option {
	return func(f *Fixer) {
		if r != nil {
			f.recorder = r
		}
	}
}

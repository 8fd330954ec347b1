// ABOUTME: Builder for common Isabelle system options
// ABOUTME: Produces the name=value map consumed by batch and session commands

package process

import (
	"strconv"
	"strings"
)

// OptionsBuilder assembles system option overrides with typed setters.
// The zero value is ready to use.
type OptionsBuilder struct {
	options map[string]string
}

func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{options: make(map[string]string)}
}

func (b *OptionsBuilder) set(name, value string) *OptionsBuilder {
	if b.options == nil {
		b.options = make(map[string]string)
	}
	b.options[name] = value
	return b
}

func (b *OptionsBuilder) setInt(name string, v int) *OptionsBuilder {
	return b.set(name, strconv.Itoa(v))
}

func (b *OptionsBuilder) setBool(name string, v bool) *OptionsBuilder {
	return b.set(name, strconv.FormatBool(v))
}

func (b *OptionsBuilder) setReal(name string, v float64) *OptionsBuilder {
	return b.set(name, strings.ToLower(strconv.FormatFloat(v, 'g', -1, 64)))
}

// Threads caps worker threads for the prover process (0 = hardware max).
func (b *OptionsBuilder) Threads(n int) *OptionsBuilder {
	return b.setInt("threads", n)
}

// ThreadsStackLimit caps the worker thread stack, in giga words (0 = unlimited).
func (b *OptionsBuilder) ThreadsStackLimit(limit float64) *OptionsBuilder {
	return b.setReal("threads_stack_limit", limit)
}

// ParallelLimit approximately caps parallel tasks (0 = unlimited).
func (b *OptionsBuilder) ParallelLimit(limit int) *OptionsBuilder {
	return b.setInt("parallel_limit", limit)
}

// ParallelProofs sets the level of parallel proof checking: 0, 1, or 2.
func (b *OptionsBuilder) ParallelProofs(level int) *OptionsBuilder {
	return b.setInt("parallel_proofs", level)
}

// TimeoutScale scales timeouts in ML and session builds.
func (b *OptionsBuilder) TimeoutScale(scale float64) *OptionsBuilder {
	return b.setReal("timeout_scale", scale)
}

// RecordProofs sets proofterm recording: 0, 1, 2; negative means unchanged.
func (b *OptionsBuilder) RecordProofs(level int) *OptionsBuilder {
	return b.setInt("record_proofs", level)
}

// QuickAndDirty lets some tools omit proofs.
func (b *OptionsBuilder) QuickAndDirty(flag bool) *OptionsBuilder {
	return b.setBool("quick_and_dirty", flag)
}

// SkipProofs skips over proofs (implicit 'sorry').
func (b *OptionsBuilder) SkipProofs(flag bool) *OptionsBuilder {
	return b.setBool("skip_proofs", flag)
}

// Timeout bounds a session build job, in seconds.
func (b *OptionsBuilder) Timeout(seconds float64) *OptionsBuilder {
	return b.setReal("timeout", seconds)
}

// TimeoutBuild toggles the build timeout (default true).
func (b *OptionsBuilder) TimeoutBuild(flag bool) *OptionsBuilder {
	return b.setBool("timeout_build", flag)
}

// ProcessOutputLimit caps build output, in million characters (0 = unlimited).
func (b *OptionsBuilder) ProcessOutputLimit(limit int) *OptionsBuilder {
	return b.setInt("process_output_limit", limit)
}

// ProcessOutputTail caps the output tail shown, in lines (0 = unlimited).
func (b *OptionsBuilder) ProcessOutputTail(lines int) *OptionsBuilder {
	return b.setInt("process_output_tail", lines)
}

// PIDEReports toggles PIDE markup reports in ML (default true).
func (b *OptionsBuilder) PIDEReports(flag bool) *OptionsBuilder {
	return b.setBool("pide_reports", flag)
}

// BuildPIDEReports toggles PIDE markup reports in batch builds (default true).
func (b *OptionsBuilder) BuildPIDEReports(flag bool) *OptionsBuilder {
	return b.setBool("build_pide_reports", flag)
}

// Build returns the assembled option map.
func (b *OptionsBuilder) Build() map[string]string {
	if b.options == nil {
		return map[string]string{}
	}
	return b.options
}

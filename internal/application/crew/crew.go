package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domai "github.com/bryanwahyu/hemolab/internal/domain/ai"
	"github.com/bryanwahyu/hemolab/internal/domain/agents"
	"github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

// Input is the shared context for one orchestration run.
type Input struct {
	DocumentText string
	Query        string
	AnalysisType analysis.Type
}

// Crew sequences the task chain for a request against a single LLM backend.
// Safe for concurrent use; the per-agent rate limiters are the only shared state.
type Crew struct {
	client   domai.Client
	limiters map[agents.AgentName]*rpmLimiter
}

func New(client domai.Client) *Crew {
	limiters := make(map[agents.AgentName]*rpmLimiter, len(agents.Registry))
	for name, cfg := range agents.Registry {
		limiters[name] = newRPMLimiter(cfg.MaxRPM)
	}
	return &Crew{client: client, limiters: limiters}
}

// Kickoff executes the chain for in.AnalysisType in declared order, feeding
// each completed task's output to its dependents, and returns the final task's
// raw output. When a task trips its iteration or rate bound after earlier
// tasks completed, the completed outputs are returned as a degraded partial
// result alongside the error; the caller decides whether that is acceptable.
func (c *Crew) Kickoff(ctx context.Context, in Input) (string, error) {
	chain, err := agents.Chain(in.AnalysisType)
	if err != nil {
		return "", err
	}

	outputs := make(map[agents.TaskName]string, len(chain))
	var completed []string

	for _, task := range chain {
		agent, ok := agents.Registry[task.Agent]
		if !ok {
			return "", &analysis.OrchestrationError{Task: string(task.Name), Err: fmt.Errorf("unknown agent %q", task.Agent)}
		}

		out, err := c.runTask(ctx, agent, task, in, outputs)
		if err != nil {
			werr := &analysis.OrchestrationError{Task: string(task.Name), Err: err}
			if len(completed) > 0 {
				return strings.Join(completed, "\n\n"), werr
			}
			return "", werr
		}
		outputs[task.Name] = out
		completed = append(completed, out)
	}

	// final task's raw output is the analysis
	return completed[len(completed)-1], nil
}

// runTask calls the LLM for a single task, bounded by the agent's MaxRPM
// bucket and MaxIterations attempt count.
func (c *Crew) runTask(ctx context.Context, agent agents.Config, task agents.Task, in Input, outputs map[agents.TaskName]string) (string, error) {
	system := systemPrompt(agent, in.Query)
	user := userPrompt(task, in, outputs)

	var lastErr error
	for attempt := 0; attempt < agent.MaxIterations; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !c.limiters[agent.Name].Allow() {
			return "", domai.ErrRateLimited
		}

		out, err := c.client.Complete(ctx, system, user)
		if err == nil {
			if strings.TrimSpace(out) == "" {
				lastErr = fmt.Errorf("agent %s returned empty output", agent.Name)
				continue
			}
			return out, nil
		}
		// quota errors will not clear within the attempt budget
		if errors.Is(err, domai.ErrQuotaExceeded) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("agent %s exhausted %d iterations: %w", agent.Name, agent.MaxIterations, lastErr)
}

func systemPrompt(agent agents.Config, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s.\n\n", agent.Role)
	b.WriteString(agent.Backstory)
	b.WriteString("\n\nYour goal: ")
	b.WriteString(strings.ReplaceAll(agent.Goal, "{query}", query))
	if !agent.AllowDelegation {
		b.WriteString("\n\nYou work alone and answer yourself; never defer the task to another specialist.")
	}
	return b.String()
}

func userPrompt(task agents.Task, in Input, outputs map[agents.TaskName]string) string {
	desc := strings.ReplaceAll(task.Description, "{query}", in.Query)
	desc = strings.ReplaceAll(desc, "{file_path}", "\n---\n"+in.DocumentText+"\n---\n")

	var b strings.Builder
	b.WriteString(desc)
	for _, dep := range task.Context {
		if prior, ok := outputs[dep]; ok {
			fmt.Fprintf(&b, "\n\nOutput of the %s task, for context:\n%s", dep, prior)
		}
	}
	b.WriteString("\n\nExpected output:\n")
	b.WriteString(task.ExpectedOutput)
	return b.String()
}

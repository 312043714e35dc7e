package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
)

// workflowLister is the visibility API used to walk a workflow tree. client.Client satisfies it.
type workflowLister interface {
	ListWorkflow(ctx context.Context, request *workflowservice.ListWorkflowExecutionsRequest) (*workflowservice.ListWorkflowExecutionsResponse, error)
}

// Execution is one workflow run in the tree
type Execution struct {
	WorkflowID   string
	RunID        string
	WorkflowType string
	Status       enums.WorkflowExecutionStatus
	Depth        int
	StartTime    time.Time
	CloseTime    *time.Time
}

// Closed reports whether the run has finished in any state
func (e Execution) Closed() bool {
	return e.Status != enums.WORKFLOW_EXECUTION_STATUS_RUNNING
}

// Duration is the run time so far, measured against now for open runs
func (e Execution) Duration(now time.Time) time.Duration {
	if e.CloseTime != nil {
		return e.CloseTime.Sub(e.StartTime)
	}
	return now.Sub(e.StartTime)
}

// TypeSummary aggregates the descendants sharing a workflow type
type TypeSummary struct {
	WorkflowType string
	Count        int
	ByStatus     map[enums.WorkflowExecutionStatus]int
	Closed       int
	MinDuration  time.Duration
	MaxDuration  time.Duration
	sumDuration  time.Duration
}

// AvgDuration averages closed runs only
func (s TypeSummary) AvgDuration() time.Duration {
	if s.Closed == 0 {
		return 0
	}
	return s.sumDuration / time.Duration(s.Closed)
}

// Report is a snapshot of a pipeline run and its descendants
type Report struct {
	Root        Execution
	Descendants []Execution
	Truncated   bool
	GeneratedAt time.Time
}

// Summaries groups descendants by workflow type, sorted by type name
func (r *Report) Summaries() []TypeSummary {
	byType := make(map[string]*TypeSummary)
	for _, e := range r.Descendants {
		s, ok := byType[e.WorkflowType]
		if !ok {
			s = &TypeSummary{
				WorkflowType: e.WorkflowType,
				ByStatus:     make(map[enums.WorkflowExecutionStatus]int),
			}
			byType[e.WorkflowType] = s
		}
		s.Count++
		s.ByStatus[e.Status]++
		if !e.Closed() {
			continue
		}

		d := e.Duration(r.GeneratedAt)
		if s.Closed == 0 || d < s.MinDuration {
			s.MinDuration = d
		}
		if d > s.MaxDuration {
			s.MaxDuration = d
		}
		s.sumDuration += d
		s.Closed++
	}

	summaries := make([]TypeSummary, 0, len(byType))
	for _, s := range byType {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].WorkflowType < summaries[j].WorkflowType
	})
	return summaries
}

// Failures counts descendants that closed in a state other than completed
func (r *Report) Failures() int {
	n := 0
	for _, e := range r.Descendants {
		if e.Closed() && e.Status != enums.WORKFLOW_EXECUTION_STATUS_COMPLETED {
			n++
		}
	}
	return n
}

// collectReport lists the root run, then walks its children level by level
func collectReport(ctx context.Context, lister workflowLister, cfg *Config, now time.Time) (*Report, error) {
	query := fmt.Sprintf("WorkflowId = %s", quote(cfg.WorkflowID))
	if cfg.RunID != "" {
		query = fmt.Sprintf("%s AND RunId = %s", query, quote(cfg.RunID))
	}

	roots, err := listAll(ctx, lister, cfg, query, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow %s: %w", cfg.WorkflowID, err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("workflow %s not found", cfg.WorkflowID)
	}

	report := &Report{
		Root:        toExecution(roots[0], 0),
		Descendants: []Execution{},
		GeneratedAt: now,
	}

	level := []Execution{report.Root}
	for depth := 1; len(level) > 0; depth++ {
		if cfg.MaxDepth > 0 && depth > cfg.MaxDepth {
			break
		}

		next, err := listChildren(ctx, lister, cfg, level, depth)
		if err != nil {
			return nil, err
		}

		if cfg.MaxWorkflows > 0 && len(report.Descendants)+len(next) > cfg.MaxWorkflows {
			next = next[:cfg.MaxWorkflows-len(report.Descendants)]
			report.Truncated = true
		}
		report.Descendants = append(report.Descendants, next...)
		if report.Truncated {
			break
		}
		level = next
	}

	return report, nil
}

// listChildren lists the children of every parent concurrently
func listChildren(ctx context.Context, lister workflowLister, cfg *Config, parents []Execution, depth int) ([]Execution, error) {
	var (
		mu       sync.Mutex
		children []Execution
		firstErr error
	)

	pool := pond.NewPool(cfg.Concurrency, pond.WithContext(ctx))
	for _, parent := range parents {
		pool.Submit(func() {
			query := fmt.Sprintf("ParentWorkflowId = %s AND ParentRunId = %s", quote(parent.WorkflowID), quote(parent.RunID))
			infos, err := listAll(ctx, lister, cfg, query, 0)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to list children of %s: %w", parent.WorkflowID, err)
				}
				return
			}
			for _, info := range infos {
				children = append(children, toExecution(info, depth))
			}
		})
	}
	pool.StopAndWait()

	if firstErr != nil {
		return nil, firstErr
	}

	// pool completion order is arbitrary
	sort.Slice(children, func(i, j int) bool {
		if !children[i].StartTime.Equal(children[j].StartTime) {
			return children[i].StartTime.Before(children[j].StartTime)
		}
		return children[i].WorkflowID < children[j].WorkflowID
	})
	return children, nil
}

// listAll pages through a visibility query. limit 0 means all pages.
func listAll(ctx context.Context, lister workflowLister, cfg *Config, query string, limit int) ([]*workflowpb.WorkflowExecutionInfo, error) {
	var (
		infos     []*workflowpb.WorkflowExecutionInfo
		pageToken []byte
	)

	for {
		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		resp, err := lister.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     cfg.Namespace,
			PageSize:      int32(cfg.PageSize), //nolint:gosec,G115
			NextPageToken: pageToken,
			Query:         query,
		})
		cancel()
		if err != nil {
			return nil, err
		}

		infos = append(infos, resp.GetExecutions()...)
		if limit > 0 && len(infos) >= limit {
			return infos[:limit], nil
		}

		pageToken = resp.GetNextPageToken()
		if len(pageToken) == 0 {
			return infos, nil
		}
	}
}

func toExecution(info *workflowpb.WorkflowExecutionInfo, depth int) Execution {
	e := Execution{
		WorkflowID:   info.GetExecution().GetWorkflowId(),
		RunID:        info.GetExecution().GetRunId(),
		WorkflowType: info.GetType().GetName(),
		Status:       info.GetStatus(),
		Depth:        depth,
		StartTime:    info.GetStartTime().AsTime(),
	}
	if info.GetCloseTime() != nil {
		closeTime := info.GetCloseTime().AsTime()
		e.CloseTime = &closeTime
	}
	return e
}

// quote renders a visibility query string literal.
// Seed workflow IDs embed gallery URLs, which may contain quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func printReport(w io.Writer, r *Report) {
	rule := strings.Repeat("-", 80)

	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprintf(w, "Pipeline:    %s\n", r.Root.WorkflowType)
	_, _ = fmt.Fprintf(w, "Workflow ID: %s\n", r.Root.WorkflowID)
	_, _ = fmt.Fprintf(w, "Run ID:      %s\n", r.Root.RunID)
	_, _ = fmt.Fprintf(w, "Status:      %s\n", formatStatus(r.Root.Status))
	_, _ = fmt.Fprintf(w, "Started:     %s\n", r.Root.StartTime.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Duration:    %s\n", formatDuration(r.Root.Duration(r.GeneratedAt)))
	_, _ = fmt.Fprintln(w)

	if len(r.Descendants) == 0 {
		_, _ = fmt.Fprintln(w, "No child workflows.")
		_, _ = fmt.Fprintln(w, rule)
		return
	}

	_, _ = fmt.Fprintf(w, "Child workflows: %d", len(r.Descendants))
	if failures := r.Failures(); failures > 0 {
		_, _ = fmt.Fprintf(w, " (%d not completed)", failures)
	}
	if r.Truncated {
		_, _ = fmt.Fprint(w, " [truncated]")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w)

	for _, s := range r.Summaries() {
		_, _ = fmt.Fprintf(w, "  %s\n", s.WorkflowType)
		_, _ = fmt.Fprintf(w, "    Runs:     %d\n", s.Count)
		for _, status := range sortedStatuses(s.ByStatus) {
			_, _ = fmt.Fprintf(w, "    %-9s %d (%s)\n", statusName(status)+":", s.ByStatus[status], percentage(s.ByStatus[status], s.Count))
		}
		if s.Closed > 0 {
			_, _ = fmt.Fprintf(w, "    Duration: min %s, avg %s, max %s\n",
				formatDuration(s.MinDuration), formatDuration(s.AvgDuration()), formatDuration(s.MaxDuration))
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w, rule)
}

func writeMarkdown(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	var b strings.Builder
	fmt.Fprintf(&b, "# Pipeline report: %s\n\n", r.Root.WorkflowType)
	fmt.Fprintf(&b, "- **Workflow ID:** `%s`\n", r.Root.WorkflowID)
	fmt.Fprintf(&b, "- **Run ID:** `%s`\n", r.Root.RunID)
	fmt.Fprintf(&b, "- **Status:** %s\n", formatStatus(r.Root.Status))
	fmt.Fprintf(&b, "- **Duration:** %s\n", formatDuration(r.Root.Duration(r.GeneratedAt)))
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	if len(r.Descendants) > 0 {
		b.WriteString("## Child workflows\n\n")
		b.WriteString("| Type | Runs | Completed | Not completed | Min | Avg | Max |\n")
		b.WriteString("|------|-----:|----------:|--------------:|----:|----:|----:|\n")
		for _, s := range r.Summaries() {
			completed := s.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_COMPLETED]
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %s | %s | %s |\n",
				s.WorkflowType, s.Count, completed, s.Closed-completed,
				formatDuration(s.MinDuration), formatDuration(s.AvgDuration()), formatDuration(s.MaxDuration))
		}
		if r.Truncated {
			b.WriteString("\n_Listing truncated by -max-workflows._\n")
		}
	}

	_, err = file.WriteString(b.String())
	return err
}

func sortedStatuses(m map[enums.WorkflowExecutionStatus]int) []enums.WorkflowExecutionStatus {
	statuses := make([]enums.WorkflowExecutionStatus, 0, len(m))
	for s := range m {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	return statuses
}

func statusName(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "running"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "completed"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "failed"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "canceled"
	case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "terminated"
	case enums.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW:
		return "continued_as_new"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "timed_out"
	default:
		return "unknown"
	}
}

func formatStatus(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "🟡 running"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "✅ completed"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "❌ failed"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "⏱️ timed_out"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED, enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "⛔ " + statusName(status)
	default:
		return statusName(status)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

func percentage(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(total)*100)
}

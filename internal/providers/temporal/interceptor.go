package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor creates a worker interceptor that gives every
// activity execution its own Sentry hub
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{}
}

// SentryActivityInterceptor scopes Sentry events to the activity that raised them,
// so logger.ErrorCtx inside an activity reports the pipeline it belongs to
type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{Next: next},
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()
	if activity.IsActivity(ctx) {
		info := activity.GetInfo(ctx)
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("activity_type", info.ActivityType.Name)
			scope.SetTag("workflow_type", info.WorkflowType.Name)
			scope.SetTag("workflow_id", info.WorkflowExecution.ID)
			scope.SetTag("task_queue", info.TaskQueue)
			scope.SetExtra("attempt", info.Attempt)
		})
	}

	return s.Next.ExecuteActivity(sentry.SetHubOnContext(ctx, hub), in)
}

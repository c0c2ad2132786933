package audit

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"context"

	"go.uber.org/zap"
)

type auditReporter struct {
	log   *zap.Logger
	queue *QueueSink
}

// NewAuditReporter builds the data-quality reporter. The zap sink is always
// active; pass a nil queue when the RabbitMQ sink is disabled.
func NewAuditReporter(log *zap.Logger, queue *QueueSink) contracts.AuditReporter {
	return &auditReporter{log: log, queue: queue}
}

func (r *auditReporter) ReportDataQuality(ctx context.Context, event *contracts.DataQualityEvent) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	r.log.Warn("data quality warning",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("kind", event.Kind),
		zap.String("detail", event.Detail),
		zap.Int(constvars.LoggingConsommationIDKey, event.ConsommationID),
		zap.Int(constvars.LoggingGlobalBillIDKey, event.GlobalBillID),
		zap.String("cause", event.Cause),
	)

	if r.queue == nil {
		return
	}
	if err := r.queue.Publish(ctx, event); err != nil {
		// Sink failures never reach the reconciliation path.
		r.log.Error("auditReporter failed to publish data quality event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
	}
}

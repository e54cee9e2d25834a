package menu_import_amqp_worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/domain/dtos"
	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"
	dashboard_client "github.com/init-pkg/menu-import/internal/clients/dashboard"
	"github.com/init-pkg/menu-import/internal/config"

	"github.com/go-playground/validator/v10"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrDeliveriesClosed = errors.New("amqp deliveries channel closed")

// MenuImportAmqpWorker runs unattended imports from the job queue. The job
// carries its own confirmation policy: accept when auto_confirm is set or when
// the detected mapping equals expected_mapping, reject otherwise.
type MenuImportAmqpWorker struct {
	log      *slog.Logger
	conn     *amqp.Connection
	queue    string
	prefetch int
	service  app.MenuImportService
	reporter app.JobReporter
	validate *validator.Validate
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	conn *amqp.Connection,
	service app.MenuImportService,
	reporter app.JobReporter,
) *MenuImportAmqpWorker {
	return &MenuImportAmqpWorker{
		log:      log,
		conn:     conn,
		queue:    cfg.Infrastructure.RabbitMQ.Queue,
		prefetch: cfg.Infrastructure.RabbitMQ.Prefetch,
		service:  service,
		reporter: reporter,
		validate: validator.New(),
	}
}

func (this *MenuImportAmqpWorker) Enabled() bool {
	return this.conn != nil
}

// Run consumes the queue until ctx is done. Jobs are handled one at a time.
func (this *MenuImportAmqpWorker) Run(ctx context.Context) error {
	ch, err := this.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(this.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", this.queue, err)
	}
	if err := ch.Qos(this.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(this.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", this.queue, err)
	}
	this.log.Info("menu import worker started", "queue", this.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			this.handle(ctx, d)
		}
	}
}

// handle processes one delivery. Malformed messages are dropped without
// requeue; import failures are reported to the dashboard and acked since
// retrying the same file gives the same result.
func (this *MenuImportAmqpWorker) handle(ctx context.Context, d amqp.Delivery) {
	var job dtos.MenuImportJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		this.log.Warn("dropping malformed job", "err", err)
		_ = d.Nack(false, false)
		return
	}
	if err := this.validate.Struct(job); err != nil {
		this.log.Warn("dropping invalid job", "job", job.JobId, "err", err)
		_ = d.Nack(false, false)
		return
	}

	log := this.log.With("job", job.JobId, "branch", job.BranchId)
	if err := this.reporter.UpdateJobStatus(ctx, job.JobId, dashboard_client.JobStatusProcessing); err != nil {
		log.Warn("job status not reported", "err", err)
	}

	res, err := this.service.Import(ctx, app.ImportRequest{
		BranchID: job.BranchId,
		Filename: job.Filename,
		File:     job.File,
	}, confirmPolicy(job))

	if err != nil {
		log.Warn("menu import job failed", "err", err)
		if rerr := this.reporter.MarkJobFailed(ctx, job.JobId, failureMessage(err)); rerr != nil {
			log.Warn("job failure not reported", "err", rerr)
		}
		_ = d.Ack(false)
		return
	}

	log.Info("menu import job done", "imported", res.Imported)
	resultData := map[string]string{
		"imported":   strconv.Itoa(res.Imported),
		"categories": strings.Join(res.Categories, ", "),
	}
	if rerr := this.reporter.MarkJobSuccess(ctx, job.JobId, fmt.Sprintf("imported %d menu items", res.Imported), resultData); rerr != nil {
		log.Warn("job success not reported", "err", rerr)
	}
	_ = d.Ack(false)
}

func confirmPolicy(job dtos.MenuImportJob) app.ConfirmFunc {
	return func(_ context.Context, _ string, a menu_classifier.Assignment) bool {
		if job.AutoConfirm {
			return true
		}
		if len(job.ExpectedMapping) == 0 {
			return false
		}
		expected := make(menu_classifier.Assignment, len(job.ExpectedMapping))
		for role, col := range job.ExpectedMapping {
			expected[menu_classifier.Role(role)] = col
		}
		return expected.Equal(a)
	}
}

func failureMessage(err error) string {
	var importErr *app.ImportError
	if errors.As(err, &importErr) {
		return fmt.Sprintf("%v (%d records were validated, none were saved)", importErr.Err, importErr.Validated)
	}
	return err.Error()
}

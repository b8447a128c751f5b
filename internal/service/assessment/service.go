package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
	"github.com/kmanditereza/industrial-ai-agent/internal/plant"
	"github.com/kmanditereza/industrial-ai-agent/internal/telemetry"
)

// closeGrace bounds session teardown after the query context is gone.
const closeGrace = 5 * time.Second

// RecipeStore fetches recipes from the plant database.
type RecipeStore interface {
	GetRecipe(ctx context.Context, productName string) (model.Recipe, error)
}

// Timeouts bounds each I/O boundary of a query cycle. A dead plant server
// or database must surface as a typed error, never a hang.
type Timeouts struct {
	Dial  time.Duration
	Read  time.Duration
	Query time.Duration
}

// Service is the query façade. It sequences session-open, the concurrent
// telemetry reads, the recipe fetch, session-close, and evaluation, and
// guarantees the session is closed on every exit path, including caller
// cancellation.
type Service struct {
	dialer  plant.Dialer
	recipes RecipeStore
	points  plant.Points
	tmo     Timeouts
	logger  *slog.Logger

	assessDuration metric.Float64Histogram
}

// New creates an assessment Service. All collaborators are injected; the
// service holds no mutable state of its own.
func New(dialer plant.Dialer, recipes RecipeStore, points plant.Points, tmo Timeouts, logger *slog.Logger) *Service {
	meter := telemetry.Meter("plantd/assessment")
	assessDur, _ := meter.Float64Histogram("plantd.assessment.duration",
		metric.WithDescription("Time to complete a feasibility assessment (ms)"),
		metric.WithUnit("ms"),
	)
	return &Service{
		dialer:         dialer,
		recipes:        recipes,
		points:         points,
		tmo:            tmo,
		logger:         logger,
		assessDuration: assessDur,
	}
}

// Assess answers whether the plant can produce the requested number of
// batches of the product right now.
//
// Failure modes: plant.ConnectError, plant.ReadError, a wrapped repository
// error, or MissingTankDataError. All abort the cycle; none are retried
// here. Retry policy belongs to the caller.
func (s *Service) Assess(ctx context.Context, productName string, batches int) (model.FeasibilityVerdict, error) {
	if productName == "" {
		return model.FeasibilityVerdict{}, fmt.Errorf("assessment: product name is required")
	}
	if batches < 1 {
		return model.FeasibilityVerdict{}, fmt.Errorf("assessment: batches must be positive, got %d", batches)
	}

	queryID := uuid.New()
	start := time.Now()

	ctx, span := telemetry.Tracer("plantd/assessment").Start(ctx, "assessment.assess")
	defer span.End()
	span.SetAttributes(
		attribute.String("plant.product", productName),
		attribute.Int("plant.batches", batches),
		attribute.String("plant.query_id", queryID.String()),
	)

	// Telemetry and the recipe fetch are independent; run them
	// concurrently and join before evaluating.
	var snap plant.Snapshot
	var recipe model.Recipe
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.readSnapshot(gctx)
		return err
	})
	g.Go(func() error {
		qctx, cancel := context.WithTimeout(gctx, s.tmo.Query)
		defer cancel()
		var err error
		recipe, err = s.recipes.GetRecipe(qctx, productName)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("assessment aborted",
			"query_id", queryID, "product", productName, "batches", batches, "error", err)
		return model.FeasibilityVerdict{}, err
	}

	verdict, err := Evaluate(recipe, batches, snap.Tanks, snap.Machines)
	if err != nil {
		s.logger.Error("assessment aborted",
			"query_id", queryID, "product", productName, "batches", batches, "error", err)
		return model.FeasibilityVerdict{}, err
	}

	elapsed := time.Since(start)
	span.SetAttributes(attribute.Bool("plant.decision", verdict.Decision))
	s.assessDuration.Record(ctx, float64(elapsed.Milliseconds()),
		metric.WithAttributes(attribute.Bool("decision", verdict.Decision)))
	s.logger.Info("assessment complete",
		"query_id", queryID,
		"product", productName,
		"batches", batches,
		"recipe_found", verdict.RecipeFound,
		"sufficient_materials", verdict.SufficientMaterials,
		"machines_operational", verdict.MachinesOperational,
		"decision", verdict.Decision,
		"duration_ms", elapsed.Milliseconds(),
	)
	return verdict, nil
}

// MaterialAvailability reads the current level of every configured tank.
func (s *Service) MaterialAvailability(ctx context.Context) ([]model.TankReading, error) {
	var tanks []model.TankReading
	err := s.withSession(ctx, func(ctx context.Context, sess plant.Session) error {
		var err error
		tanks, err = plant.ReadTanks(ctx, sess, s.points.TankNodes)
		return err
	})
	return tanks, err
}

// MachineStates reads the current state of every configured machine.
func (s *Service) MachineStates(ctx context.Context) ([]model.MachineReading, error) {
	var machines []model.MachineReading
	err := s.withSession(ctx, func(ctx context.Context, sess plant.Session) error {
		var err error
		machines, err = plant.ReadMachines(ctx, sess, s.points.MachineNodes)
		return err
	})
	return machines, err
}

// ProductRecipe fetches the recipe on file for a product.
func (s *Service) ProductRecipe(ctx context.Context, productName string) (model.Recipe, error) {
	if productName == "" {
		return model.Recipe{}, fmt.Errorf("assessment: product name is required")
	}
	qctx, cancel := context.WithTimeout(ctx, s.tmo.Query)
	defer cancel()
	return s.recipes.GetRecipe(qctx, productName)
}

func (s *Service) readSnapshot(ctx context.Context) (plant.Snapshot, error) {
	var snap plant.Snapshot
	err := s.withSession(ctx, func(ctx context.Context, sess plant.Session) error {
		var err error
		snap, err = plant.ReadSnapshot(ctx, sess, s.points)
		return err
	})
	return snap, err
}

// withSession dials a session, runs fn against it under the read timeout,
// and closes the session unconditionally. Close runs on a context detached
// from the caller's so that cancellation still tears the session down.
func (s *Service) withSession(ctx context.Context, fn func(ctx context.Context, sess plant.Session) error) error {
	dialCtx, cancelDial := context.WithTimeout(ctx, s.tmo.Dial)
	defer cancelDial()
	sess, err := s.dialer.Dial(dialCtx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancelClose := context.WithTimeout(context.WithoutCancel(ctx), closeGrace)
		defer cancelClose()
		_ = sess.Close(closeCtx)
	}()

	readCtx, cancelRead := context.WithTimeout(ctx, s.tmo.Read)
	defer cancelRead()
	return fn(readCtx, sess)
}

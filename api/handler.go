package api

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/schedulers"
	"cpu-scheduler/internal/telemetry"
	"cpu-scheduler/internal/workload"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	RandomProcesses(ctx *fiber.Ctx) error
	Metrics(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config   *config.SchedulerConfig
	recorder *telemetry.Recorder
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, recorder *telemetry.Recorder) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, recorder: recorder}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestRemainingTimeFirst)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.MultilevelFeedbackQueue)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, err := parseRequest(ctx)
	if err != nil {
		return err
	}
	if err := s.checkLimits(request); err != nil {
		return s.fail("all", err)
	}

	all := make(map[string]responses.ScheduleResponse, len(schedulers.Algorithms))
	specs := request.Specs()
	options := s.options(request)
	for _, algorithm := range schedulers.Algorithms {
		result, err := schedulers.Simulate(algorithm, specs, options)
		if err != nil {
			return s.fail(algorithm.String(), err)
		}
		s.recorder.Observe(result)
		all[algorithm.String()] = schedulers.GenerateResponse(result)
	}
	return ctx.JSON(all)
}

// RandomProcesses returns a generated request body that can be posted back to
// any of the scheduling routes.
func (s *SchedulerHandlerImpl) RandomProcesses(ctx *fiber.Ctx) error {
	count, err := strconv.Atoi(ctx.Query("count", "5"))
	if err != nil || count < 1 || count > s.config.MaxProcesses {
		return fiber.NewError(fiber.StatusBadRequest, "count must be between 1 and "+strconv.Itoa(s.config.MaxProcesses))
	}
	seed := uint64(time.Now().UnixNano())
	if raw := ctx.Query("seed"); raw != "" {
		if seed, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid seed")
		}
	}

	request := requests.FromSpecs(workload.Random(rand.New(rand.NewSource(seed)), count))
	return ctx.JSON(request)
}

func (s *SchedulerHandlerImpl) Metrics(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, "text/plain; version=0.0.4; charset=utf-8")
	return s.recorder.WriteText(ctx)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, err := parseRequest(ctx)
	if err != nil {
		return err
	}
	if err := s.checkLimits(request); err != nil {
		return s.fail(algorithm.String(), err)
	}
	result, err := schedulers.Simulate(algorithm, request.Specs(), s.options(request))
	if err != nil {
		return s.fail(algorithm.String(), err)
	}
	s.recorder.Observe(result)
	return ctx.JSON(schedulers.GenerateResponse(result))
}

// options resolves the quanta of a request against the configured defaults.
func (s *SchedulerHandlerImpl) options(request *requests.ScheduleRequest) schedulers.Options {
	options := schedulers.Options{
		Quantum:       request.Quantum.OrElse(s.config.RoundRobinTimeQuantum),
		LevelsQuantum: s.config.MultilevelFeedbackQueueLevelsTimeQuantum,
		Horizon:       s.config.MaxTimeHorizon,
	}
	if q, err := request.Quantum.Get(); err == nil {
		options.LevelsQuantum = []int{q, 2 * q, 3 * q, 4 * q}
	}
	if request.LevelsQuantum != nil {
		options.LevelsQuantum = request.LevelsQuantum
	}
	return options
}

// checkLimits rejects requests with more processes than the server accepts.
// The time horizon is enforced by the engine through Options.Horizon.
func (s *SchedulerHandlerImpl) checkLimits(request *requests.ScheduleRequest) error {
	if len(request.Processes) > s.config.MaxProcesses {
		return fmt.Errorf("%w: at most %d processes per request, got %d",
			schedulers.ErrInvalidInput, s.config.MaxProcesses, len(request.Processes))
	}
	return nil
}

func (s *SchedulerHandlerImpl) fail(algorithm string, err error) error {
	s.recorder.Failure(algorithm, err)
	if errors.Is(err, schedulers.ErrInvalidInput) || errors.Is(err, schedulers.ErrUnknownAlgorithm) {
		klog.V(2).InfoS("rejected schedule request", "algorithm", algorithm, "err", err)
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	klog.ErrorS(err, "schedule request failed", "algorithm", algorithm)
	return fiber.NewError(fiber.StatusInternalServerError, "can not proccess request")
}

func parseRequest(ctx *fiber.Ctx) (*requests.ScheduleRequest, error) {
	request := new(requests.ScheduleRequest)
	if err := ctx.BodyParser(request); err != nil {
		klog.V(2).InfoS("invalid request body", "err", err)
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request format")
	}
	return request, nil
}

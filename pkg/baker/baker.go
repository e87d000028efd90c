package baker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/models"
	"joystick.io/fleet-control/pkg/remote"
)

const (
	ModeLive    = "live"
	ModeOffline = "offline"

	DefaultStatusInterval = 5 * time.Second
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidAutomation = errors.New("invalid automation values")
)

type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusStopped JobStatus = "stopped"
)

// ModeSwitcher runs an action on a device through the joystick API. Both
// remote.JoystickClient and the gRPC DeviceControlClient satisfy it.
type ModeSwitcher interface {
	RunAction(ctx context.Context, deviceID, action string, params map[string]any) (string, error)
}

type job struct {
	device     string
	automation models.DeviceAutomation
	status     JobStatus
	next       time.Time
	cancel     context.CancelFunc
	done       chan struct{}
}

// Baker keeps one automation job per device. A running job switches its
// device live every MinutesOn+MinutesOff and back offline after MinutesOn.
type Baker struct {
	Joystick *joystick.Joystick
	Switcher ModeSwitcher

	// Unit is the length of one automation minute.
	Unit           time.Duration
	StatusInterval time.Duration

	mu   sync.Mutex
	jobs map[string]*job

	syncCancel context.CancelFunc
	wg         sync.WaitGroup
}

func New(j *joystick.Joystick, switcher ModeSwitcher) *Baker {
	return &Baker{
		Joystick:       j,
		Switcher:       switcher,
		Unit:           time.Minute,
		StatusInterval: DefaultStatusInterval,
		jobs:           make(map[string]*job),
	}
}

func (b *Baker) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameBaker,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryJob),
	)
}

func (b *Baker) period(a models.DeviceAutomation) time.Duration {
	return time.Duration(a.MinutesOn+a.MinutesOff) * b.Unit
}

// CreateJob registers a stopped job for device, replacing any job it had.
func (b *Baker) CreateJob(device string, automation models.DeviceAutomation) error {
	if automation.MinutesOn <= 0 || automation.MinutesOff <= 0 {
		return ErrInvalidAutomation
	}

	b.logger().Info("Creating job", zap.String("device", device),
		zap.Int("minutesOn", automation.MinutesOn), zap.Int("minutesOff", automation.MinutesOff))

	b.mu.Lock()
	old := b.jobs[device]
	b.jobs[device] = &job{device: device, automation: automation, status: JobStatusStopped}
	b.mu.Unlock()

	if old != nil {
		b.halt(old)
	}
	return nil
}

func (b *Baker) StartJob(device string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	j, ok := b.jobs[device]
	if !ok {
		return fmt.Errorf("device %s: %w", device, ErrJobNotFound)
	}
	if j.status == JobStatusRunning {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.status = JobStatusRunning
	j.cancel = cancel
	j.done = make(chan struct{})
	j.next = time.Now().Add(b.period(j.automation))

	b.wg.Add(1)
	go b.loop(ctx, j)

	b.logger().Info("Job started", zap.String("device", device), zap.Time("next", j.next))
	return nil
}

func (b *Baker) loop(ctx context.Context, j *job) {
	defer b.wg.Done()
	defer close(j.done)

	period := b.period(j.automation)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var routines sync.WaitGroup
	defer routines.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.mu.Lock()
			j.next = time.Now().Add(period)
			b.mu.Unlock()

			routines.Add(1)
			go func() {
				defer routines.Done()
				b.runRoutine(ctx, j)
			}()
		}
	}
}

// runRoutine switches the device live, then offline after MinutesOn unless
// the job was stopped in between.
func (b *Baker) runRoutine(ctx context.Context, j *job) {
	logger := b.logger().With(zap.String("device", j.device))
	logger.Info("Starting automation routine")

	device, err := b.Joystick.Device.GetDevice(ctx, j.device)
	if err != nil {
		logger.Error("Failed to load device", zap.Error(err))
		return
	}
	if len(device.Configuration) == 0 {
		logger.Error("Device configuration is empty")
		return
	}

	if err := b.ToggleMode(ctx, device.ID, ModeLive); err != nil {
		logger.Error("Failed to turn device on", zap.Error(err))
		return
	}
	b.UpdateStatuses(ctx)
	logger.Info("Device turned on")

	timer := time.NewTimer(time.Duration(j.automation.MinutesOn) * b.Unit)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		logger.Info("Job is not running, skipping")
		return
	case <-timer.C:
	}

	if device.StreamName() == "" {
		logger.Info("Device has no stream name, skipping")
		return
	}
	if err := b.ToggleMode(ctx, device.ID, ModeOffline); err != nil {
		logger.Error("Failed to turn device off", zap.Error(err))
		return
	}
	b.UpdateStatuses(ctx)
	logger.Info("Device turned off")
}

func (b *Baker) ToggleMode(ctx context.Context, deviceID string, mode string) error {
	b.logger().Info("Toggling mode", zap.String("device", deviceID), zap.String("mode", mode))
	_, err := b.Switcher.RunAction(ctx, deviceID, joystick.ActionSetMode, map[string]any{"mode": mode})
	return err
}

// halt cancels a running job and waits for its routines to finish.
func (b *Baker) halt(j *job) {
	b.mu.Lock()
	cancel, done := j.cancel, j.done
	j.status = JobStatusStopped
	j.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (b *Baker) lookup(device string) (*job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	j, ok := b.jobs[device]
	if !ok {
		return nil, fmt.Errorf("device %s: %w", device, ErrJobNotFound)
	}
	return j, nil
}

func (b *Baker) StopJob(device string) error {
	j, err := b.lookup(device)
	if err != nil {
		return err
	}
	b.halt(j)
	b.logger().Info("Job stopped", zap.String("device", device))
	return nil
}

func (b *Baker) DeleteJob(device string) error {
	j, err := b.lookup(device)
	if err != nil {
		return err
	}
	b.halt(j)

	b.mu.Lock()
	if b.jobs[device] == j {
		delete(b.jobs, device)
	}
	b.mu.Unlock()

	b.logger().Info("Job deleted", zap.String("device", device))
	return nil
}

func (b *Baker) GetJobStatus(device string) (JobStatus, error) {
	j, err := b.lookup(device)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return j.status, nil
}

// NextExecution is the next tick of a running job, or one period from now for
// a stopped one.
func (b *Baker) NextExecution(device string) (time.Time, error) {
	j, err := b.lookup(device)
	if err != nil {
		return time.Time{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if j.status == JobStatusRunning {
		return j.next, nil
	}
	return time.Now().Add(b.period(j.automation)), nil
}

// Init creates a job for every device with automation and restores each of
// those devices to its stored mode.
func (b *Baker) Init(ctx context.Context) error {
	devices, err := b.Joystick.Device.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize device jobs: %w", err)
	}
	b.logger().Info("Found devices", zap.Int("count", len(devices)))

	for _, device := range devices {
		if device.Automation == nil {
			continue
		}
		if err := b.CreateJob(device.ID, *device.Automation); err != nil {
			b.logger().Warn("Skipping device automation", zap.String("device", device.ID), zap.Error(err))
			continue
		}

		mode := device.Mode
		if mode == "" {
			mode = ModeOffline
		}
		if err := b.ToggleMode(ctx, device.ID, mode); err != nil {
			b.logger().Error("Failed to restore device mode", zap.String("device", device.ID), zap.Error(err))
		}
		b.logger().Info("Initialized job", zap.String("device", device.ID))
	}
	return nil
}

// UpdateStatuses stores on, waiting or off for every device from one read of
// the media server paths.
func (b *Baker) UpdateStatuses(ctx context.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameBaker,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryStatus),
	)

	if b.Joystick.Stream == nil {
		logger.Warn("No stream api configured, skipping status update")
		return
	}

	devices, err := b.Joystick.Device.ListDevices(ctx)
	if err != nil {
		logger.Error("Failed to list devices", zap.Error(err))
		return
	}
	paths, err := b.Joystick.Stream.ListPaths(ctx)
	if err != nil {
		logger.Error("Failed to list stream paths", zap.Error(err))
		return
	}

	for _, device := range devices {
		device := device
		status := remote.PathStatus(paths, device.StreamName())
		if err := b.Joystick.Device.UpdateStatus(ctx, device.ID, status); err != nil {
			logger.Error("Failed to update device status", zap.String("device", device.ID), zap.Error(err))
		}
	}
}

// StartStatusSync runs UpdateStatuses every StatusInterval until Close.
func (b *Baker) StartStatusSync() {
	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.syncCancel = cancel
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ticker := time.NewTicker(b.StatusInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.logger().Debug("Updating status of devices")
				b.UpdateStatuses(ctx)
			}
		}
	}()
}

// Close stops every job and the status sync.
func (b *Baker) Close() {
	b.mu.Lock()
	jobs := make([]*job, 0, len(b.jobs))
	for _, j := range b.jobs {
		jobs = append(jobs, j)
	}
	cancel := b.syncCancel
	b.syncCancel = nil
	b.mu.Unlock()

	for _, j := range jobs {
		b.halt(j)
	}
	if cancel != nil {
		cancel()
	}
	b.wg.Wait()
}
